package cli

import (
	"fmt"
	"text/template"

	"github.com/iudanet/docsync/internal/client/poller"
)

var statusTmpl = template.Must(template.New("status").Parse(statusTemplate))

type statusView struct {
	Rooms    []poller.RoomInfo
	ClientID uint64
}

func (c *Cli) runStatus() error {
	view := statusView{ClientID: c.identity.ClientID}
	for _, name := range c.registry.Rooms() {
		if info, ok := c.registry.Room(name); ok {
			view.Rooms = append(view.Rooms, info)
		}
	}

	if err := statusTmpl.Execute(c.io, view); err != nil {
		return fmt.Errorf("failed to render status: %w", err)
	}
	return nil
}
