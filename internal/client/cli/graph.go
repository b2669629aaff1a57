package cli

import (
	"fmt"
	"path/filepath"

	"github.com/iudanet/docsync/internal/client/viz"
)

func (c *Cli) runGraph(args string) error {
	name, rest := nextArg(args)
	or, err := c.room(name)
	if err != nil {
		return err
	}

	path, _ := nextArg(rest)
	if path == "" {
		path = filepath.Join(c.graphDir, name+".svg")
	}

	revs, err := or.doc.History()
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}
	if err := viz.RenderFile(revs, path); err != nil {
		return err
	}
	c.io.Printf("Graph with %d change(s) written to %s\n", len(revs), path)
	return nil
}
