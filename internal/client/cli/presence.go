package cli

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

func (c *Cli) runPresence(args string) error {
	name, raw := nextArg(args)
	or, err := c.room(name)
	if err != nil {
		return err
	}
	if raw == "" {
		return fmt.Errorf("%w: usage: presence <room> <json>", ErrUsage)
	}

	var state any
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return fmt.Errorf("%w: presence must be JSON: %v", ErrUsage, err)
	}
	// null снимает локальное присутствие
	or.presence.SetLocalState(state)
	return nil
}

func (c *Cli) runPeers(args string) error {
	name, _ := nextArg(args)
	or, err := c.room(name)
	if err != nil {
		return err
	}

	states := or.presence.States()
	self := or.presence.ClientID()
	for _, id := range slices.Sorted(maps.Keys(states)) {
		encoded, err := json.Marshal(states[id])
		if err != nil {
			encoded = []byte(fmt.Sprintf("%v", states[id]))
		}
		marker := ""
		if id == self {
			marker = " (you)"
		}
		c.io.Printf("%d%s: %s\n", id, marker, encoded)
	}
	if len(states) == 0 {
		c.io.Println("No peers")
	}
	return nil
}
