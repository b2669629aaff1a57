package cli

import (
	"context"
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/iudanet/docsync/internal/delta"
)

func (c *Cli) runSet(ctx context.Context, args string) error {
	name, text := nextArg(args)
	or, err := c.editRoom(ctx, name)
	if err != nil {
		return err
	}

	// курсор в конце нового текста
	script, err := or.doc.EditText(text, utf8.RuneCountInString(text))
	if err != nil {
		return fmt.Errorf("failed to edit text: %w", err)
	}
	c.io.Printf("Applied %d op(s), cost %d\n", len(script), script.Cost())
	return nil
}

func (c *Cli) runInsert(ctx context.Context, args string) error {
	name, rest := nextArg(args)
	posArg, text := nextArg(rest)
	pos, err := strconv.Atoi(posArg)
	if name == "" || err != nil || pos < 0 || text == "" {
		return fmt.Errorf("%w: usage: insert <room> <pos> <text>", ErrUsage)
	}
	or, err := c.editRoom(ctx, name)
	if err != nil {
		return err
	}

	script := delta.Script{delta.Retain(pos), delta.Insert(text, nil)}.Compact()
	if err := or.doc.ApplyScript(script); err != nil {
		return fmt.Errorf("failed to insert: %w", err)
	}
	return nil
}

func (c *Cli) runDelete(ctx context.Context, args string) error {
	name, rest := nextArg(args)
	posArg, rest := nextArg(rest)
	countArg, _ := nextArg(rest)
	pos, err1 := strconv.Atoi(posArg)
	count, err2 := strconv.Atoi(countArg)
	if name == "" || err1 != nil || err2 != nil || pos < 0 || count <= 0 {
		return fmt.Errorf("%w: usage: delete <room> <pos> <n>", ErrUsage)
	}
	or, err := c.editRoom(ctx, name)
	if err != nil {
		return err
	}

	script := delta.Script{delta.Retain(pos), delta.Delete(count)}.Compact()
	if err := or.doc.ApplyScript(script); err != nil {
		return fmt.Errorf("failed to delete: %w", err)
	}
	return nil
}

func (c *Cli) runShow(args string) error {
	name, _ := nextArg(args)
	or, err := c.room(name)
	if err != nil {
		return err
	}
	text, err := or.doc.Text()
	if err != nil {
		return fmt.Errorf("failed to read text: %w", err)
	}
	c.io.Println(text)
	return nil
}
