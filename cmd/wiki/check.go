package main

import (
	"context"
	"fmt"
	"io"
	"os"
)

// CheckCmd verifies the store answers the character list query.
type CheckCmd struct {
	out io.Writer `kong:"-"`
}

func (c *CheckCmd) Run(g *Globals) error {
	logger, err := g.logger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := context.Background()
	store, closeStore, err := g.Store.Open(ctx, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	names, err := store.ListCharacters(ctx)
	if err != nil {
		return fmt.Errorf("list characters: %w", err)
	}

	out := c.out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "%s store ok: %d characters\n", g.Store.Backend, len(names))
	return nil
}
