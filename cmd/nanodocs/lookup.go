package main

import (
	"fmt"

	"github.com/fwojciec/nanodocs"
)

// Run executes the lookup command.
func (c *LookupCmd) Run(deps *Dependencies) error {
	source, ok := deps.Catalog.SourceForCommand(c.Category)
	if !ok {
		err := nanodocs.Errorf(nanodocs.EINVALID, "unknown category %q", c.Category)
		fmt.Fprintf(deps.Stderr, "error: %s\n", nanodocs.ErrorMessage(err))
		return err
	}

	key := source.QueryKey(c.Query)
	if key == "" {
		err := nanodocs.Errorf(nanodocs.EINVALID, "%s lookup needs a name", source.Command)
		fmt.Fprintf(deps.Stderr, "error: %s\n", nanodocs.ErrorMessage(err))
		return err
	}

	entry, err := deps.Entries.FindEntry(deps.Ctx, source.Category, key)
	if nanodocs.ErrorCode(err) == nanodocs.ENOTFOUND {
		fmt.Fprintln(deps.Stderr, nanodocs.NotFoundMessage(source))
		return err
	} else if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", nanodocs.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, nanodocs.FormatCard(nanodocs.NewCard(source, entry)))
	return nil
}
