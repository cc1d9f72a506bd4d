package main

import (
	"fmt"

	"github.com/fwojciec/writeup"
)

// Run executes the storage get command.
func (c *StorageGetCmd) Run(deps *Dependencies) error {
	v, err := deps.Storage.GetItem(deps.Ctx, c.scope(), c.Key)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", writeup.ErrorMessage(err))
		return err
	}
	fmt.Fprintln(deps.Stdout, v)
	return nil
}

// Run executes the storage set command.
func (c *StorageSetCmd) Run(deps *Dependencies) error {
	if err := deps.Storage.SetItem(deps.Ctx, c.scope(), c.Key, c.Value); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", writeup.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Stored %s (%s)\n", c.Key, c.scope())
	return nil
}

// Run executes the storage rm command.
func (c *StorageRmCmd) Run(deps *Dependencies) error {
	if err := deps.Storage.RemoveItem(deps.Ctx, c.scope(), c.Key); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", writeup.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Removed %s (%s)\n", c.Key, c.scope())
	return nil
}

// Run executes the storage ls command.
func (c *StorageLsCmd) Run(deps *Dependencies) error {
	keys, err := deps.Storage.Keys(deps.Ctx, c.scope())
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", writeup.ErrorMessage(err))
		return err
	}
	if len(keys) == 0 {
		fmt.Fprintf(deps.Stdout, "No keys in %s storage. Use 'writeup storage set' to add one.\n", c.scope())
		return nil
	}
	for _, k := range keys {
		fmt.Fprintln(deps.Stdout, k)
	}
	return nil
}
