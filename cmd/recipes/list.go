package main

import (
	"fmt"
	"sort"

	"github.com/bassista/go_recipes/internal/ui"
	"github.com/spf13/cobra"
)

func (c *cli) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recipe names",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names, err := c.repo.List(cmd.Context())
			if err != nil {
				return err
			}
			sort.Strings(names)
			fmt.Fprint(cmd.OutOrStdout(), ui.RenderList(names))
			return nil
		},
	}
}
