package main

import (
	"fmt"

	"github.com/bassista/go_recipes/internal/repository"
	"github.com/bassista/go_recipes/internal/ui"
	"github.com/spf13/cobra"
)

func (c *cli) newCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new <name>",
		Short: "Create an empty recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.repo.Create(cmd.Context(), args[0]); err != nil {
				return err
			}
			printPass(cmd, "created %s", args[0])
			return nil
		},
	}
}

func (c *cli) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <name>",
		Aliases: []string{"delete"},
		Short:   "Delete a recipe file",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.repo.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			printPass(cmd, "deleted %s", args[0])
			return nil
		},
	}
}

func (c *cli) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <name>",
		Short: "Copy a recipe to the export directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.repo.Export(cmd.Context(), args[0]); err != nil {
				return err
			}
			printPass(cmd, "exported %s to %s", repository.KeyFor(args[0]), c.exportDir)
			return nil
		},
	}
}

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <path>",
		Short: "Copy a recipe file into the store, replacing one with the same name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := c.repo.Import(cmd.Context(), repository.FileSource{Path: args[0]})
			if err != nil {
				return err
			}
			printPass(cmd, "imported %s", name)
			return nil
		},
	}
}

func (c *cli) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty store with the bundled recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := c.repo.SeedFromTemplates(cmd.Context())
			if err != nil {
				return err
			}
			if n == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.RenderMuted("store is not empty, nothing seeded"))
				return nil
			}
			printPass(cmd, "seeded %d recipes", n)
			return nil
		},
	}
}
