package main

import (
	"fmt"

	"github.com/bassista/go_recipes/internal/config"
	"github.com/bassista/go_recipes/internal/repository"
	"github.com/bassista/go_recipes/internal/templates"
	"github.com/bassista/go_recipes/internal/ui"
	"github.com/spf13/cobra"
)

// cli carries the flags and the store shared by every subcommand.
type cli struct {
	recipesDir string
	exportDir  string
	repo       repository.Repository
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "recipes",
		Short: "Manage recipe files from the terminal",
		Long: `recipes reads and writes the same recipe directory as the HTTP server.

Directories default to data.recipes_dir and data.export_dir from config.yaml
(GO_RECIPES_CONFIG_PATH) or their GO_RECIPES_* environment overrides.`,
		SilenceUsage:      true,
		PersistentPreRunE: c.open,
	}
	root.PersistentFlags().StringVar(&c.recipesDir, "dir", "", "recipes directory")
	root.PersistentFlags().StringVar(&c.exportDir, "export-dir", "", "directory receiving exported recipes")

	root.AddCommand(
		c.listCmd(),
		c.showCmd(),
		c.newCmd(),
		c.rmCmd(),
		c.exportCmd(),
		c.importCmd(),
		c.seedCmd(),
	)
	return root
}

// open resolves the directories and builds the repository before any subcommand runs.
func (c *cli) open(cmd *cobra.Command, _ []string) error {
	if c.recipesDir == "" || c.exportDir == "" {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if c.recipesDir == "" {
			c.recipesDir = cfg.Data.RecipesDir
		}
		if c.exportDir == "" {
			c.exportDir = cfg.Data.ExportDir
		}
	}

	repo, err := repository.NewFileRepository(c.recipesDir,
		repository.WithExportDestination(repository.DirDestination{Dir: c.exportDir}),
		repository.WithTemplates(templates.Bundled()),
	)
	if err != nil {
		return err
	}
	c.repo = repo
	return nil
}

func printPass(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderPass(fmt.Sprintf(format, args...)))
}
