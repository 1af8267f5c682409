package main

import (
	"encoding/json"
	"fmt"

	"github.com/bassista/go_recipes/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (c *cli) showCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "show <name>",
		Short: "Print a recipe",
		Long: `Print a recipe.

Formats:
  text  styled terminal output (default)
  json  decoded sections as JSON
  yaml  decoded sections as YAML
  raw   the stored file, byte for byte`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			out := cmd.OutOrStdout()

			if format == "raw" {
				text, err := c.repo.Read(cmd.Context(), name)
				if err != nil {
					return err
				}
				fmt.Fprint(out, text)
				return nil
			}

			r, err := c.repo.Load(cmd.Context(), name)
			if err != nil {
				return err
			}
			switch format {
			case "text":
				fmt.Fprint(out, ui.RenderRecipe(r))
			case "json":
				data, err := json.MarshalIndent(r, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
			case "yaml":
				data, err := yaml.Marshal(r)
				if err != nil {
					return err
				}
				fmt.Fprint(out, string(data))
			default:
				return fmt.Errorf("unknown format %q (want text, json, yaml or raw)", format)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json, yaml or raw")
	return cmd
}
