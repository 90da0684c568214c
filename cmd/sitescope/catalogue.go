// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sitescope/internal/catalogue"
)

var catalogueCmd = &cobra.Command{
	Use:       "catalogue personalization|tracking",
	Short:     "Print a built-in pattern catalogue",
	Long:      `Catalogue prints a built-in catalogue as YAML or JSON. The YAML output can be edited and passed back with --catalogue.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"personalization", "tracking"},
	RunE:      runCatalogue,
}

func init() {
	catalogueCmd.Flags().String("format", "yaml", "output format: yaml or json")

	rootCmd.AddCommand(catalogueCmd)
}

func runCatalogue(cmd *cobra.Command, args []string) error {
	cat, err := catalogue.ByName(args[0])
	if err != nil {
		return err
	}

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "yaml", "yml":
		return cat.WriteYAML(cmd.OutOrStdout())
	case "json":
		return cat.WriteJSON(cmd.OutOrStdout())
	default:
		return fmt.Errorf("unknown format %q, use yaml or json", format)
	}
}
