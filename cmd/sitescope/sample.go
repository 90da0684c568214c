// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/sitescope/internal/sample"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Copy text files from a random sample of downloaded sites",
	Long: `Sample draws random first-level folders from the websites directory and
copies every matching text file inside them into one flat destination
directory. Files whose name already exists in the destination are skipped.`,
	RunE: runSample,
}

func init() {
	sampleCmd.Flags().String("websites", "", "corpus directory to sample (default websites)")
	sampleCmd.Flags().String("dest", "", "destination directory (default outputs/random_select)")
	sampleCmd.Flags().Int("count", 0, "number of folders to draw (default 200)")
	sampleCmd.Flags().Int("min", 0, "minimum number of folders required (default 100)")
	sampleCmd.Flags().String("pattern", "", "file name pattern to copy (default *.txt)")
	sampleCmd.Flags().Uint64("seed", 0, "random seed; 0 picks a fresh one")

	rootCmd.AddCommand(sampleCmd)
}

func runSample(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sc := cfg.Sample
	flags := cmd.Flags()
	if flags.Changed("websites") {
		sc.WebsitesDir, _ = flags.GetString("websites")
	}
	if flags.Changed("dest") {
		sc.DestDir, _ = flags.GetString("dest")
	}
	if flags.Changed("count") {
		sc.Count, _ = flags.GetInt("count")
	}
	if flags.Changed("min") {
		sc.MinFolders, _ = flags.GetInt("min")
	}
	if flags.Changed("pattern") {
		sc.Pattern, _ = flags.GetString("pattern")
	}
	if flags.Changed("seed") {
		sc.Seed, _ = flags.GetUint64("seed")
	}

	_, err = sample.Run(sc, cmd.OutOrStdout())
	return err
}
