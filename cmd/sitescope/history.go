// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sitescope/internal/report"
	"github.com/pdiddy/sitescope/internal/store"
	"github.com/pdiddy/sitescope/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded analysis scores",
	Long: `History lists document scores recorded by personalize and tracking runs
made with --store, newest run first. Filter by website or profile.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("store", "", "SQLite history database")
	historyCmd.Flags().String("website", "", "only this website")
	historyCmd.Flags().String("profile", "", "only this profile (personalization or tracking)")
	historyCmd.Flags().Int("limit", 0, "maximum rows (0 for all)")
	historyCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := cfg.Store.Path
	if cmd.Flags().Changed("store") {
		path, _ = cmd.Flags().GetString("store")
	}
	if path == "" {
		return fmt.Errorf("no history database: pass --store or set store.path")
	}

	website, _ := cmd.Flags().GetString("website")
	profile, _ := cmd.Flags().GetString("profile")
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()

	recs, err := s.History(cmd.Context(), store.Filter{
		Website: website,
		Profile: types.Profile(profile),
		Limit:   limit,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		return report.WriteJSON(cmd.OutOrStdout(), recs)
	}
	printHistory(cmd.OutOrStdout(), recs)
	return nil
}

func printHistory(w io.Writer, recs []store.Record) {
	if len(recs) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-20s  %-15s  %-30s  %-4s  %-7s  %s\n",
		"Run", "Profile", "Website", "Year", "Score", "Features")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, r := range recs {
		year := ""
		if r.Year > 0 {
			year = fmt.Sprint(r.Year)
		}
		score := fmt.Sprintf("%d/%d", r.TotalScore, r.MaxScore)
		if r.Error != "" {
			score = "error"
		}
		fmt.Fprintf(w, "%-20s  %-15s  %-30s  %-4s  %-7s  %d\n",
			r.StartedAt.Format("2006-01-02 15:04:05"), r.Profile, r.Website, year, score, len(r.Features))
	}
}
