// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sitescope/internal/analyze"
	"github.com/pdiddy/sitescope/internal/report"
	"github.com/pdiddy/sitescope/internal/store"
	"github.com/pdiddy/sitescope/pkg/types"
)

// profileInfo holds the per-profile wording and defaults of an analysis
// command.
type profileInfo struct {
	profile       types.Profile
	title         string
	defaultOutput string

	// fileSuffix, when set, names the report written next to a single
	// analyzed file if --output is not given.
	fileSuffix string
}

var (
	personalizeProfile = profileInfo{
		profile:       types.ProfilePersonalization,
		title:         "Web Personalization Analysis Report",
		defaultOutput: "web_personalization_analysis.xlsx",
	}
	trackingProfile = profileInfo{
		profile:       types.ProfileTracking,
		title:         "Web Tracking Analysis Report",
		defaultOutput: "web_tracking_analysis.xlsx",
		fileSuffix:    "_tracking_analysis.json",
	}
)

var personalizeCmd = newAnalyzeCmd("personalize", personalizeProfile,
	"Score HTML documents for personalization features",
	`Personalize scores HTML documents against the personalization catalogue:
user identification, content recommendation, user tracking, geo
localization, technical implementation, and cart/transaction signals.

Use --file for one document or --dir for a corpus laid out as
<root>/<website>/<year>/*_index.html.`)

var trackingCmd = newAnalyzeCmd("tracking", trackingProfile,
	"Score HTML documents for analytics and tracking features",
	`Tracking scores HTML documents against the analytics vendor catalogue and
a set of markup probes (tracking attributes, pixels, iframes, JSON-LD,
dataLayer pushes, inline handlers).

Use --file for one document or --dir for a corpus laid out as
<root>/<website>/<year>/*_index.html.`)

func newAnalyzeCmd(use string, info profileInfo, short, long string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, info)
		},
	}
	cmd.Flags().String("file", "", "analyze a single HTML document")
	cmd.Flags().String("dir", "", "analyze a corpus directory")
	cmd.Flags().String("output", "", outputUsage(info))
	cmd.Flags().Int("workers", 0, "documents analyzed concurrently (default 1)")
	cmd.Flags().Bool("detailed", true, "add the Evidence sheet to batch workbooks")
	cmd.Flags().String("store", "", "record results in this SQLite history database")
	cmd.Flags().String("catalogue", "", "YAML catalogue replacing the built-in one")
	cmd.MarkFlagsMutuallyExclusive("file", "dir")
	cmd.MarkFlagsOneRequired("file", "dir")
	return cmd
}

func outputUsage(info profileInfo) string {
	usage := "report path (batch default: " + info.defaultOutput
	if info.fileSuffix != "" {
		usage += ", single file default: <file>" + info.fileSuffix
	}
	return usage + ")"
}

func init() {
	rootCmd.AddCommand(personalizeCmd)
	rootCmd.AddCommand(trackingCmd)
}

func runAnalyze(cmd *cobra.Command, info profileInfo) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	analysis := cfg.Analysis
	if cmd.Flags().Changed("workers") {
		analysis.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("detailed") {
		analysis.Detailed, _ = cmd.Flags().GetBool("detailed")
	}
	if cmd.Flags().Changed("catalogue") {
		analysis.CataloguePath, _ = cmd.Flags().GetString("catalogue")
	}
	storePath := cfg.Store.Path
	if cmd.Flags().Changed("store") {
		storePath, _ = cmd.Flags().GetString("store")
	}

	file, _ := cmd.Flags().GetString("file")
	dir, _ := cmd.Flags().GetString("dir")
	output, _ := cmd.Flags().GetString("output")
	switch {
	case output != "":
	case dir != "":
		output = info.defaultOutput
	case info.fileSuffix != "":
		output = file + info.fileSuffix
	}
	if output != "" {
		if err := report.ValidateOutputPath(output); err != nil {
			return err
		}
	}

	a, err := analyze.New(info.profile, analysis, newLogger(cfg))
	if err != nil {
		return err
	}

	var history *store.Store
	if storePath != "" {
		history, err = store.Open(storePath)
		if err != nil {
			return err
		}
		defer history.Close()
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if file != "" {
		res := a.AnalyzeFile(file)
		report.PrintSummary(out, res, a.Scorer)
		if output != "" {
			if err := report.WriteDocument(output, info.title, res, a.Scorer); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nReport written to %s\n", output)
		}
		if history != nil {
			if _, err := history.SaveDocument(ctx, info.profile, res); err != nil {
				return err
			}
		}
		return nil
	}

	batch, runErr := a.AnalyzeCorpus(ctx, dir, out)
	if runErr != nil && len(batch.Sites) == 0 {
		return runErr
	}

	if err := report.WriteBatch(output, batch, a.Scorer, analysis.Detailed); err != nil {
		return err
	}
	fmt.Fprintf(out, "Results written to %s\n", output)

	if history != nil {
		runID, err := history.SaveBatch(context.WithoutCancel(ctx), batch)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Recorded run %s in %s\n", runID, storePath)
	}
	return runErr
}
