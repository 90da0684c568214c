// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/sitescope/internal/wayback"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download archived snapshots for a list of domains",
	Long: `Download reads domains from the first column of an .xlsx workbook, skips
those that already have a directory under the base directory, and runs the
archive downloader once per remaining domain, one at a time.

The remaining domains are saved to a workbook before downloading starts.
Failed downloads have their partial directory removed and are appended to
the failure ledger CSV.`,
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().String("domains", "", "workbook with domains in column A (required)")
	downloadCmd.Flags().String("base-dir", "", "directory receiving one folder per domain (default websites)")
	downloadCmd.Flags().String("ledger", "", "failure ledger CSV (default failed_urls.csv)")
	downloadCmd.Flags().String("pending-out", "", "workbook of domains still to download (default domains_remain.xlsx)")
	downloadCmd.Flags().Int("from-year", 0, "earliest snapshot year passed to the downloader (default 2009)")
	downloadCmd.Flags().Int("concurrency", 0, "downloader fetch concurrency (default 15)")
	downloadCmd.Flags().String("command", "", "downloader command template")
	downloadCmd.Flags().Bool("check-cdx", false, "skip domains without archived captures")
	downloadCmd.Flags().Duration("delay", 0, "pause between domains")
	downloadCmd.MarkFlagRequired("domains")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	dl := cfg.Download
	flags := cmd.Flags()
	if flags.Changed("base-dir") {
		dl.BaseDir, _ = flags.GetString("base-dir")
	}
	if flags.Changed("ledger") {
		dl.LedgerPath, _ = flags.GetString("ledger")
	}
	if flags.Changed("pending-out") {
		dl.PendingPath, _ = flags.GetString("pending-out")
	}
	if flags.Changed("from-year") {
		dl.FromYear, _ = flags.GetInt("from-year")
	}
	if flags.Changed("concurrency") {
		dl.Concurrency, _ = flags.GetInt("concurrency")
	}
	if flags.Changed("command") {
		dl.Command, _ = flags.GetString("command")
	}
	if flags.Changed("check-cdx") {
		dl.CheckCDX, _ = flags.GetBool("check-cdx")
	}
	if flags.Changed("delay") {
		dl.Delay, _ = flags.GetDuration("delay")
	}
	domainsPath, _ := flags.GetString("domains")

	out := cmd.OutOrStdout()

	domains, err := wayback.ReadDomains(domainsPath)
	if err != nil {
		return err
	}
	pending, err := wayback.Pending(domains, dl.BaseDir)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d domains listed, %d already downloaded, %d pending\n",
		len(domains), len(domains)-len(pending), len(pending))

	if dl.PendingPath != "" {
		if err := wayback.WritePending(dl.PendingPath, pending); err != nil {
			return err
		}
		fmt.Fprintf(out, "Pending domains written to %s\n", dl.PendingPath)
	}
	if len(pending) == 0 {
		return nil
	}

	d := wayback.NewDownloader(dl, newLogger(cfg))
	if err := d.Preflight(); err != nil {
		return err
	}

	result, err := d.DownloadBatch(cmd.Context(), pending, out)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d domain(s) failed to download", result.Failed)
	}
	return nil
}
