// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package wayback drives an external archive downloader over a list of
// domains. Downloads run one at a time; a failed domain has its partial
// directory removed and is recorded in the failure ledger, and the batch
// moves on.
package wayback

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/pdiddy/sitescope/internal/httputil"
	"github.com/pdiddy/sitescope/internal/logging"
	"github.com/pdiddy/sitescope/pkg/types"
)

// ErrDownloadFailure reports a downloader run that did not succeed.
var ErrDownloadFailure = errors.New("download failure")

// BatchResult holds the outcome of a download run.
type BatchResult struct {
	Downloaded int
	Skipped    int
	Failed     int
}

// Total returns the number of domains processed.
func (r BatchResult) Total() int {
	return r.Downloaded + r.Skipped + r.Failed
}

// HasFailures reports whether any download failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Downloader runs the configured downloader command per domain.
type Downloader struct {
	cfg    types.DownloadConfig
	exec   executor
	client *http.Client
	ledger Ledger
	now    func() time.Time
	log    *slog.Logger
}

// NewDownloader returns a Downloader backed by os/exec.
func NewDownloader(cfg types.DownloadConfig, log *slog.Logger) *Downloader {
	return newDownloader(cfg, osExecutor{}, log)
}

func newDownloader(cfg types.DownloadConfig, exec executor, log *slog.Logger) *Downloader {
	if log == nil {
		log = logging.Discard()
	}
	return &Downloader{
		cfg:    cfg,
		exec:   exec,
		client: httputil.NewClient(cfg.HTTPConfig),
		ledger: Ledger{Path: cfg.LedgerPath},
		now:    time.Now,
		log:    log,
	}
}

// Preflight checks that the downloader binary can be found.
func (d *Downloader) Preflight() error {
	args, err := Command(d.cfg, "example.com")
	if err != nil {
		return err
	}
	if _, err := d.exec.LookPath(args[0]); err != nil {
		return fmt.Errorf("downloader %q not found: %w", args[0], err)
	}
	return nil
}

// Download fetches one domain. An existing domain directory is skipped.
// On failure the partial directory is removed, a ledger row is appended,
// and the returned error wraps ErrDownloadFailure.
func (d *Downloader) Download(ctx context.Context, domain string, w io.Writer) (skipped bool, err error) {
	dir := filepath.Join(d.cfg.BaseDir, domain)
	if fi, err := os.Stat(dir); err == nil && fi.IsDir() {
		fmt.Fprintf(w, "skipped: %s (already exists)\n", domain)
		return true, nil
	}

	if d.cfg.CheckCDX {
		ok, err := HasCaptures(ctx, d.client, d.cfg, domain)
		switch {
		case err != nil:
			d.log.Warn("capture check failed, downloading anyway", "domain", domain, "error", err)
		case !ok:
			fmt.Fprintf(w, "skipped: %s (no archived captures)\n", domain)
			return true, nil
		}
	}

	args, err := Command(d.cfg, domain)
	if err != nil {
		return false, err
	}

	fmt.Fprintf(w, "downloading: https://%s\n", domain)
	d.log.Debug("running downloader", "domain", domain, "args", args)
	runErr := d.exec.Run(ctx, args[0], args[1:], w, w)
	if runErr == nil {
		return false, nil
	}

	if err := os.RemoveAll(dir); err != nil {
		d.log.Warn("removing partial download", "dir", dir, "error", err)
	}
	if err := d.ledger.Append(Failure{Time: d.now(), URL: domain, Error: runErr.Error()}); err != nil {
		d.log.Error("recording failure", "ledger", d.ledger.Path, "error", err)
	}
	return false, fmt.Errorf("%w: %s: %v", ErrDownloadFailure, domain, runErr)
}

// DownloadBatch downloads domains sequentially, printing per-domain status
// to w. Individual failures never stop the batch; cancellation stops it
// between domains.
func (d *Downloader) DownloadBatch(ctx context.Context, domains []string, w io.Writer) (BatchResult, error) {
	var result BatchResult
	if err := os.MkdirAll(d.cfg.BaseDir, 0o755); err != nil {
		return result, fmt.Errorf("creating %s: %w", d.cfg.BaseDir, err)
	}

	for i, domain := range domains {
		if i > 0 && d.cfg.Delay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(d.cfg.Delay):
			}
		}
		if err := ctx.Err(); err != nil {
			d.printSummary(w, result)
			return result, err
		}

		skipped, err := d.Download(ctx, domain, w)
		switch {
		case err != nil:
			fmt.Fprintf(w, "failed:  %s (%v)\n", domain, err)
			result.Failed++
		case skipped:
			result.Skipped++
		default:
			fmt.Fprintf(w, "downloaded: %s\n", domain)
			result.Downloaded++
		}
	}

	d.printSummary(w, result)
	if result.Failed > 0 {
		fmt.Fprintf(w, "%d domains failed, recorded in %s\n", result.Failed, d.ledger.Path)
	}
	return result, nil
}

func (d *Downloader) printSummary(w io.Writer, r BatchResult) {
	fmt.Fprintf(w, "\nBatch summary: %d downloaded, %d skipped, %d failed (total: %d)\n",
		r.Downloaded, r.Skipped, r.Failed, r.Total())
}
