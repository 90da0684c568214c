// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wayback

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdiddy/sitescope/pkg/types"
)

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// Command expands the downloader template for one domain. Placeholders:
// {url} https://<domain>, {domain}, {dir} the domain directory under
// BaseDir, {from} FromYear, {concurrency} Concurrency. The template is
// split on whitespace and run without a shell.
func Command(cfg types.DownloadConfig, domain string) ([]string, error) {
	r := strings.NewReplacer(
		"{url}", "https://"+domain,
		"{domain}", domain,
		"{dir}", filepath.Join(cfg.BaseDir, domain),
		"{from}", strconv.Itoa(cfg.FromYear),
		"{concurrency}", strconv.Itoa(cfg.Concurrency),
	)
	fields := strings.Fields(cfg.Command)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty downloader command")
	}
	for i, f := range fields {
		fields[i] = r.Replace(f)
	}
	return fields, nil
}
