// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package wayback

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/sitescope/internal/httputil"
	"github.com/pdiddy/sitescope/pkg/types"
)

// HasCaptures asks the archive's CDX index whether any capture of domain
// exists since fromYear. The JSON output is a header row followed by one
// row per capture, so more than one row means yes.
func HasCaptures(ctx context.Context, client *http.Client, cfg types.DownloadConfig, domain string) (bool, error) {
	q := url.Values{}
	q.Set("url", domain)
	q.Set("output", "json")
	q.Set("limit", "1")
	q.Set("fl", "timestamp")
	if cfg.FromYear > 0 {
		q.Set("from", strconv.Itoa(cfg.FromYear))
	}

	resp, err := httputil.Get(ctx, client, cfg.CDXEndpoint+"?"+q.Encode(), cfg.HTTPConfig, 0)
	if err != nil {
		return false, fmt.Errorf("querying capture index for %s: %w", domain, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("capture index returned HTTP %d for %s", resp.StatusCode, domain)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, fmt.Errorf("reading capture index response: %w", err)
	}
	if len(body) == 0 {
		return false, nil
	}

	var rows [][]string
	if err := json.Unmarshal(body, &rows); err != nil {
		return false, fmt.Errorf("decoding capture index response: %w", err)
	}
	return len(rows) > 1, nil
}
