// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "sitescope/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// Profile names one of the built-in analysis profiles.
type Profile string

const (
	ProfilePersonalization Profile = "personalization"
	ProfileTracking        Profile = "tracking"
)

// AnalysisConfig holds settings for the personalize and tracking stages.
type AnalysisConfig struct {
	// IndexGlob selects the representative snapshot inside a year directory.
	IndexGlob string `json:"index_glob" yaml:"index_glob" mapstructure:"index_glob"`

	// MinYear and MaxYear bound the numeric year directories that are scanned.
	MinYear int `json:"min_year" yaml:"min_year" mapstructure:"min_year"`
	MaxYear int `json:"max_year" yaml:"max_year" mapstructure:"max_year"`

	// Workers is the number of documents analyzed concurrently (default 1).
	Workers int `json:"workers" yaml:"workers" mapstructure:"workers"`

	// Detailed adds a per-evidence sheet to batch workbooks.
	Detailed bool `json:"detailed" yaml:"detailed" mapstructure:"detailed"`

	// CataloguePath optionally replaces the built-in catalogue with a YAML file.
	CataloguePath string `json:"catalogue_path,omitempty" yaml:"catalogue_path,omitempty" mapstructure:"catalogue_path"`
}

// DownloadConfig holds settings for the archive download stage.
type DownloadConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseDir receives one directory per downloaded domain.
	BaseDir string `json:"base_dir" yaml:"base_dir" mapstructure:"base_dir"`

	// LedgerPath is the append-only CSV of failed downloads.
	LedgerPath string `json:"ledger_path" yaml:"ledger_path" mapstructure:"ledger_path"`

	// PendingPath receives the workbook of domains still to download.
	PendingPath string `json:"pending_path" yaml:"pending_path" mapstructure:"pending_path"`

	// Command is the downloader invocation template. Placeholders:
	// {url}, {domain}, {dir}, {from}, {concurrency}.
	Command string `json:"command" yaml:"command" mapstructure:"command"`

	// FromYear is passed to the downloader as the earliest snapshot year.
	FromYear int `json:"from_year" yaml:"from_year" mapstructure:"from_year"`

	// Concurrency is passed to the downloader for its own fetch parallelism.
	Concurrency int `json:"concurrency" yaml:"concurrency" mapstructure:"concurrency"`

	// Delay is the pause between consecutive domains.
	Delay time.Duration `json:"delay" yaml:"delay" mapstructure:"delay"`

	// CheckCDX skips domains the archive has no captures for.
	CheckCDX bool `json:"check_cdx" yaml:"check_cdx" mapstructure:"check_cdx"`

	// CDXEndpoint is the capture index queried when CheckCDX is set.
	CDXEndpoint string `json:"cdx_endpoint" yaml:"cdx_endpoint" mapstructure:"cdx_endpoint"`
}

// SampleConfig holds settings for the folder sampling stage.
type SampleConfig struct {
	// WebsitesDir is the corpus root whose first-level folders are sampled.
	WebsitesDir string `json:"websites_dir" yaml:"websites_dir" mapstructure:"websites_dir"`

	// DestDir receives the copied text files.
	DestDir string `json:"dest_dir" yaml:"dest_dir" mapstructure:"dest_dir"`

	// Count is the number of folders drawn.
	Count int `json:"count" yaml:"count" mapstructure:"count"`

	// MinFolders is the smallest corpus the sampler accepts.
	MinFolders int `json:"min_folders" yaml:"min_folders" mapstructure:"min_folders"`

	// Pattern selects the files copied from each sampled folder.
	Pattern string `json:"pattern" yaml:"pattern" mapstructure:"pattern"`

	// Seed fixes the random source; zero draws a fresh seed.
	Seed uint64 `json:"seed" yaml:"seed" mapstructure:"seed"`
}

// StoreConfig holds settings for the result history database.
type StoreConfig struct {
	// Path is the SQLite database file. Empty disables persistence.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// LogConfig selects diagnostic verbosity.
type LogConfig struct {
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// Config groups all stage configurations.
type Config struct {
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis" mapstructure:"analysis"`
	Download DownloadConfig `json:"download" yaml:"download" mapstructure:"download"`
	Sample   SampleConfig   `json:"sample" yaml:"sample" mapstructure:"sample"`
	Store    StoreConfig    `json:"store" yaml:"store" mapstructure:"store"`
	Log      LogConfig      `json:"log" yaml:"log" mapstructure:"log"`
}

// DefaultConfig returns the settings used when no config file or flag
// overrides a value.
func DefaultConfig() Config {
	return Config{
		Analysis: AnalysisConfig{
			IndexGlob: "*_index.html",
			MinYear:   2009,
			MaxYear:   2025,
			Workers:   1,
			Detailed:  true,
		},
		Download: DownloadConfig{
			HTTPConfig: HTTPConfig{
				Timeout:   30 * time.Second,
				UserAgent: "sitescope/0.1",
			},
			BaseDir:     "websites",
			LedgerPath:  "failed_urls.csv",
			PendingPath: "domains_remain.xlsx",
			Command:     "ruby bin/wayback_machine_downloader {url} -sl -f {from} --concurrency {concurrency}",
			FromYear:    2009,
			Concurrency: 15,
			CDXEndpoint: "https://web.archive.org/cdx/search/cdx",
		},
		Sample: SampleConfig{
			WebsitesDir: "websites",
			DestDir:     "outputs/random_select",
			Count:       200,
			MinFolders:  100,
			Pattern:     "*.txt",
		},
		Log: LogConfig{Level: "info"},
	}
}
