package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Content layout
	DataDir      string `long:"data-dir" env:"DATA_DIR" default:"./data" description:"Directory for local snapshot output"`
	IssuesDir    string `long:"issues-dir" env:"ISSUES_DIR" default:"./issues" description:"Directory containing per-date issue folders"`
	ConfigPath   string `long:"config" env:"X_CONFIG_PATH" default:"./config/x-config.yaml" description:"Path to the snapshot configuration file"`
	MockPath     string `long:"mock" env:"X_MOCK_PATH" description:"Path to a mock snapshot fixture; enables the mock source"`
	DBPath       string `long:"db-path" env:"DB_PATH" default:"./data/ai-daily.db" description:"SQLite database path"`
	TemplatePath string `long:"template" env:"TEMPLATE_PATH" default:"./templates/daily-template.html" description:"Issue page template"`
	IndexPath    string `long:"index" env:"INDEX_PATH" default:"./index.html" description:"Archive index page"`

	// Papers feed import
	PapersFeedURL string `long:"papers-feed" env:"PAPERS_FEED_URL" default:"https://papers.takara.ai/api/feed" description:"RSS feed for daily paper notes"`
	PapersLimit   int    `long:"papers-limit" env:"PAPERS_LIMIT" default:"10" description:"Maximum papers to import per issue"`

	// Server configuration
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for authentication (optional)"`
	Watch        bool   `long:"watch" env:"WATCH" description:"Rebuild the site when issue files change"`

	// Snapshot source
	XBearerToken string `long:"x-bearer-token" env:"X_BEARER_TOKEN" description:"Bearer token for the X API (required for the live source)"`
	Date         string `long:"date" env:"ISSUE_DATE" description:"Issue date (YYYY-MM-DD, defaults to today UTC)"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"AI Daily/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`

	Args struct {
		Command string `positional-arg-name:"command" description:"serve, snapshot, import, images, build or all (default: serve)"`
	} `positional-args:"yes"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Command:       cmp.Or(raw.Args.Command, "serve"),
		DataDir:       raw.DataDir,
		IssuesDir:     raw.IssuesDir,
		ConfigPath:    raw.ConfigPath,
		MockPath:      raw.MockPath,
		DBPath:        raw.DBPath,
		TemplatePath:  raw.TemplatePath,
		IndexPath:     raw.IndexPath,
		PapersFeedURL: raw.PapersFeedURL,
		PapersLimit:   raw.PapersLimit,
		Port:          raw.Port,
		APIAccessKey:  raw.APIAccessKey,
		Watch:         raw.Watch,
		XBearerToken:  raw.XBearerToken,
		Date:          cmp.Or(raw.Date, time.Now().UTC().Format("2006-01-02")),
		UserAgent:     raw.UserAgent,
		Timezone:      raw.Timezone,
		Debug:         raw.Debug,
		Version:       GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
