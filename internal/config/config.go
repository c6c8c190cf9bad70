package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultThreshold = 80
	defaultTimezone  = "UTC"

	configPathEnv   = "IRNOTIFIER_CONFIG"
	webhookURLEnv   = "SLACK_WEBHOOK_URL"
	thresholdEnv    = "SCORE_THRESHOLD"
	databaseDSNEnv  = "DATABASE_DSN"
	watchDirEnv     = "IRNOTIFIER_WATCH_DIR"
	loggingLevelEnv = "IRNOTIFIER_LOG_LEVEL"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging   LoggingConfig   `yaml:"logging"`
	Slack     SlackConfig     `yaml:"slack"`
	Paths     PathsConfig     `yaml:"paths"`
	Watch     WatchConfig     `yaml:"watch"`
	Database  DatabaseConfig  `yaml:"database"`
	Generator GeneratorConfig `yaml:"generator"`
}

// LoggingConfig selects slog level and handler format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SlackConfig wires the outbound webhook and the notification threshold.
type SlackConfig struct {
	WebhookURL     string `yaml:"webhookUrl"`
	ScoreThreshold int    `yaml:"scoreThreshold"`
}

// PathsConfig locates dictionary sources, backups, and the audit ledger.
type PathsConfig struct {
	CustomDictionary string `yaml:"customDictionary"`
	AutoDictionary   string `yaml:"autoDictionary"`
	BackupDir        string `yaml:"backupDir"`
	LogsDir          string `yaml:"logsDir"`
}

// WatchConfig describes the optional incoming-file directory.
type WatchConfig struct {
	Dir        string   `yaml:"dir"`
	Extensions []string `yaml:"extensions"`
}

// DatabaseConfig describes the optional Postgres connection for dedup/history.
type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

// GeneratorConfig drives automatic dictionary generation.
type GeneratorConfig struct {
	MaxKeywords int            `yaml:"maxKeywords"`
	CorpusLimit int            `yaml:"corpusLimit"`
	Interval    time.Duration  `yaml:"interval"`
	Timezone    string         `yaml:"timezone"`
	Sources     []SourceConfig `yaml:"sources"`
	location    *time.Location `yaml:"-"`
}

// SourceConfig describes one corpus list page and its CSS selectors.
type SourceConfig struct {
	Name         string `yaml:"name"`
	URL          string `yaml:"url"`
	LinkSelector string `yaml:"linkSelector"`
	TextSelector string `yaml:"textSelector"`
}

// Location resolves the generator timezone string to a time.Location.
func (g GeneratorConfig) Location() *time.Location {
	if g.location != nil {
		return g.location
	}
	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			// Pre-seeded sentinel so an explicit zero threshold in the
			// file survives the merge.
			var fileCfg Config
			fileCfg.Slack.ScoreThreshold = -1
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.bindTimezone()
	cfg.validateThreshold()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(webhookURLEnv); v != "" {
		c.Slack.WebhookURL = v
	}

	if v := os.Getenv(thresholdEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err != nil {
			log.Printf("config: invalid %s=%q: %v", thresholdEnv, v, err)
		} else {
			c.Slack.ScoreThreshold = parsed
		}
	}

	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Database.DSN = v
	}

	if v := os.Getenv(watchDirEnv); v != "" {
		c.Watch.Dir = v
	}

	if v := os.Getenv(loggingLevelEnv); v != "" {
		c.Logging.Level = v
	}
}

func (c *Config) bindTimezone() {
	tz := c.Generator.Timezone
	if tz == "" {
		tz = defaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("config: unknown timezone %s, reverting to %s", tz, defaultTimezone)
		loc, _ = time.LoadLocation(defaultTimezone)
	}
	c.Generator.location = loc
}

func (c *Config) validateThreshold() {
	if c.Slack.ScoreThreshold < 0 || c.Slack.ScoreThreshold > 100 {
		log.Printf("config: scoreThreshold %d out of [0,100], reverting to %d",
			c.Slack.ScoreThreshold, defaultThreshold)
		c.Slack.ScoreThreshold = defaultThreshold
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		base.Logging.Format = override.Logging.Format
	}

	if override.Slack.WebhookURL != "" {
		base.Slack.WebhookURL = override.Slack.WebhookURL
	}
	if override.Slack.ScoreThreshold >= 0 {
		base.Slack.ScoreThreshold = override.Slack.ScoreThreshold
	}

	if override.Paths.CustomDictionary != "" {
		base.Paths.CustomDictionary = override.Paths.CustomDictionary
	}
	if override.Paths.AutoDictionary != "" {
		base.Paths.AutoDictionary = override.Paths.AutoDictionary
	}
	if override.Paths.BackupDir != "" {
		base.Paths.BackupDir = override.Paths.BackupDir
	}
	if override.Paths.LogsDir != "" {
		base.Paths.LogsDir = override.Paths.LogsDir
	}

	if override.Watch.Dir != "" {
		base.Watch.Dir = override.Watch.Dir
	}
	if len(override.Watch.Extensions) > 0 {
		base.Watch.Extensions = override.Watch.Extensions
	}

	if override.Database.DSN != "" {
		base.Database.DSN = override.Database.DSN
	}

	if override.Generator.MaxKeywords != 0 {
		base.Generator.MaxKeywords = override.Generator.MaxKeywords
	}
	if override.Generator.CorpusLimit != 0 {
		base.Generator.CorpusLimit = override.Generator.CorpusLimit
	}
	if override.Generator.Interval != 0 {
		base.Generator.Interval = override.Generator.Interval
	}
	if override.Generator.Timezone != "" {
		base.Generator.Timezone = override.Generator.Timezone
	}
	if len(override.Generator.Sources) > 0 {
		base.Generator.Sources = override.Generator.Sources
	}

	return base
}

func defaultConfig() Config {
	tz, _ := time.LoadLocation(defaultTimezone)
	return Config{
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Slack:   SlackConfig{WebhookURL: "", ScoreThreshold: defaultThreshold},
		Paths: PathsConfig{
			CustomDictionary: "custom_keywords/keywords.csv",
			AutoDictionary:   "auto_keywords/auto_keywords.json",
			BackupDir:        "backup",
			LogsDir:          "logs",
		},
		Watch: WatchConfig{
			Dir:        "",
			Extensions: []string{".txt", ".html", ".csv"},
		},
		Database: DatabaseConfig{DSN: ""},
		Generator: GeneratorConfig{
			MaxKeywords: 200,
			CorpusLimit: 100,
			Interval:    24 * time.Hour,
			Timezone:    defaultTimezone,
			location:    tz,
			Sources: []SourceConfig{
				{
					Name:         "prtimes-kessan",
					URL:          "https://prtimes.jp/main/html/searchrlp/key/%E6%B1%BA%E7%AE%97",
					LinkSelector: "h3.list-title a",
					TextSelector: ".prtimes-article-body p",
				},
			},
		},
	}
}
