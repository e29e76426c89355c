package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultSourceURL = "https://www.postgresql.org/about/newsarchive/conferences/"
	DefaultDataFile  = "data/conferences.json"
	DefaultAPIURL    = "https://api.github.com"
	DefaultTimeout   = 30 * time.Second
)

// DefaultLabels are attached to every created issue
var DefaultLabels = []string{"conference-update", "automated"}

// GitHubConfig identifies the repository issues are filed against
type GitHubConfig struct {
	Token      string   `yaml:"token"`
	Repository string   `yaml:"repository"` // owner/name
	APIURL     string   `yaml:"api_url"`
	Labels     []string `yaml:"labels"`
}

// Enabled reports whether both token and repository are set
func (g GitHubConfig) Enabled() bool {
	return g.Token != "" && g.Repository != ""
}

// TwitterConfig holds OAuth1 credentials for the optional announcement post
type TwitterConfig struct {
	APIKey       string `yaml:"api_key"`
	APISecret    string `yaml:"api_secret"`
	AccessToken  string `yaml:"access_token"`
	AccessSecret string `yaml:"access_secret"`
}

// Enabled reports whether all four credentials are set
func (t TwitterConfig) Enabled() bool {
	return t.APIKey != "" && t.APISecret != "" && t.AccessToken != "" && t.AccessSecret != ""
}

// Config is the complete run configuration
type Config struct {
	SourceURL string        `yaml:"source_url"`
	DataFile  string        `yaml:"data_file"`
	Timeout   time.Duration `yaml:"timeout"`
	LogLevel  string        `yaml:"log_level"`
	GitHub    GitHubConfig  `yaml:"github"`
	Twitter   TwitterConfig `yaml:"twitter"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		SourceURL: DefaultSourceURL,
		DataFile:  DefaultDataFile,
		Timeout:   DefaultTimeout,
		LogLevel:  "info",
		GitHub: GitHubConfig{
			APIURL: DefaultAPIURL,
			Labels: append([]string(nil), DefaultLabels...),
		},
	}
}

// LoadFile reads a YAML configuration file and fills anything it leaves unset
// from the defaults
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := mergo.Merge(&cfg, Default()); err != nil {
		return nil, fmt.Errorf("applying defaults: %w", err)
	}

	return &cfg, nil
}

// Load builds the configuration from defaults, the optional file at path, and
// the environment. An empty path skips the file.
func Load(path string, getenv func(string) string) (*Config, error) {
	cfg := Default()
	if path != "" {
		fileCfg, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = fileCfg
	}

	if getenv == nil {
		getenv = os.Getenv
	}
	if err := cfg.ApplyEnv(getenv); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyEnv overrides configuration with any non-empty environment values
func (c *Config) ApplyEnv(getenv func(string) string) error {
	env := &Config{
		SourceURL: getenv("PGCONF_SOURCE_URL"),
		DataFile:  getenv("PGCONF_DATA_FILE"),
		LogLevel:  getenv("PGCONF_LOG_LEVEL"),
		GitHub: GitHubConfig{
			Token:      getenv("GITHUB_TOKEN"),
			Repository: getenv("GITHUB_REPOSITORY"),
			APIURL:     getenv("GITHUB_API_URL"),
		},
		Twitter: TwitterConfig{
			APIKey:       getenv("TWITTER_API_KEY"),
			APISecret:    getenv("TWITTER_API_SECRET"),
			AccessToken:  getenv("TWITTER_ACCESS_TOKEN"),
			AccessSecret: getenv("TWITTER_ACCESS_SECRET"),
		},
	}

	if raw := getenv("PGCONF_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("parsing PGCONF_TIMEOUT: %w", err)
		}
		env.Timeout = timeout
	}

	if labels := getenv("PGCONF_ISSUE_LABELS"); labels != "" {
		for _, label := range strings.Split(labels, ",") {
			if label = strings.TrimSpace(label); label != "" {
				env.GitHub.Labels = append(env.GitHub.Labels, label)
			}
		}
	}

	if err := mergo.Merge(c, env, mergo.WithOverride); err != nil {
		return fmt.Errorf("applying environment: %w", err)
	}

	return nil
}

// Validate checks values that would otherwise fail late in a run
func (c *Config) Validate() error {
	if c.SourceURL == "" {
		return fmt.Errorf("source URL is required")
	}
	if c.DataFile == "" {
		return fmt.Errorf("data file is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.GitHub.Repository != "" && strings.Count(c.GitHub.Repository, "/") != 1 {
		return fmt.Errorf("invalid GitHub repository %q (want owner/name)", c.GitHub.Repository)
	}
	return nil
}
