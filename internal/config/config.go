package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Site        string `yaml:"site"`
	Title       string `yaml:"title"`
	Output      string `yaml:"output"`
	Concurrency int    `yaml:"concurrency"`

	// TimeoutSeconds bounds each HTTP request; the transport default applies
	// when zero.
	TimeoutSeconds int `yaml:"timeout_seconds"`

	DefaultRange string `yaml:"default_range"`
	DefaultList  string `yaml:"default_list"`

	Cookie           string `yaml:"cookie"`
	CookieFile       string `yaml:"cookie_file"`
	UserAgent        string `yaml:"user_agent"`
	CloudflareBypass bool   `yaml:"cloudflare_bypass"`

	Debug bool `yaml:"debug"`
}

type Options struct {
	IgnoreConfig     bool
	Debug            bool
	Site             string
	Title            string
	Output           string
	Concurrency      int
	TimeoutSeconds   int
	DefaultRange     string
	DefaultList      string
	Cookie           string
	CookieFile       string
	UserAgent        string
	CloudflareBypass bool
}

func DefaultConfig() *Config {
	return &Config{
		Output:         ".",
		Concurrency:    4,
		TimeoutSeconds: 30,
	}
}

func SaveYAML(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func loadYAML(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadMerged resolves the effective config: the active profile, if any,
// overlaid with whatever CLI options were set. It returns the path the config
// came from for display.
func LoadMerged(opts Options) (*Config, string, error) {
	if opts.IgnoreConfig {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(ignored config)", nil
	}

	activePath, err := ActiveConfigPath()
	if err == ErrNoConfig || activePath == "" {
		cfg := DefaultConfig()
		mergeConfig(cfg, opts)
		normalizeDefaults(cfg)
		return cfg, "(default config in memory)\nRun `getmanga config init` to create an actual config\n", nil
	}
	if err != nil {
		return nil, "", err
	}

	cfg, err := loadYAML(activePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config %s: %w", activePath, err)
	}

	mergeConfig(cfg, opts)
	normalizeDefaults(cfg)

	return cfg, activePath, nil
}

func mergeConfig(c *Config, o Options) {
	if o.Site != "" {
		c.Site = o.Site
	}
	if o.Title != "" {
		c.Title = o.Title
	}
	if o.Output != "" {
		c.Output = o.Output
	}
	if o.Concurrency != 0 {
		c.Concurrency = o.Concurrency
	}
	if o.TimeoutSeconds != 0 {
		c.TimeoutSeconds = o.TimeoutSeconds
	}
	if o.DefaultRange != "" {
		c.DefaultRange = o.DefaultRange
	}
	if o.DefaultList != "" {
		c.DefaultList = o.DefaultList
	}
	if o.Cookie != "" {
		c.Cookie = o.Cookie
	}
	if o.CookieFile != "" {
		c.CookieFile = o.CookieFile
	}
	if o.UserAgent != "" {
		c.UserAgent = o.UserAgent
	}
	if o.CloudflareBypass {
		c.CloudflareBypass = true
	}
	if o.Debug {
		c.Debug = true
	}
}

func normalizeDefaults(c *Config) {
	if c.Output == "" {
		c.Output = "."
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
}

func (c *Config) Print() {
	if c.Site != "" {
		fmt.Printf(" -site: %s\n", c.Site)
	}
	if c.Title != "" {
		fmt.Printf(" -title: %s\n", c.Title)
	}
	fmt.Printf(" -output: %s\n", c.Output)
	fmt.Printf(" -concurrency: %d\n", c.Concurrency)
	fmt.Printf(" -timeout_seconds: %d\n", c.TimeoutSeconds)
	if c.DefaultRange != "" {
		fmt.Printf(" -range: %s\n", c.DefaultRange)
	}
	if c.DefaultList != "" {
		fmt.Printf(" -list: %s\n", c.DefaultList)
	}
	if c.CookieFile != "" {
		fmt.Printf(" -cookie_file: %s\n", c.CookieFile)
	}
	if c.UserAgent != "" {
		fmt.Printf(" -user_agent: %s\n", c.UserAgent)
	}
	if c.CloudflareBypass {
		fmt.Printf(" -cloudflare_bypass: %t\n", c.CloudflareBypass)
	}
	if c.Debug {
		fmt.Printf(" -debug: %t\n", c.Debug)
	}
}
