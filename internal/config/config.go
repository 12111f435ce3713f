package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/altinukshini/docsearch/internal/terms"
)

const envPrefix = "DOCSEARCH"

type Config struct {
	File          string        `mapstructure:"file"`
	Terms         string        `mapstructure:"terms"`
	CaseSensitive bool          `mapstructure:"case_sensitive"`
	Delimiters    string        `mapstructure:"delimiters"`
	Display       string        `mapstructure:"display"`
	ShowMissing   bool          `mapstructure:"show_missing"`
	Watch         bool          `mapstructure:"watch"`
	WatchDelay    time.Duration `mapstructure:"watch_delay"`
	Print         bool          `mapstructure:"print"`
	Log           Log           `mapstructure:"log"`
	Cache         Cache         `mapstructure:"cache"`

	// ShowVersion is only ever set from the command line.
	ShowVersion bool `mapstructure:"-"`
}

// Cache configures the converted-text cache. An empty Dir means the user
// cache directory.
type Cache struct {
	Enabled bool          `mapstructure:"enabled"`
	Dir     string        `mapstructure:"dir"`
	SizeMB  int           `mapstructure:"size_mb"`
	TTL     time.Duration `mapstructure:"ttl"`
}

type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("file", "")
	v.SetDefault("terms", "")
	v.SetDefault("case_sensitive", true)
	v.SetDefault("delimiters", string(terms.DelimitersExtended))
	v.SetDefault("display", "styled")
	v.SetDefault("show_missing", false)
	v.SetDefault("watch", true)
	v.SetDefault("watch_delay", 200*time.Millisecond)
	v.SetDefault("print", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.dir", "")
	v.SetDefault("cache.size_mb", 200)
	v.SetDefault("cache.ttl", 7*24*time.Hour)
}

func newFlagSet(name string, out io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.String("config", "", "Path to a YAML config file")
	fs.StringP("file", "f", "", "Document to search")
	fs.StringP("terms", "t", "", "Search terms, separated by the delimiter set")
	fs.BoolP("case-sensitive", "c", true, "Match terms case sensitively")
	fs.String("delimiters", string(terms.DelimitersExtended), "Term delimiters: extended (whitespace and commas) or lines")
	fs.String("display", "styled", "Breakdown style: plain or styled")
	fs.Bool("show-missing", false, "List terms that were not found (styled display only)")
	fs.Bool("watch", true, "Re-run the search when the document changes")
	fs.Bool("print", false, "Print the breakdown and exit instead of starting the UI")
	fs.Bool("cache", true, "Cache text extracted from PDF and office documents")
	fs.String("cache-dir", "", "Cache directory (default: user cache directory)")
	fs.Int("cache-size", 200, "Maximum cache size in MB")
	fs.Duration("cache-ttl", 7*24*time.Hour, "Cache entry TTL")
	fs.String("log-file", "", "Write logs to this file")
	fs.String("log-level", "info", "Log level")
	fs.String("log-format", "json", "Log format: json or console")
	fs.Bool("version", false, "Print version and exit")
	return fs
}

// Load resolves the configuration from defaults, an optional YAML file, the
// DOCSEARCH_* environment and finally args (without the program name).
func Load(args []string, stderr io.Writer) (Config, error) {
	v := viper.New()
	setDefaults(v)

	fs := newFlagSet("docsearch", stderr)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	binds := map[string]string{
		"file":           "file",
		"terms":          "terms",
		"case_sensitive": "case-sensitive",
		"delimiters":     "delimiters",
		"display":        "display",
		"show_missing":   "show-missing",
		"watch":          "watch",
		"print":          "print",
		"log.file":       "log-file",
		"cache.enabled":  "cache",
		"cache.dir":      "cache-dir",
		"cache.size_mb":  "cache-size",
		"cache.ttl":      "cache-ttl",
		"log.level":      "log-level",
		"log.format":     "log-format",
	}
	for key, flag := range binds {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return Config{}, fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfgPath, _ := fs.GetString("config")
	if err := readConfigFile(v, cfgPath); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ShowVersion, _ = fs.GetBool("version")

	return cfg, nil
}

// readConfigFile reads an explicit path, or the default location when it
// exists. A missing default file is not an error.
func readConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("unable to read config file: %w", err)
		}
		return nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return nil
	}
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(dir, "docsearch"))
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("unable to read config file: %w", err)
	}
	return nil
}

func (c Config) DelimiterSet() terms.DelimiterSet {
	set, err := terms.ParseDelimiterSet(c.Delimiters)
	if err != nil {
		return terms.DelimitersExtended
	}
	return set
}

func (c Config) Validate() error {
	if _, err := terms.ParseDelimiterSet(c.Delimiters); err != nil {
		return err
	}
	switch c.Display {
	case "plain", "styled":
	default:
		return fmt.Errorf("display must be plain or styled, got %q", c.Display)
	}
	if c.Print && c.Terms == "" {
		return fmt.Errorf("--print needs search terms (use -t)")
	}
	if c.WatchDelay < 0 {
		return fmt.Errorf("watch_delay must not be negative")
	}
	if c.Cache.Enabled && c.Cache.SizeMB <= 0 {
		return fmt.Errorf("cache.size_mb must be positive")
	}
	return nil
}

// CacheDir resolves where converted text is cached.
func (c Config) CacheDir() string {
	if c.Cache.Dir != "" {
		return c.Cache.Dir
	}
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "docsearch")
	}
	return filepath.Join(os.TempDir(), "docsearch")
}
