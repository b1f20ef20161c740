package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/sanix-darker/zreview/internal/core"
	printers "github.com/sanix-darker/zreview/internal/printers"
)

const (
	EnvPrefix      = "ZREVIEW"
	EnvConfigPath  = EnvPrefix + "_CONFIG"
	ConfigDirPath  = "~/.config/zreview"
	ConfigFileName = "config.yml"
)

// Settings are the user-tunable options, read from the config file and
// ZREVIEW_* environment variables.
type Settings struct {
	Debug    bool             `mapstructure:"debug" yaml:"debug"`
	Paths    PathsSettings    `mapstructure:"paths" yaml:"paths"`
	HTML     HTMLSettings     `mapstructure:"html" yaml:"html"`
	Comments CommentsSettings `mapstructure:"comments" yaml:"comments"`
	Metrics  MetricsSettings  `mapstructure:"metrics" yaml:"metrics"`
	Fetch    FetchSettings    `mapstructure:"fetch" yaml:"fetch"`
}

type PathsSettings struct {
	// ExecutionRoots are stripped from absolute issue locations, first
	// match wins.
	ExecutionRoots []string `mapstructure:"execution_roots" yaml:"execution_roots"`
}

type HTMLSettings struct {
	Title string `mapstructure:"title" yaml:"title"`
}

type CommentsSettings struct {
	Validate bool `mapstructure:"validate" yaml:"validate"`
	Summary  bool `mapstructure:"summary" yaml:"summary"`
}

type MetricsSettings struct {
	// File is a node exporter textfile; empty disables metrics output.
	File string `mapstructure:"file" yaml:"file"`
}

type FetchSettings struct {
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Paths: PathsSettings{
			ExecutionRoots: append([]string(nil), core.DefaultExecutionRoots...),
		},
		HTML:     HTMLSettings{Title: "Code Review Report"},
		Comments: CommentsSettings{Validate: true},
		Fetch:    FetchSettings{Timeout: 30 * time.Second},
	}
}

// Config contains the entire cli dependencies
type Config struct {
	Version        string
	Settings       Settings
	Viper          *viper.Viper
	ConfigFilePath string
	Printers       printers.IPrinters

	//io Writers useful for testing
	InReader  io.Reader
	OutWriter io.Writer
	ErrWriter io.Writer
}

// NewDefaultConfig creates a new default config
func NewDefaultConfig() Config {
	return Config{
		Settings:  DefaultSettings(),
		Viper:     newViper(),
		Printers:  printers.NewPrinters(),
		InReader:  os.Stdin,
		OutWriter: os.Stdout,
		ErrWriter: os.Stderr,
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	d := DefaultSettings()

	v.SetDefault("debug", d.Debug)
	v.SetDefault("paths.execution_roots", d.Paths.ExecutionRoots)
	v.SetDefault("html.title", d.HTML.Title)
	v.SetDefault("comments.validate", d.Comments.Validate)
	v.SetDefault("comments.summary", d.Comments.Summary)
	v.SetDefault("metrics.file", d.Metrics.File)
	v.SetDefault("fetch.timeout", d.Fetch.Timeout)

	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ResolvePath picks the config file: the explicit path, then
// $ZREVIEW_CONFIG, then ~/.config/zreview/config.yml. explicit reports
// whether the file was asked for rather than defaulted.
func ResolvePath(flagPath string) (path string, explicit bool, err error) {
	switch {
	case flagPath != "":
		path, explicit = flagPath, true
	case os.Getenv(EnvConfigPath) != "":
		path, explicit = os.Getenv(EnvConfigPath), true
	default:
		path = filepath.Join(ConfigDirPath, ConfigFileName)
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", explicit, fmt.Errorf("failed to expand config path %s: %w", path, err)
	}
	return expanded, explicit, nil
}

// Load builds a Config from defaults, the config file and the environment.
// A missing default config file is fine; a missing explicit one is not.
func Load(flagPath string) (Config, error) {
	conf := NewDefaultConfig()

	path, explicit, err := ResolvePath(flagPath)
	if err != nil {
		return conf, err
	}
	conf.ConfigFilePath = path

	if _, err := os.Stat(path); err == nil {
		conf.Viper.SetConfigFile(path)
		if err := conf.Viper.ReadInConfig(); err != nil {
			return conf, fmt.Errorf("failed to load config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) || explicit {
		return conf, core.IOError(path, "failed to read config", err)
	}

	// Decode into zero settings: the viper defaults already carry
	// DefaultSettings, and decoding over a populated slice would merge
	// configured execution roots with the default ones.
	var settings Settings
	if err := conf.Viper.Unmarshal(&settings); err != nil {
		return conf, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	conf.Settings = settings
	return conf, nil
}

// Validate reports every invalid setting at once.
func (s Settings) Validate() error {
	var problems []string

	for _, root := range s.Paths.ExecutionRoots {
		if !strings.HasPrefix(root, "/") || !strings.HasSuffix(root, "/") {
			problems = append(problems,
				fmt.Sprintf("paths.execution_roots: %q must be absolute and end with /", root))
		}
	}
	if s.Fetch.Timeout <= 0 {
		problems = append(problems, fmt.Sprintf("fetch.timeout: must be positive, got %s", s.Fetch.Timeout))
	}
	if s.Metrics.File != "" && filepath.Ext(s.Metrics.File) != ".prom" {
		problems = append(problems,
			fmt.Sprintf("metrics.file: %q must have the .prom extension", s.Metrics.File))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}

// YAML renders the settings as a config file body.
func (s Settings) YAML() ([]byte, error) {
	out, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return out, nil
}

// SampleConfigYAML is written by `zreview config init`.
func SampleConfigYAML() ([]byte, error) {
	body, err := DefaultSettings().YAML()
	if err != nil {
		return nil, err
	}
	header := "# zreview configuration\n" +
		"# Every key can be overridden with a ZREVIEW_ environment variable,\n" +
		"# e.g. ZREVIEW_HTML_TITLE or ZREVIEW_COMMENTS_VALIDATE.\n"
	return append([]byte(header), body...), nil
}
