package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Tree sources accepted by tree.source.
const (
	SourceStandard = "standard"
	SourceTest     = "test"
	SourceText     = "text"
	SourceFile     = "file"
)

// Output formats accepted by output.format.
const (
	FormatText   = "text"
	FormatPacked = "packed"
	FormatZstd   = "zstd"
)

// Config holds all configuration for the application
type Config struct {
	Tree   TreeConfig   `mapstructure:"tree"`
	Encode StageConfig  `mapstructure:"encode"`
	Decode StageConfig  `mapstructure:"decode"`
	Output OutputConfig `mapstructure:"output"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

// TreeConfig selects where the Huffman tree comes from
type TreeConfig struct {
	Source   string `mapstructure:"source"`
	TextPath string `mapstructure:"text_path"`
	BitsPath string `mapstructure:"bits_path"`
	FillGaps bool   `mapstructure:"fill_gaps"`
}

// StageConfig holds the input and output files of the encode or decode stage
type StageConfig struct {
	Input  string `mapstructure:"input"`
	Output string `mapstructure:"output"`
}

// OutputConfig controls what gets saved and echoed
type OutputConfig struct {
	SaveTree       bool   `mapstructure:"save_tree"`
	TreePath       string `mapstructure:"tree_path"`
	DisplayAllBits bool   `mapstructure:"display_all_bits"`
	DisplayLimit   int    `mapstructure:"display_limit"`
	Format         string `mapstructure:"format"`
}

// ServerConfig holds HTTP API configuration
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// EnvPrefix is the prefix of environment variables that override settings,
// e.g. HUFFMAN_TREE_SOURCE.
const EnvPrefix = "HUFFMAN"

// LoadConfig loads configuration from file, environment variables and flags.
// Flags that were not set on the command line do not override the file.
func LoadConfig(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// flagKeys maps command-line flag names to configuration keys
var flagKeys = map[string]string{
	"tree":             "tree.source",
	"tree-text":        "tree.text_path",
	"tree-bits":        "tree.bits_path",
	"fill-gaps":        "tree.fill_gaps",
	"encode-input":     "encode.input",
	"encode-output":    "encode.output",
	"decode-input":     "decode.input",
	"decode-output":    "decode.output",
	"save-tree":        "output.save_tree",
	"tree-output":      "output.tree_path",
	"all-bits":         "output.display_all_bits",
	"display-limit":    "output.display_limit",
	"format":           "output.format",
	"addr":             "server.addr",
	"shutdown-timeout": "server.shutdown_timeout",
	"log-level":        "log.level",
	"log-pretty":       "log.pretty",
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("tree.source", SourceStandard)
	v.SetDefault("tree.text_path", "")
	v.SetDefault("tree.bits_path", "")
	v.SetDefault("tree.fill_gaps", true)

	v.SetDefault("encode.input", "")
	v.SetDefault("encode.output", "encoded.txt")
	v.SetDefault("decode.input", "")
	v.SetDefault("decode.output", "decoded.txt")

	v.SetDefault("output.save_tree", true)
	v.SetDefault("output.tree_path", "treeBitRep.txt")
	v.SetDefault("output.display_all_bits", true)
	v.SetDefault("output.display_limit", 1000)
	v.SetDefault("output.format", FormatText)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", "5s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", true)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Tree.Source {
	case SourceStandard, SourceTest:
	case SourceText:
		if c.Tree.TextPath == "" {
			return fmt.Errorf("tree source %q requires tree.text_path", c.Tree.Source)
		}
	case SourceFile:
		if c.Tree.BitsPath == "" {
			return fmt.Errorf("tree source %q requires tree.bits_path", c.Tree.Source)
		}
	default:
		return fmt.Errorf("invalid tree source: %q", c.Tree.Source)
	}

	switch c.Output.Format {
	case FormatText, FormatPacked, FormatZstd:
	default:
		return fmt.Errorf("invalid output format: %q", c.Output.Format)
	}

	if c.Output.DisplayLimit < 0 {
		return fmt.Errorf("invalid display limit: %d", c.Output.DisplayLimit)
	}
	if c.Output.SaveTree && c.Output.TreePath == "" {
		return fmt.Errorf("output.tree_path is required when output.save_tree is set")
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("invalid shutdown timeout: %s", c.Server.ShutdownTimeout)
	}

	return nil
}
