package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/danmuck/bitsctl/internal/logging"
	"github.com/danmuck/bitsctl/internal/packet"
)

// Dump formats accepted by the decode command.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config is the resolved bitsctl runtime configuration.
type Config struct {
	Input           string
	Format          string
	LogLevel        string // empty keeps the env/profile level
	MetricsTextfile string
	Decoder         packet.Options
}

// bitsctl.toml key mapping.
type fileConfig struct {
	Input           string        `toml:"input"`
	Format          string        `toml:"format"`
	LogLevel        string        `toml:"log_level"`
	MetricsTextfile string        `toml:"metrics_textfile"`
	Decoder         decoderConfig `toml:"decoder"`
}

type decoderConfig struct {
	MaxDepth           int  `toml:"max_depth"`
	RequireZeroPadding bool `toml:"require_zero_padding"`
}

func DefaultConfig() Config {
	return Config{
		Format:  FormatText,
		Decoder: packet.DefaultOptions(),
	}
}

// Load reads path and overlays only the keys it defines onto the defaults.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("input") {
		cfg.Input = strings.TrimSpace(raw.Input)
	}
	if meta.IsDefined("format") {
		cfg.Format = strings.ToLower(strings.TrimSpace(raw.Format))
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if meta.IsDefined("metrics_textfile") {
		cfg.MetricsTextfile = strings.TrimSpace(raw.MetricsTextfile)
	}
	if meta.IsDefined("decoder", "max_depth") {
		cfg.Decoder.MaxDepth = raw.Decoder.MaxDepth
	}
	if meta.IsDefined("decoder", "require_zero_padding") {
		cfg.Decoder.RequireZeroPadding = raw.Decoder.RequireZeroPadding
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid (%s): %w", path, err)
	}
	return cfg, nil
}

func Validate(cfg Config) error {
	switch cfg.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unsupported format %q (supported: text, json, yaml)", cfg.Format)
	}
	if _, ok := logging.ParseLevel(cfg.LogLevel); cfg.LogLevel != "" && !ok {
		return fmt.Errorf("unknown log_level %q", cfg.LogLevel)
	}
	if cfg.Decoder.MaxDepth < 1 {
		return fmt.Errorf("decoder.max_depth must be positive, got %d", cfg.Decoder.MaxDepth)
	}
	return nil
}
