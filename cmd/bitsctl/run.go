package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/danmuck/bitsctl/internal/config"
	"github.com/danmuck/bitsctl/internal/logging"
	"github.com/danmuck/bitsctl/internal/observability"
	"github.com/danmuck/bitsctl/internal/packet"
	"github.com/spf13/cobra"
)

var errNoInput = errors.New("no transmission given (pass hex, --input, or pipe stdin)")

// resolveConfig loads the config file if one is named, then applies flags
// the user set explicitly.
func resolveConfig(cmd *cobra.Command, opts *rootOptions) (config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.configPath != "" {
		loaded, err := config.Load(opts.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = strings.TrimSpace(opts.input)
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("metrics-textfile") {
		cfg.MetricsTextfile = strings.TrimSpace(opts.metricsTextfile)
	}
	if flags.Changed("format") {
		format, err := flags.GetString("format")
		if err != nil {
			return config.Config{}, err
		}
		cfg.Format = strings.ToLower(strings.TrimSpace(format))
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, err
	}
	if cfg.LogLevel != "" {
		logging.SetLevel(cfg.LogLevel)
	}
	return cfg, nil
}

func readTransmission(cmd *cobra.Command, args []string, cfg config.Config) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Input != "" {
		data, err := os.ReadFile(cfg.Input)
		if err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", errNoInput
	}
	return string(data), nil
}

// decodeTransmission resolves config and input, decodes, and records the
// attempt in metrics.
func decodeTransmission(cmd *cobra.Command, args []string, opts *rootOptions) (packet.Packet, config.Config, error) {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return nil, config.Config{}, err
	}
	hex, err := readTransmission(cmd, args, cfg)
	if err != nil {
		return nil, config.Config{}, err
	}

	logger := logging.New("decode")
	start := time.Now()
	p, err := packet.DecodeWithOptions(hex, cfg.Decoder)
	elapsed := time.Since(start)

	var stats packet.Stats
	if err == nil {
		stats = packet.Collect(p)
	}
	observability.RecordDecode(stats, elapsed, err)
	if err != nil {
		logger.Debug().Err(err).Dur("elapsed", elapsed).Msg("decode failed")
		return nil, config.Config{}, fmt.Errorf("decode: %w", err)
	}
	logger.Debug().
		Int("packets", stats.Packets).
		Int("depth", stats.MaxDepth).
		Dur("elapsed", elapsed).
		Msg("decoded transmission")
	return p, cfg, nil
}

func finish(cfg config.Config) error {
	if err := observability.WriteTextfile(cfg.MetricsTextfile); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
