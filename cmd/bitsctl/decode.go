package main

import (
	"encoding/json"
	"fmt"

	"github.com/danmuck/bitsctl/internal/config"
	"github.com/danmuck/bitsctl/internal/packet"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func decodeCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [hex]",
		Short: "Dump the decoded packet tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, cfg, err := decodeTransmission(cmd, args, opts)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			switch cfg.Format {
			case config.FormatJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				err = enc.Encode(packet.ToNode(p))
			case config.FormatYAML:
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				err = enc.Encode(packet.ToNode(p))
				if err == nil {
					err = enc.Close()
				}
			default:
				err = packet.Format(out, p)
			}
			if err != nil {
				return fmt.Errorf("write %s: %w", cfg.Format, err)
			}
			return finish(cfg)
		},
	}
	cmd.Flags().StringP("format", "f", config.FormatText, "output format (text, json, yaml)")
	return cmd
}
