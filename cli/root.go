// SPDX-License-Identifier: GPL-2.0-or-later

// Package cli implements the multiasset command line.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"multiasset/config"
)

type app struct {
	cfg     *config.Config
	cfgFile string

	logLevel  string
	logFormat string
	output    string
	exportDir string
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   config.Name,
		Short: "Inspect BSP v30 maps, WAD2/WAD3 archives and IDSP sprites",
		Long: `multiasset decodes the level, texture archive and sprite formats of
the Half-Life/Quake engine family. Files can be given as plain paths or as
entries of Quake PAK archives (pak0.pak:maps/start.bsp).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is multiasset.yaml in home or pwd)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format (text, json)")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "", "summary format (text, json, yaml)")
	root.PersistentFlags().StringVar(&a.exportDir, "export-dir", "", "directory for exported images")

	root.AddCommand(
		a.infoCommand(),
		a.exportCommand(),
		a.formatsCommand(),
		a.pakCommand(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return errors.Wrap(err, "load configuration")
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}
	if flags.Changed("output") {
		cfg.Output = a.output
	}
	if flags.Changed("export-dir") {
		cfg.ExportDir = a.exportDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	slog.SetDefault(slog.New(newHandler(cmd.ErrOrStderr(), cfg)))
	slog.Debug("Configuration",
		"log_level", cfg.LogLevel,
		"log_format", cfg.LogFormat,
		"output", cfg.Output,
		"export_dir", cfg.ExportDir)
	return nil
}

func newHandler(w io.Writer, cfg *config.Config) slog.Handler {
	if cfg.LogFormat == "json" {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: cfg.Level(),
		})
	}
	return tint.NewHandler(w, &tint.Options{
		Level: cfg.Level(),
	})
}

// Execute runs the command line and exits on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
