// Package cmd holds the xopdump commands.
package cmd

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	// encoded words in part headers may use any IANA charset
	_ "github.com/zostay/go-xop/header/encoding"
	"github.com/zostay/go-xop/internal/config"
)

// NewRootCmd builds the xopdump command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "xopdump",
		Short:        "Inspect XOP/MTOM multipart/related packages",
		SilenceUsage: true,
	}

	config.RegisterFlags(rootCmd)

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newRoundtripCmd())

	return rootCmd
}

// Execute runs xopdump.
func Execute() error {
	return NewRootCmd().Execute()
}

// setup loads the configuration and builds a logger writing to the command's
// error output.
func setup(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig(cmd)
	if err != nil {
		return config.Config{}, nil, err
	}

	return cfg, newLogger(cmd.ErrOrStderr(), cfg.LogLevel), nil
}

func newLogger(w io.Writer, level string) *slog.Logger {
	lv := new(slog.LevelVar)
	switch level {
	case "debug":
		lv.Set(slog.LevelDebug)
	case "info":
		lv.Set(slog.LevelInfo)
	case "warn":
		lv.Set(slog.LevelWarn)
	case "error":
		lv.Set(slog.LevelError)
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lv}))
}
