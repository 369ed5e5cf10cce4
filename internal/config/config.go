// Package config turns the xopdump command line into a Config.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zostay/go-xop/header"
	"github.com/zostay/go-xop/transport"
)

// ContentTypeEnv is consulted when --content-type is not given.
const ContentTypeEnv = "XOP_CONTENT_TYPE"

// Config captures the options shared by every xopdump subcommand.
type Config struct {
	ContentType   string
	HTTP          bool
	Break         header.Break
	LogLevel      string
	StrictHeaders bool
	StrictCID     bool
	MaxLine       int
}

// RegisterFlags attaches the shared flags to the root command. They are
// persistent, so every subcommand sees them.
func RegisterFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("content-type", "", "Content-type of the package (falls back to "+ContentTypeEnv+" env var)")
	flags.Bool("http", false, "Input is a complete HTTP response, status line and headers included")
	flags.String("break", "crlf", "Line break of the body: crlf, lf or cr")
	flags.String("log-level", "warn", "Logging level: debug, info, warn, error")
	flags.Bool("strict-headers", false, "Fail on part headers that cannot be parsed")
	flags.Bool("strict-cid", false, "Fail on content-ids that are not valid msg-ids")
	flags.Int("max-line", transport.DefaultMaxLineLength, "Maximum length of a single line of the body")
}

// LoadConfig reads the parsed flags into a Config with validation.
func LoadConfig(cmd *cobra.Command) (Config, error) {
	flags := cmd.Flags()

	contentType, err := flags.GetString("content-type")
	if err != nil {
		return Config{}, err
	}
	useHTTP, err := flags.GetBool("http")
	if err != nil {
		return Config{}, err
	}
	breakName, err := flags.GetString("break")
	if err != nil {
		return Config{}, err
	}
	logLevel, err := flags.GetString("log-level")
	if err != nil {
		return Config{}, err
	}
	strictHeaders, err := flags.GetBool("strict-headers")
	if err != nil {
		return Config{}, err
	}
	strictCID, err := flags.GetBool("strict-cid")
	if err != nil {
		return Config{}, err
	}
	maxLine, err := flags.GetInt("max-line")
	if err != nil {
		return Config{}, err
	}

	if contentType == "" {
		contentType = os.Getenv(ContentTypeEnv)
	}

	lbr, ok := header.ParseBreak(strings.ToLower(breakName))
	if !ok {
		return Config{}, fmt.Errorf("invalid --break: %s", breakName)
	}

	logLevel = strings.ToLower(logLevel)
	if logLevel == "warning" {
		logLevel = "warn"
	}

	cfg := Config{
		ContentType:   contentType,
		HTTP:          useHTTP,
		Break:         lbr,
		LogLevel:      logLevel,
		StrictHeaders: strictHeaders,
		StrictCID:     strictCID,
		MaxLine:       maxLine,
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func validateConfig(cfg Config) error {
	if cfg.MaxLine <= 0 {
		return fmt.Errorf("--max-line must be positive")
	}

	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid --log-level: %s", cfg.LogLevel)
	}

	return nil
}

// NeedsContentType reports whether input read from src must have its
// Content-type supplied by the user. URLs and HTTP responses carry their own.
func (cfg Config) NeedsContentType(src string) bool {
	return !cfg.HTTP && !transport.IsURL(src)
}
