package config_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-xop/header"
	"github.com/zostay/go-xop/internal/config"
	"github.com/zostay/go-xop/transport"
)

func load(t *testing.T, args ...string) (config.Config, error) {
	t.Helper()

	cmd := &cobra.Command{Use: "test"}
	config.RegisterFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return config.LoadConfig(cmd)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv(config.ContentTypeEnv, "")

	cfg, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, config.Config{
		Break:    header.CRLF,
		LogLevel: "warn",
		MaxLine:  transport.DefaultMaxLineLength,
	}, cfg)
}

func TestLoadConfig_Flags(t *testing.T) {
	t.Setenv(config.ContentTypeEnv, "ignored")

	cfg, err := load(t,
		"--content-type", "multipart/related; boundary=x",
		"--http",
		"--break", "LF",
		"--log-level", "WARNING",
		"--strict-headers",
		"--strict-cid",
		"--max-line", "100",
	)
	require.NoError(t, err)
	assert.Equal(t, config.Config{
		ContentType:   "multipart/related; boundary=x",
		HTTP:          true,
		Break:         header.LF,
		LogLevel:      "warn",
		StrictHeaders: true,
		StrictCID:     true,
		MaxLine:       100,
	}, cfg)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv(config.ContentTypeEnv, "multipart/related; boundary=env")

	cfg, err := load(t)
	require.NoError(t, err)
	assert.Equal(t, "multipart/related; boundary=env", cfg.ContentType)
}

func TestLoadConfig_Invalid(t *testing.T) {
	_, err := load(t, "--break", "nope")
	assert.EqualError(t, err, "invalid --break: nope")

	_, err = load(t, "--log-level", "loud")
	assert.EqualError(t, err, "invalid --log-level: loud")

	_, err = load(t, "--max-line", "0")
	assert.EqualError(t, err, "--max-line must be positive")
}

func TestConfig_NeedsContentType(t *testing.T) {
	cfg := config.Config{}
	assert.True(t, cfg.NeedsContentType("message.mime"))
	assert.True(t, cfg.NeedsContentType("-"))
	assert.False(t, cfg.NeedsContentType("https://example.org/xop"))

	cfg.HTTP = true
	assert.False(t, cfg.NeedsContentType("message.mime"))
}
