package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "kvline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.StringSlice("allow", nil, "")
	fs.Bool("case-sensitive", false, "")
	fs.String("output", "text", "")
	fs.Int("jobs", 1, "")
	fs.Bool("fail-fast", false, "")
	fs.String("log-format", "text", "")
	fs.String("log-level", "info", "")
	return fs
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)
	require.Empty(t, cfg.AllowedKeys)
	require.False(t, cfg.Strict())
	require.Equal(t, "text", cfg.Output)
	require.Equal(t, 1, cfg.Jobs)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_File(t *testing.T) {
	home := isolate(t)
	dir := filepath.Join(home, ".config", "kvline")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	writeConfig(t, dir, "allowed_keys: [name, age]\ncase_sensitive: true\noutput: json\njobs: 4\n")

	cfg, err := Load("", nil)
	require.NoError(t, err)
	require.Equal(t, []string{"name", "age"}, cfg.AllowedKeys)
	require.True(t, cfg.Strict())
	require.True(t, cfg.CaseSensitive)
	require.Equal(t, "json", cfg.Output)
	require.Equal(t, 4, cfg.Jobs)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	isolate(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "error loading config file")
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), "output: json\njobs: 2\nallowed_keys: [a]\n")

	t.Setenv("KVLINE_JOBS", "8")
	t.Setenv("KVLINE_ALLOWED_KEYS", "b,c")

	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--output", "yaml"}))

	cfg, err := Load(path, fs)
	require.NoError(t, err)
	require.Equal(t, "yaml", cfg.Output, "flag beats file")
	require.Equal(t, 8, cfg.Jobs, "env beats file")
	require.Equal(t, []string{"b", "c"}, cfg.AllowedKeys)
	require.Equal(t, "text", cfg.LogFormat, "unset flag keeps default")
}

func TestLoad_FlagAllowList(t *testing.T) {
	isolate(t)
	fs := testFlags()
	require.NoError(t, fs.Parse([]string{"--allow", "x", "--allow", "y_1"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	require.Equal(t, []string{"x", "y_1"}, cfg.AllowedKeys)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{Output: "text", Jobs: 1, LogFormat: "text", LogLevel: "info"}
	}

	testCases := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"bad output", func(c *Config) { c.Output = "xml" }, "Output"},
		{"zero jobs", func(c *Config) { c.Jobs = 0 }, "Jobs"},
		{"too many jobs", func(c *Config) { c.Jobs = 1000 }, "Jobs"},
		{"bad log format", func(c *Config) { c.LogFormat = "logfmt" }, "LogFormat"},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, "LogLevel"},
		{"bad allowed key", func(c *Config) { c.AllowedKeys = []string{"ok", "not-ok"} }, "AllowedKeys[1]"},
		{"empty allowed key", func(c *Config) { c.AllowedKeys = []string{""} }, "AllowedKeys[0]"},
	}

	require.NoError(t, valid().Validate())

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), "config validation failed")
			require.Contains(t, err.Error(), tc.field)
		})
	}
}
