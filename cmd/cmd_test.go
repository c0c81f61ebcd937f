package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	App "blitz/app"
	"blitz/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

// load parses args the way the real binary does and returns the resulting config.
func load(t *testing.T, args ...string) (*config.Config, error) {
	t.Helper()
	app := NewApp("blitz", "test", "dev", "")
	app.Writer = io.Discard
	app.ErrWriter = io.Discard

	var cfg *config.Config
	app.Action = func(c *cli.Context) error {
		var err error
		cfg, err = App.LoadConfig(c)
		return err
	}
	err := app.Run(append([]string{"blitz"}, args...))
	return cfg, err
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := load(t, "http://localhost:8080/")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/", cfg.URL)
	assert.Equal(t, 1, cfg.Concurrency)
	assert.Equal(t, 1000, cfg.Requests)
	assert.Equal(t, "text", cfg.Output)
	assert.False(t, cfg.History.Enabled)
}

func TestLoadConfig_Flags(t *testing.T) {
	cfg, err := load(t, "-c", "8", "-n", "250", "--output", "json", "--history", "http://localhost/")
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, 250, cfg.Requests)
	assert.Equal(t, "json", cfg.Output)
	assert.True(t, cfg.History.Enabled)
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blitz.yaml")
	require.NoError(t, os.WriteFile(path, []byte("url: http://from-file/\nconcurrency: 3\nrequests: 30\n"), 0644))

	cfg, err := load(t, "--config", path, "-n", "60")
	require.NoError(t, err)

	assert.Equal(t, "http://from-file/", cfg.URL)
	assert.Equal(t, 3, cfg.Concurrency)
	assert.Equal(t, 60, cfg.Requests)
}

func TestLoadConfig_Errors(t *testing.T) {
	testCases := []struct {
		desc string
		args []string
	}{
		{"missing url", nil},
		{"relative url", []string{"/index.html"}},
		{"non numeric concurrency", []string{"-c", "many", "http://localhost/"}},
		{"non numeric requests", []string{"-n", "x", "http://localhost/"}},
		{"zero concurrency", []string{"-c", "0", "http://localhost/"}},
		{"two urls", []string{"http://a/", "http://b/"}},
		{"missing config file", []string{"--config", "/nonexistent/blitz.yaml", "http://a/"}},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			cfg, err := load(t, tc.args...)
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}
