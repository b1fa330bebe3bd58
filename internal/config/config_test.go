package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every config search location at an empty temp dir and
// clears the environment the loader reads.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	origDir, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmpDir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(origDir))
	})

	t.Setenv("HOME", tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, ".config"))
	for _, env := range []string{EnvToken, EnvDataset, EnvURL, EnvOrgID, EnvCompression, EnvQuiet, EnvVerbose} {
		t.Setenv(env, "")
	}
	return tmpDir
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)
	assert.Empty(t, cfg.Token)
	assert.Empty(t, cfg.Dataset)
	assert.Equal(t, "identity", cfg.Compression)
	assert.False(t, cfg.Quiet)
	assert.False(t, cfg.Verbose)
}

func TestLoad(t *testing.T) {
	t.Run("returns defaults when no config file exists", func(t *testing.T) {
		isolate(t)

		cfg, meta, err := LoadWithMeta()
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "identity", cfg.Compression)
		assert.Empty(t, meta.ConfigFile)
		assert.Empty(t, meta.FileKeys)
		assert.Empty(t, meta.EnvKeys)
	})

	t.Run("reads the environment", func(t *testing.T) {
		isolate(t)
		t.Setenv(EnvToken, "xaat-env-token")
		t.Setenv(EnvDataset, "env-logs")
		t.Setenv(EnvURL, "https://axiom.example.com")
		t.Setenv(EnvOrgID, "org-1")
		t.Setenv(EnvCompression, "zstd")
		t.Setenv(EnvQuiet, "1")
		t.Setenv(EnvVerbose, "true")

		cfg, meta, err := LoadWithMeta()
		require.NoError(t, err)

		assert.Equal(t, "xaat-env-token", cfg.Token)
		assert.Equal(t, "env-logs", cfg.Dataset)
		assert.Equal(t, "https://axiom.example.com", cfg.URL)
		assert.Equal(t, "org-1", cfg.OrgID)
		assert.Equal(t, "zstd", cfg.Compression)
		assert.True(t, cfg.Quiet)
		assert.True(t, cfg.Verbose)
		assert.True(t, meta.EnvKeys["token"])
		assert.True(t, meta.EnvKeys["quiet"])
	})

	t.Run("environment overrides config file", func(t *testing.T) {
		tmpDir := isolate(t)
		content := `
token: xaat-file-token
dataset: file-logs
compression: gzip
`
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".axiom-pipe.yaml"), []byte(content), 0600))
		t.Setenv(EnvDataset, "env-logs")

		cfg, meta, err := LoadWithMeta()
		require.NoError(t, err)

		assert.Equal(t, "xaat-file-token", cfg.Token)
		assert.Equal(t, "env-logs", cfg.Dataset)
		assert.Equal(t, "gzip", cfg.Compression)
		assert.NotEmpty(t, meta.ConfigFile)
		assert.True(t, meta.FileKeys["token"])
		assert.True(t, meta.FileKeys["dataset"])
		assert.True(t, meta.EnvKeys["dataset"])
		assert.False(t, meta.FileKeys["url"])
	})

	t.Run("returns error for invalid config file", func(t *testing.T) {
		tmpDir := isolate(t)
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".axiom-pipe.yaml"), []byte("invalid: yaml: content: ["), 0600))

		cfg, err := Load()
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})
}

func TestLoadFromFile(t *testing.T) {
	t.Run("returns error for non-existent file", func(t *testing.T) {
		cfg, err := LoadFromFile("/nonexistent/path/config.yaml")
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("parses all config fields", func(t *testing.T) {
		tmpDir := t.TempDir()
		content := `
token: xapt-personal
dataset: app-logs
url: https://api.eu.axiom.co
org_id: my-org
compression: zstd
quiet: true
verbose: true
`
		path := filepath.Join(tmpDir, "axiom-pipe.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		cfg, err := LoadFromFile(path)
		require.NoError(t, err)

		assert.Equal(t, "xapt-personal", cfg.Token)
		assert.Equal(t, "app-logs", cfg.Dataset)
		assert.Equal(t, "https://api.eu.axiom.co", cfg.URL)
		assert.Equal(t, "my-org", cfg.OrgID)
		assert.Equal(t, "zstd", cfg.Compression)
		assert.True(t, cfg.Quiet)
		assert.True(t, cfg.Verbose)
	})

	t.Run("keeps defaults for unset keys", func(t *testing.T) {
		tmpDir := t.TempDir()
		path := filepath.Join(tmpDir, "axiom-pipe.yaml")
		require.NoError(t, os.WriteFile(path, []byte("dataset: app-logs\n"), 0600))

		cfg, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "app-logs", cfg.Dataset)
		assert.Equal(t, "identity", cfg.Compression)
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Run("finds .axiom-pipe.yaml in current directory", func(t *testing.T) {
		tmpDir := isolate(t)
		configPath := filepath.Join(tmpDir, ".axiom-pipe.yaml")
		require.NoError(t, os.WriteFile(configPath, []byte("dataset: a"), 0600))

		found := findConfigFile()
		// Resolve symlinks for comparison (macOS /var -> /private/var)
		expectedPath, err := filepath.EvalSymlinks(configPath)
		require.NoError(t, err)
		foundPath, err := filepath.EvalSymlinks(found)
		require.NoError(t, err)
		assert.Equal(t, expectedPath, foundPath)
	})

	t.Run("prefers .axiom-pipe.yaml over .axiom-pipe.yml", func(t *testing.T) {
		tmpDir := isolate(t)
		yamlPath := filepath.Join(tmpDir, ".axiom-pipe.yaml")
		require.NoError(t, os.WriteFile(yamlPath, []byte("dataset: yaml"), 0600))
		require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".axiom-pipe.yml"), []byte("dataset: yml"), 0600))

		found := findConfigFile()
		expectedPath, err := filepath.EvalSymlinks(yamlPath)
		require.NoError(t, err)
		foundPath, err := filepath.EvalSymlinks(found)
		require.NoError(t, err)
		assert.Equal(t, expectedPath, foundPath)
	})

	t.Run("finds config.yaml in the user config directory", func(t *testing.T) {
		isolate(t)
		configDir, err := os.UserConfigDir()
		require.NoError(t, err)
		dir := filepath.Join(configDir, "axiom-pipe")
		require.NoError(t, os.MkdirAll(dir, 0700))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("dataset: xdg"), 0600))

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "xdg", cfg.Dataset)
	})

	t.Run("returns empty string when no config found", func(t *testing.T) {
		isolate(t)
		assert.Empty(t, findConfigFile())
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"complete", Config{Token: "xaat-1", Dataset: "logs"}, ""},
		{"missing token", Config{Dataset: "logs"}, "Missing AXIOM_TOKEN env"},
		{"blank token", Config{Token: "  ", Dataset: "logs"}, "Missing AXIOM_TOKEN env"},
		{"missing dataset", Config{Token: "xaat-1"}, "Missing AXIOM_DATASET env"},
		{"missing both reports token first", Config{}, "Missing AXIOM_TOKEN env"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())

			var missing *MissingEnvError
			assert.ErrorAs(t, err, &missing)
		})
	}
}

func TestComputeSources(t *testing.T) {
	meta := &Meta{
		FileKeys: map[string]bool{"token": true, "dataset": true},
		EnvKeys:  map[string]bool{"dataset": true, "quiet": true},
	}

	sources := ComputeSources(meta, map[string]bool{"quiet": true})
	assert.Equal(t, "file", sources["token"])
	assert.Equal(t, "env", sources["dataset"])
	assert.Equal(t, "flag", sources["quiet"])
	assert.Equal(t, "default", sources["url"])
	assert.Equal(t, "default", sources["org_id"])

	assert.Equal(t, "default", ComputeSources(nil, nil)["token"])
}

func TestRedactToken(t *testing.T) {
	assert.Equal(t, "", RedactToken(""))
	assert.Equal(t, "xaat-****cdef", RedactToken("xaat-0123456789abcdef"))
	assert.Equal(t, "xapt-****", RedactToken("xapt-12"))
	assert.Equal(t, "****5678", RedactToken("12345678"))
}

func TestLoadEnv(t *testing.T) {
	tmpDir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, ".axiom-pipe.yaml"), []byte("dataset: file-logs\n"), 0600))
	t.Setenv(EnvToken, "xaat-env")

	cfg, meta := LoadEnv()
	assert.Equal(t, "xaat-env", cfg.Token)
	assert.Empty(t, cfg.Dataset, "config file is ignored")
	assert.True(t, meta.EnvKeys["token"])
	assert.Empty(t, meta.ConfigFile)
}
