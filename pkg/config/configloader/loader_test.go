package configloader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name  string `koanf:"name"`
	Store struct {
		Driver string `koanf:"driver"`
		URL    string `koanf:"url"`
	} `koanf:"store"`
}

func (c *testConfig) Validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Precedence(t *testing.T) {
	// given
	dir := t.TempDir()
	t.Chdir(dir)
	cfgFile := writeFile(t, dir, "config.yaml", "name: from-yaml\nstore:\n  driver: postgres\n  url: postgres://yaml\n")
	writeFile(t, dir, DotEnvFile, "TEST_STORE_DRIVER=mysql\nTEST_STORE_URL=mysql://dotenv\nOTHER_NAME=ignored\n")
	t.Setenv("TEST_STORE_URL", "mysql://env")

	// when
	cfg, err := Load[*testConfig](cfgFile, "TEST_")

	// then
	require.NoError(t, err)
	assert.Equal(t, "from-yaml", cfg.Name)
	assert.Equal(t, "mysql", cfg.Store.Driver)
	assert.Equal(t, "mysql://env", cfg.Store.URL)
}

func TestLoad_MissingFilesAreSkipped(t *testing.T) {
	// given
	t.Chdir(t.TempDir())
	t.Setenv("TEST_NAME", "from-env")

	// when
	cfg, err := Load[*testConfig]("absent.yaml", "TEST_")

	// then
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Name)
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{name: "malformed yaml", yaml: "name: [unclosed\n", wantErr: "error loading config file"},
		{name: "validation", yaml: "store:\n  driver: memory\n", wantErr: "config validation failed: name is required"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)
			cfgFile := writeFile(t, dir, "config.yaml", tc.yaml)

			_, err := Load[*testConfig](cfgFile, "TEST_")

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestEnvTransformer(t *testing.T) {
	transform := EnvTransformer("BEER_")

	assert.Equal(t, "database.url", transform("BEER_DATABASE_URL"))
	assert.Equal(t, "nats.enabled", transform("beer_nats_enabled"))
}
