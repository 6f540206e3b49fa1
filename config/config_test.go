package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad_Formats(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
	}{
		{
			"config.yaml",
			`
log_level: debug
strict: true
type_cache_size: 64
sigdb:
  backend: bolt
  path: /var/lib/xgr-abi/sigdb.db
builtins: [erc20]
abis:
  "0x5c69bee701ef814a2b6a3edd4b1652cb9cc5aa6f": router.json
`,
		},
		{
			"config.json",
			`{
  "log_level": "debug",
  "strict": true,
  "type_cache_size": 64,
  "sigdb": {"backend": "bolt", "path": "/var/lib/xgr-abi/sigdb.db"},
  "builtins": ["erc20"],
  "abis": {"0x5c69bee701ef814a2b6a3edd4b1652cb9cc5aa6f": "router.json"}
}`,
		},
		{
			"config.hcl",
			`
log_level = "debug"
strict = true
type_cache_size = 64

sigdb {
  backend = "bolt"
  path = "/var/lib/xgr-abi/sigdb.db"
}

builtins = ["erc20"]

abis = {
  "0x5c69bee701ef814a2b6a3edd4b1652cb9cc5aa6f" = "router.json"
}
`,
		},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			cfg, err := Load(writeFile(t, c.name, c.content))
			require.NoError(t, err)

			assert.Equal(t, hclog.Debug, cfg.Level())
			assert.True(t, cfg.Strict)
			assert.Equal(t, 64, cfg.TypeCacheSize)
			require.NotNil(t, cfg.SigDB)
			assert.Equal(t, "bolt", cfg.SigDB.Backend)
			assert.Equal(t, "/var/lib/xgr-abi/sigdb.db", cfg.SigDB.Path)
			assert.Equal(t, []string{"erc20"}, cfg.Builtins)
			assert.Equal(t, "router.json", cfg.ABIs["0x5c69bee701ef814a2b6a3edd4b1652cb9cc5aa6f"])
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().TypeCacheSize, cfg.TypeCacheSize)
	assert.Equal(t, "memory", cfg.SigDB.Backend)
	assert.Equal(t, []string{"erc20", "erc721", "multicall"}, cfg.Builtins)
	assert.False(t, cfg.Strict)

	// fields missing from the file keep their defaults
	cfg, err = Load(writeFile(t, "partial.yaml", "strict: true\n"))
	require.NoError(t, err)
	assert.True(t, cfg.Strict)
	assert.Equal(t, DefaultTypeCacheSize, cfg.TypeCacheSize)
	assert.Equal(t, hclog.Info, cfg.Level())
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorContains(t, err, "failed to read config file")

	_, err = Load(writeFile(t, "config.toml", "strict = true"))
	require.ErrorContains(t, err, "unsupported config extension")

	_, err = Load(writeFile(t, "broken.yaml", "sigdb: [\n"))
	require.ErrorContains(t, err, "failed to decode config file")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.LogLevel = "loud"
	cfg.TypeCacheSize = 0
	cfg.SigDB = &SigDB{Backend: "leveldb"}
	cfg.Builtins = []string{"erc20", "erc1155"}
	cfg.ABIs = map[string]string{"router": ""}

	err := cfg.Validate()
	require.Error(t, err)

	var merr *multierror.Error

	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 5)

	cfg.SigDB.Backend = "redis"
	cfg.SigDB.Path = "/tmp/db"

	require.ErrorContains(t, cfg.Validate(), `invalid sigdb.backend "redis"`)

	require.NoError(t, DefaultConfig().Validate())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv(EnvLogLevel, " trace ")
	t.Setenv(EnvSigDBPath, "/data/sigdb")

	cfg, err := Load(writeFile(t, "config.yaml", "sigdb:\n  backend: leveldb\n"))
	require.NoError(t, err)

	assert.Equal(t, hclog.Trace, cfg.Level())
	assert.Equal(t, "leveldb", cfg.SigDB.Backend)
	assert.Equal(t, "/data/sigdb", cfg.SigDB.Path)
}
