// Package config loads the settings shared by the xgr-abi commands
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl"
	"github.com/xgr-network/xgr-abi/contracts"
	"github.com/xgr-network/xgr-abi/sigdb"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings
const (
	EnvSigDBPath = "XGR_ABI_SIGDB_PATH"
	EnvLogLevel  = "XGR_ABI_LOG_LEVEL"
	EnvRPCURL    = "XGR_ABI_RPC_URL"
)

const (
	DefaultLogLevel      = "INFO"
	DefaultTypeCacheSize = 1024
	DefaultSigDBBackend  = string(sigdb.MemoryBackend)
	DefaultRPCURL        = "http://127.0.0.1:8545"
)

// Config is the file configuration of the xgr-abi tool
type Config struct {
	LogLevel      string `json:"log_level" yaml:"log_level" hcl:"log_level"`
	Strict        bool   `json:"strict" yaml:"strict" hcl:"strict"`
	TypeCacheSize int    `json:"type_cache_size" yaml:"type_cache_size" hcl:"type_cache_size"`
	MetricsFile   string `json:"metrics_file" yaml:"metrics_file" hcl:"metrics_file"`
	RPCURL        string `json:"rpc_url" yaml:"rpc_url" hcl:"rpc_url"`

	SigDB *SigDB `json:"sigdb" yaml:"sigdb" hcl:"sigdb"`

	// Builtins names ABIs from the contracts package to register
	Builtins []string `json:"builtins" yaml:"builtins" hcl:"builtins"`
	// ABIs maps a registry label, usually a contract address, to a JSON ABI file
	ABIs map[string]string `json:"abis" yaml:"abis" hcl:"abis"`
}

// SigDB configures the selector directory
type SigDB struct {
	Backend string `json:"backend" yaml:"backend" hcl:"backend"`
	Path    string `json:"path" yaml:"path" hcl:"path"`
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *Config {
	return &Config{
		LogLevel:      DefaultLogLevel,
		TypeCacheSize: DefaultTypeCacheSize,
		RPCURL:        DefaultRPCURL,
		SigDB: &SigDB{
			Backend: DefaultSigDBBackend,
		},
		Builtins: contracts.Names(),
		ABIs:     map[string]string{},
	}
}

// Load reads the file at path on top of the defaults and applies the
// environment overrides. An empty path loads only the defaults. The format
// follows the extension: .yaml, .yml, .json or .hcl.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := unmarshal(path, data, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func unmarshal(path string, data []byte, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".json":
		return json.Unmarshal(data, cfg)
	case ".hcl":
		return hcl.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config extension %q", ext)
	}
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}

	if v := strings.TrimSpace(os.Getenv(EnvSigDBPath)); v != "" {
		if c.SigDB == nil {
			c.SigDB = &SigDB{}
		}

		c.SigDB.Path = v
	}

	if v := strings.TrimSpace(os.Getenv(EnvRPCURL)); v != "" {
		c.RPCURL = v
	}
}

// Validate checks every field and reports all problems at once
func (c *Config) Validate() error {
	var result *multierror.Error

	if hclog.LevelFromString(c.LogLevel) == hclog.NoLevel {
		result = multierror.Append(result, fmt.Errorf("invalid log_level %q", c.LogLevel))
	}

	if c.TypeCacheSize <= 0 {
		result = multierror.Append(result, fmt.Errorf("type_cache_size must be positive, got %d", c.TypeCacheSize))
	}

	if c.SigDB != nil {
		if err := sigdb.ValidateBackend(c.SigDB.Backend); err != nil {
			result = multierror.Append(result, err)
		}

		if c.SigDB.Path == "" && (c.SigDB.Backend == string(sigdb.LevelDBBackend) ||
			c.SigDB.Backend == string(sigdb.BoltBackend)) {
			result = multierror.Append(result, fmt.Errorf("sigdb.path is required by the %s backend", c.SigDB.Backend))
		}
	}

	for _, name := range c.Builtins {
		if _, ok := contracts.Definition(name); !ok {
			result = multierror.Append(result, fmt.Errorf("unknown builtin abi %q", name))
		}
	}

	for label, path := range c.ABIs {
		if path == "" {
			result = multierror.Append(result, fmt.Errorf("abi %q has no file", label))
		}
	}

	return result.ErrorOrNil()
}

// Level returns the parsed log level
func (c *Config) Level() hclog.Level {
	return hclog.LevelFromString(c.LogLevel)
}
