package helper

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/xgr-network/xgr-abi/abi"
	"github.com/xgr-network/xgr-abi/command"
	"github.com/xgr-network/xgr-abi/config"
	"github.com/xgr-network/xgr-abi/contracts"
	"github.com/xgr-network/xgr-abi/internal/ethrpc"
	"github.com/xgr-network/xgr-abi/metrics"
	"github.com/xgr-network/xgr-abi/sigdb"
	"github.com/xgr-network/xgr-abi/sigdb/backends"
)

// Environment holds what the commands share: configuration, logger, type
// cache, metrics and the ABI registry built from the configuration
type Environment struct {
	Config   *config.Config
	Logger   hclog.Logger
	Cache    *abi.TypeCache
	Metrics  *metrics.Metrics
	Registry *abi.Registry

	gatherer *prometheus.Registry
}

// NewEnvironment loads the configuration named by the --config flag and
// builds the registry it describes
func NewEnvironment(cmd *cobra.Command) (*Environment, error) {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return nil, err
	}

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "xgr-abi",
		Level:  cfg.Level(),
		Output: Stderr(cmd),
	})

	cache, err := abi.NewTypeCache(cfg.TypeCacheSize)
	if err != nil {
		return nil, err
	}

	env := &Environment{
		Config:   cfg,
		Logger:   logger,
		Cache:    cache,
		Metrics:  metrics.NewMetrics(),
		gatherer: prometheus.NewRegistry(),
	}

	if err := env.Metrics.Register(env.gatherer); err != nil {
		return nil, err
	}

	env.Registry = abi.NewRegistry(
		logger,
		abi.WithObserver(env.Metrics),
		abi.WithDecodeOptions(env.DecodeOptions()),
	)

	if err := env.loadABIs(); err != nil {
		return nil, err
	}

	return env, nil
}

// LoadConfig reads the --config file and applies the --log-level and
// --strict flags when they were set explicitly
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString(command.ConfigFlag)

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if flag := cmd.Flag(command.LogLevelFlag); flag != nil && flag.Changed {
		cfg.LogLevel = flag.Value.String()
	}

	if flag := cmd.Flag(command.RPCFlag); flag != nil && flag.Changed {
		cfg.RPCURL = flag.Value.String()
	}

	if flag := cmd.Flag(command.StrictFlag); flag != nil && flag.Changed {
		cfg.Strict = flag.Value.String() == "true"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DecodeOptions returns the decode mode chosen by the configuration
func (e *Environment) DecodeOptions() abi.DecodeOptions {
	return abi.DecodeOptions{Strict: e.Config.Strict}
}

func (e *Environment) loadABIs() error {
	if err := contracts.Register(e.Registry, e.Config.Builtins...); err != nil {
		return err
	}

	labels := make([]string, 0, len(e.Config.ABIs))
	for label := range e.Config.ABIs {
		labels = append(labels, label)
	}

	// user ABIs override builtins, in a stable order
	sort.Strings(labels)

	for _, label := range labels {
		if err := e.addABIFile(label, e.Config.ABIs[label]); err != nil {
			return err
		}
	}

	return nil
}

func (e *Environment) addABIFile(label, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open abi %q: %w", label, err)
	}
	defer f.Close()

	a, err := abi.NewABIFromReader(f)
	if err != nil {
		return fmt.Errorf("failed to parse abi %q from %s: %w", label, path, err)
	}

	e.Registry.Add(label, a)
	e.Logger.Debug("abi loaded", "label", label, "path", path)

	return nil
}

// DialRPC connects to the configured node
func (e *Environment) DialRPC(ctx context.Context) (*ethrpc.Client, error) {
	return ethrpc.Dial(ctx, e.Config.RPCURL, e.Logger)
}

// FindError returns the custom error, and the label of its ABI, whose
// selector prefixes data
func (e *Environment) FindError(data []byte) (string, *abi.Error) {
	abis := e.Registry.ABIs()

	labels := make([]string, 0, len(abis))
	for label := range abis {
		labels = append(labels, label)
	}

	sort.Strings(labels)

	for _, label := range labels {
		if custom := abis[label].GetErrorByID(data); custom != nil {
			return label, custom
		}
	}

	return "", nil
}

// DecodeRevert explains revert data with the custom errors of the loaded
// ABIs, then as Error(string) or Panic(uint256)
func (e *Environment) DecodeRevert(data []byte) (string, error) {
	if _, custom := e.FindError(data); custom != nil {
		args, err := custom.Decode(data)
		if err != nil {
			return "", err
		}

		return fmt.Sprintf("%s %v", custom.Sig(), args), nil
	}

	r, err := abi.UnpackRevert(data)
	if err != nil {
		return "", err
	}

	return r.String(), nil
}

// OpenDirectory opens the configured selector directory
func (e *Environment) OpenDirectory() (*sigdb.Directory, error) {
	backend, path := "", ""
	if e.Config.SigDB != nil {
		backend, path = e.Config.SigDB.Backend, e.Config.SigDB.Path
	}

	return backends.OpenDirectory(backend, path, e.Cache, e.Logger)
}

// Close writes the collected metrics when a metrics file is configured
func (e *Environment) Close() error {
	if e.Config.MetricsFile == "" {
		return nil
	}

	if err := metrics.WriteTextfile(e.Config.MetricsFile, e.gatherer); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", e.Config.MetricsFile, err)
	}

	return nil
}
