package backends

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/xgr-network/xgr-abi/abi"
	"github.com/xgr-network/xgr-abi/sigdb"
	sigdbBolt "github.com/xgr-network/xgr-abi/sigdb/bolt"
	sigdbLevelDB "github.com/xgr-network/xgr-abi/sigdb/leveldb"
	sigdbPostgres "github.com/xgr-network/xgr-abi/sigdb/postgres"
)

// storeBackends defines the Store factories of the supported backends
var storeBackends = map[sigdb.Backend]sigdb.Factory{
	sigdb.MemoryBackend:   sigdb.MemoryFactory,
	sigdb.LevelDBBackend:  sigdbLevelDB.Factory,
	sigdb.BoltBackend:     sigdbBolt.Factory,
	sigdb.PostgresBackend: sigdbPostgres.Factory,
}

func BackendSupported(value string) bool {
	_, ok := storeBackends[sigdb.Backend(value)]

	return ok
}

// OpenStore opens the store of backend at path. An empty backend selects
// the memory store.
func OpenStore(backend string, path string, logger hclog.Logger) (sigdb.Store, error) {
	if backend == "" {
		backend = string(sigdb.MemoryBackend)
	}

	factory, ok := storeBackends[sigdb.Backend(backend)]
	if !ok {
		return nil, fmt.Errorf("unsupported sigdb backend %q", backend)
	}

	return factory(path, logger)
}

// OpenDirectory opens a store and wraps it in a Directory sharing cache
func OpenDirectory(backend string, path string, cache *abi.TypeCache, logger hclog.Logger) (*sigdb.Directory, error) {
	store, err := OpenStore(backend, path, logger)
	if err != nil {
		return nil, err
	}

	return sigdb.NewDirectory(store, cache, logger), nil
}
