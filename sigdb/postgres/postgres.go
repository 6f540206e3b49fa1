package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xgr-network/xgr-abi/sigdb"
)

// Environment variables consulted when no DSN is configured
const (
	EnvDSN      = "XGR_ABI_SIGDB_DSN"
	EnvDatabase = "DATABASE_URL"
)

const (
	DefaultTable = "abi_signatures"

	queryTimeout = 5 * time.Second
)

var (
	_ sigdb.Store = (*Store)(nil)
	_ sigdb.Batch = (*batch)(nil)
)

// Store is a sigdb.Store kept in a two column PostgreSQL table
type Store struct {
	logger hclog.Logger
	pool   *pgxpool.Pool
	table  string
	closed atomic.Bool

	getQuery    string
	upsertQuery string
	deleteQuery string
}

// Factory connects to the database named by dsn, or by the environment
// when dsn is empty
func Factory(dsn string, logger hclog.Logger) (sigdb.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	return New(ctx, dsn, DefaultTable, logger)
}

func envDSN() (string, error) {
	dsn := strings.TrimSpace(os.Getenv(EnvDSN))
	if dsn == "" {
		dsn = strings.TrimSpace(os.Getenv(EnvDatabase))
	}

	if dsn == "" {
		return "", fmt.Errorf("database not configured (sigdb.path / %s / %s)", EnvDSN, EnvDatabase)
	}

	return dsn, nil
}

// New opens a pool and creates table if it does not exist
func New(ctx context.Context, dsn, table string, logger hclog.Logger) (*Store, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	if strings.TrimSpace(dsn) == "" {
		var err error
		if dsn, err = envDSN(); err != nil {
			return nil, err
		}
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	cfg.MaxConns = 8
	cfg.MinConns = 1
	cfg.MaxConnLifetime = 30 * time.Minute
	cfg.MaxConnIdleTime = 2 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()

		return nil, fmt.Errorf("failed to reach sigdb database: %w", err)
	}

	name := pgx.Identifier{table}.Sanitize()

	if _, err := pool.Exec(ctx, fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (key BYTEA PRIMARY KEY, value BYTEA NOT NULL)", name,
	)); err != nil {
		pool.Close()

		return nil, fmt.Errorf("failed to create table %s: %w", name, err)
	}

	s := &Store{
		logger:      logger.Named("sigdb-postgres"),
		pool:        pool,
		table:       table,
		getQuery:    fmt.Sprintf("SELECT value FROM %s WHERE key = $1", name),
		upsertQuery: fmt.Sprintf("INSERT INTO %s (key, value) VALUES ($1, $2) ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value", name),
		deleteQuery: fmt.Sprintf("DELETE FROM %s WHERE key = $1", name),
	}

	s.logger.Info("sigdb opened", "table", table)

	return s, nil
}

func (s *Store) Get(k []byte) ([]byte, bool, error) {
	if s.closed.Load() {
		return nil, false, sigdb.ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var v []byte

	err := s.pool.QueryRow(ctx, s.getQuery, k).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, err
	}

	return v, true, nil
}

func (s *Store) NewBatch() sigdb.Batch {
	return &batch{store: s}
}

func (s *Store) Close() error {
	if s.closed.Swap(true) {
		return nil
	}

	s.pool.Close()

	return nil
}

// Drop removes the table of the store. Used by tests.
func (s *Store) Drop(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "DROP TABLE IF EXISTS "+pgx.Identifier{s.table}.Sanitize())

	return err
}

type batch struct {
	store *Store
	b     pgx.Batch
}

func (b *batch) Put(k []byte, v []byte) {
	b.b.Queue(b.store.upsertQuery, append([]byte{}, k...), append([]byte{}, v...))
}

func (b *batch) Delete(k []byte) {
	b.b.Queue(b.store.deleteQuery, append([]byte{}, k...))
}

func (b *batch) Write() error {
	if b.store.closed.Load() {
		return sigdb.ErrClosed
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	err := pgx.BeginFunc(ctx, b.store.pool, func(tx pgx.Tx) error {
		return tx.SendBatch(ctx, &b.b).Close()
	})
	if err != nil {
		return err
	}

	b.b = pgx.Batch{}

	return nil
}
