// Package postgres persists fixed artifact claims in PostgreSQL using pgx v5.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/cory-johannsen/itemforge/internal/config"
)

// ClaimsTable is the table the claim repository reads and writes.
const ClaimsTable = "artifact_claims"

// ErrSchemaMissing is returned when the claims table has not been migrated.
var ErrSchemaMissing = errors.New("artifact claim schema missing; run cmd/migrate")

// Pool wraps a pgx connection pool for the claim store.
type Pool struct {
	pool *pgxpool.Pool
}

// NewPool connects to the claim database and pings it.
//
// Precondition: cfg must contain valid database connection parameters.
// Postcondition: Returns a connected Pool or a non-nil error.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.ConnConfig.RuntimeParams["application_name"] = "itemforge"

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging claim database %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return &Pool{pool: pool}, nil
}

// CheckSchema reports ErrSchemaMissing unless the claims table exists.
func (p *Pool) CheckSchema(ctx context.Context) error {
	var present bool
	if err := p.pool.QueryRow(ctx,
		`SELECT to_regclass($1) IS NOT NULL`, ClaimsTable,
	).Scan(&present); err != nil {
		return fmt.Errorf("checking claim schema: %w", err)
	}
	if !present {
		return ErrSchemaMissing
	}
	return nil
}

// Health checks that the database is reachable within the given timeout.
//
// Precondition: The pool must not be closed.
func (p *Pool) Health(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return p.pool.Ping(ctx)
}

// Close releases all pool resources.
func (p *Pool) Close() {
	p.pool.Close()
}

// DB returns the underlying pgxpool.Pool for use by repositories.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}

// OpenClaimStore connects to the claim database, verifies the schema and
// returns a repository over it. The caller closes the returned Pool.
//
// Precondition: logger must be non-nil.
// Postcondition: on error no pool is left open.
func OpenClaimStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*ArtifactClaimRepository, *Pool, error) {
	start := time.Now()
	pool, err := NewPool(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := pool.CheckSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	repo := NewArtifactClaimRepository(pool.DB())
	claimed, err := repo.Count(ctx)
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	logger.Info("claim store selected",
		zap.String("store", config.ClaimStorePostgres),
		zap.String("host", cfg.Host),
		zap.Int("claimed", claimed),
		zap.Duration("elapsed", time.Since(start)),
	)
	return repo, pool, nil
}
