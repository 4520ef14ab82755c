package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/itemforge/internal/game/artifact"
)

// ErrClaimNotFound is returned when releasing an artifact that has no claim.
var ErrClaimNotFound = errors.New("artifact claim not found")

// ArtifactClaimRepository stores fixed artifact claims. It implements
// artifact.ClaimStore.
type ArtifactClaimRepository struct {
	db *pgxpool.Pool
}

// NewArtifactClaimRepository creates an ArtifactClaimRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewArtifactClaimRepository(db *pgxpool.Pool) *ArtifactClaimRepository {
	return &ArtifactClaimRepository{db: db}
}

// LoadClaims returns every stored claim ordered by claim time.
//
// Postcondition: Returns an empty slice when nothing has been claimed.
func (r *ArtifactClaimRepository) LoadClaims(ctx context.Context) ([]artifact.Claim, error) {
	rows, err := r.db.Query(ctx,
		`SELECT artifact_id, instance_id, depth, claimed_at
		 FROM artifact_claims
		 ORDER BY claimed_at, artifact_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying artifact claims: %w", err)
	}
	defer rows.Close()

	claims := []artifact.Claim{}
	for rows.Next() {
		var c artifact.Claim
		if err := rows.Scan(&c.ArtifactID, &c.InstanceID, &c.Depth, &c.ClaimedAt); err != nil {
			return nil, fmt.Errorf("scanning artifact claim: %w", err)
		}
		claims = append(claims, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating artifact claims: %w", err)
	}
	return claims, nil
}

// SaveClaims inserts claims in a single transaction. An artifact that is
// already claimed keeps its first claim.
//
// Postcondition: either every claim is persisted or none is.
func (r *ArtifactClaimRepository) SaveClaims(ctx context.Context, claims []artifact.Claim) error {
	if len(claims) == 0 {
		return nil
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning claim transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	batch := &pgx.Batch{}
	for _, c := range claims {
		batch.Queue(
			`INSERT INTO artifact_claims (artifact_id, instance_id, depth, claimed_at)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (artifact_id) DO NOTHING`,
			c.ArtifactID, c.InstanceID, c.Depth, c.ClaimedAt,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("inserting artifact claims: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing artifact claims: %w", err)
	}
	return nil
}

// Release deletes the claim on artifactID so the artifact can generate again.
//
// Postcondition: Returns ErrClaimNotFound if the artifact was not claimed.
func (r *ArtifactClaimRepository) Release(ctx context.Context, artifactID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM artifact_claims WHERE artifact_id = $1`, artifactID)
	if err != nil {
		return fmt.Errorf("releasing artifact claim %q: %w", artifactID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("releasing artifact claim %q: %w", artifactID, ErrClaimNotFound)
	}
	return nil
}

// Count returns the number of claimed artifacts.
func (r *ArtifactClaimRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM artifact_claims`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting artifact claims: %w", err)
	}
	return n, nil
}
