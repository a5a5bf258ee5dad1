// Package repository implements envelope persistence for PostgreSQL and
// MySQL. Envelope metadata lives in the envelopes table; the chunks live in
// envelope_blocks keyed by envelope ID and index.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/blockcrypt/internal/database"
	envelopeDomain "github.com/allisson/blockcrypt/internal/envelope/domain"
	apperrors "github.com/allisson/blockcrypt/internal/errors"
)

// isPostgreSQLUniqueViolation checks if the error is a PostgreSQL unique
// constraint violation.
func isPostgreSQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// PostgreSQL: "duplicate key value violates unique constraint"
	return strings.Contains(errMsg, "duplicate key") || strings.Contains(errMsg, "unique constraint")
}

// PostgreSQLEnvelopeRepository implements Envelope persistence for PostgreSQL databases.
type PostgreSQLEnvelopeRepository struct {
	db *sql.DB
}

// NewPostgreSQLEnvelopeRepository creates a new PostgreSQL Envelope repository instance.
func NewPostgreSQLEnvelopeRepository(db *sql.DB) *PostgreSQLEnvelopeRepository {
	return &PostgreSQLEnvelopeRepository{db: db}
}

// Create inserts a new envelope and its blocks into the PostgreSQL database.
func (p *PostgreSQLEnvelopeRepository) Create(
	ctx context.Context,
	envelope *envelopeDomain.Envelope,
) error {
	querier := database.GetTx(ctx, p.db)

	merkleRoot, err := json.Marshal(envelope.MerkleRoot)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal merkle root")
	}

	query := `INSERT INTO envelopes (id, path, version, key_id, algorithm, chunk_size, checksum, merkle_root, created_at, deleted_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = querier.ExecContext(
		ctx,
		query,
		envelope.ID,
		envelope.Path,
		envelope.Version,
		envelope.KeyID,
		envelope.Algorithm,
		envelope.ChunkSize,
		envelope.Checksum,
		merkleRoot,
		envelope.CreatedAt,
		envelope.DeletedAt,
	)
	if err != nil {
		if isPostgreSQLUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "envelope version already exists")
		}
		return apperrors.Wrap(err, "failed to create envelope")
	}

	blockQuery := `INSERT INTO envelope_blocks (envelope_id, idx, hash, data)
				   VALUES ($1, $2, $3, $4)`

	for _, block := range envelope.Blocks {
		_, err := querier.ExecContext(ctx, blockQuery, envelope.ID, block.Index, block.Hash, block.Data)
		if err != nil {
			return apperrors.Wrap(err, "failed to create envelope block")
		}
	}

	return nil
}

// GetByPath retrieves the latest non-deleted version of an envelope by its
// path, including its blocks.
func (p *PostgreSQLEnvelopeRepository) GetByPath(
	ctx context.Context,
	path string,
) (*envelopeDomain.Envelope, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, path, version, key_id, algorithm, chunk_size, checksum, merkle_root, created_at, deleted_at
			  FROM envelopes
			  WHERE path = $1 AND deleted_at IS NULL
			  ORDER BY version DESC
			  LIMIT 1`

	return p.getEnvelope(ctx, querier, query, path)
}

// GetByPathAndVersion retrieves a specific version of an envelope by its path
// and version number, including its blocks.
func (p *PostgreSQLEnvelopeRepository) GetByPathAndVersion(
	ctx context.Context,
	path string,
	version uint,
) (*envelopeDomain.Envelope, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, path, version, key_id, algorithm, chunk_size, checksum, merkle_root, created_at, deleted_at
			  FROM envelopes
			  WHERE path = $1 AND version = $2 AND deleted_at IS NULL
			  LIMIT 1`

	return p.getEnvelope(ctx, querier, query, path, version)
}

// getEnvelope scans one envelope row and loads its blocks.
func (p *PostgreSQLEnvelopeRepository) getEnvelope(
	ctx context.Context,
	querier database.Querier,
	query string,
	args ...any,
) (*envelopeDomain.Envelope, error) {
	var envelope envelopeDomain.Envelope
	var merkleRoot []byte

	err := querier.QueryRowContext(ctx, query, args...).Scan(
		&envelope.ID,
		&envelope.Path,
		&envelope.Version,
		&envelope.KeyID,
		&envelope.Algorithm,
		&envelope.ChunkSize,
		&envelope.Checksum,
		&merkleRoot,
		&envelope.CreatedAt,
		&envelope.DeletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get envelope")
	}

	if err := json.Unmarshal(merkleRoot, &envelope.MerkleRoot); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal merkle root")
	}

	blocks, err := p.getBlocks(ctx, querier, envelope.ID)
	if err != nil {
		return nil, err
	}
	envelope.Blocks = blocks

	return &envelope, nil
}

// getBlocks loads the envelope's blocks ordered by index.
func (p *PostgreSQLEnvelopeRepository) getBlocks(
	ctx context.Context,
	querier database.Querier,
	envelopeID uuid.UUID,
) ([]envelopeDomain.Chunk, error) {
	query := `SELECT idx, hash, data
			  FROM envelope_blocks
			  WHERE envelope_id = $1
			  ORDER BY idx ASC`

	rows, err := querier.QueryContext(ctx, query, envelopeID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get envelope blocks")
	}
	defer rows.Close()

	var blocks []envelopeDomain.Chunk
	for rows.Next() {
		var block envelopeDomain.Chunk
		if err := rows.Scan(&block.Index, &block.Hash, &block.Data); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan envelope block")
		}
		blocks = append(blocks, block)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate envelope blocks")
	}

	return blocks, nil
}

// Delete performs a soft delete on an envelope by setting the DeletedAt timestamp.
func (p *PostgreSQLEnvelopeRepository) Delete(ctx context.Context, envelopeID uuid.UUID) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE envelopes
			  SET deleted_at = $1
			  WHERE id = $2`

	_, err := querier.ExecContext(ctx, query, time.Now().UTC(), envelopeID)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete envelope")
	}

	return nil
}

// List retrieves envelope metadata without blocks, ordered by path with pagination.
func (p *PostgreSQLEnvelopeRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*envelopeDomain.Envelope, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, path, version, key_id, algorithm, chunk_size, checksum, merkle_root, created_at, deleted_at
			  FROM envelopes
			  WHERE deleted_at IS NULL
			  ORDER BY path ASC, version DESC
			  OFFSET $1 LIMIT $2`

	rows, err := querier.QueryContext(ctx, query, offset, limit)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list envelopes")
	}
	defer rows.Close()

	var envelopes []*envelopeDomain.Envelope
	for rows.Next() {
		var envelope envelopeDomain.Envelope
		var merkleRoot []byte
		err := rows.Scan(
			&envelope.ID,
			&envelope.Path,
			&envelope.Version,
			&envelope.KeyID,
			&envelope.Algorithm,
			&envelope.ChunkSize,
			&envelope.Checksum,
			&merkleRoot,
			&envelope.CreatedAt,
			&envelope.DeletedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan envelope")
		}
		if err := json.Unmarshal(merkleRoot, &envelope.MerkleRoot); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal merkle root")
		}
		envelopes = append(envelopes, &envelope)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate envelopes")
	}

	return envelopes, nil
}
