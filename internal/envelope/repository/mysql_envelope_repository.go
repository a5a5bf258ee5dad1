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

// isMySQLUniqueViolation checks if the error is a MySQL unique constraint
// violation.
func isMySQLUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	errMsg := strings.ToLower(err.Error())
	// MySQL: "Error 1062: Duplicate entry"
	return strings.Contains(errMsg, "duplicate entry") || strings.Contains(errMsg, "1062")
}

// MySQLEnvelopeRepository implements Envelope persistence for MySQL databases.
type MySQLEnvelopeRepository struct {
	db *sql.DB
}

// NewMySQLEnvelopeRepository creates a new MySQL Envelope repository instance.
func NewMySQLEnvelopeRepository(db *sql.DB) *MySQLEnvelopeRepository {
	return &MySQLEnvelopeRepository{db: db}
}

// Create inserts a new envelope and its blocks into the MySQL database.
func (m *MySQLEnvelopeRepository) Create(
	ctx context.Context,
	envelope *envelopeDomain.Envelope,
) error {
	querier := database.GetTx(ctx, m.db)

	id, err := envelope.ID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal envelope id")
	}

	merkleRoot, err := json.Marshal(envelope.MerkleRoot)
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal merkle root")
	}

	query := `INSERT INTO envelopes (id, path, version, key_id, algorithm, chunk_size, checksum, merkle_root, created_at, deleted_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
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
		if isMySQLUniqueViolation(err) {
			return apperrors.Wrap(apperrors.ErrConflict, "envelope version already exists")
		}
		return apperrors.Wrap(err, "failed to create envelope")
	}

	blockQuery := `INSERT INTO envelope_blocks (envelope_id, idx, hash, data)
				   VALUES (?, ?, ?, ?)`

	for _, block := range envelope.Blocks {
		_, err := querier.ExecContext(ctx, blockQuery, id, block.Index, block.Hash, block.Data)
		if err != nil {
			return apperrors.Wrap(err, "failed to create envelope block")
		}
	}

	return nil
}

// GetByPath retrieves the latest non-deleted version of an envelope by its
// path, including its blocks.
func (m *MySQLEnvelopeRepository) GetByPath(
	ctx context.Context,
	path string,
) (*envelopeDomain.Envelope, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, path, version, key_id, algorithm, chunk_size, checksum, merkle_root, created_at, deleted_at
			  FROM envelopes
			  WHERE path = ? AND deleted_at IS NULL
			  ORDER BY version DESC
			  LIMIT 1`

	return m.getEnvelope(ctx, querier, query, path)
}

// GetByPathAndVersion retrieves a specific version of an envelope by its path
// and version number, including its blocks.
func (m *MySQLEnvelopeRepository) GetByPathAndVersion(
	ctx context.Context,
	path string,
	version uint,
) (*envelopeDomain.Envelope, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, path, version, key_id, algorithm, chunk_size, checksum, merkle_root, created_at, deleted_at
			  FROM envelopes
			  WHERE path = ? AND version = ? AND deleted_at IS NULL
			  LIMIT 1`

	return m.getEnvelope(ctx, querier, query, path, version)
}

// getEnvelope scans one envelope row and loads its blocks.
func (m *MySQLEnvelopeRepository) getEnvelope(
	ctx context.Context,
	querier database.Querier,
	query string,
	args ...any,
) (*envelopeDomain.Envelope, error) {
	var envelope envelopeDomain.Envelope
	var id, merkleRoot []byte

	err := querier.QueryRowContext(ctx, query, args...).Scan(
		&id,
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

	if err := envelope.ID.UnmarshalBinary(id); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal envelope id")
	}
	if err := json.Unmarshal(merkleRoot, &envelope.MerkleRoot); err != nil {
		return nil, apperrors.Wrap(err, "failed to unmarshal merkle root")
	}

	blocks, err := m.getBlocks(ctx, querier, id)
	if err != nil {
		return nil, err
	}
	envelope.Blocks = blocks

	return &envelope, nil
}

// getBlocks loads the envelope's blocks ordered by index.
func (m *MySQLEnvelopeRepository) getBlocks(
	ctx context.Context,
	querier database.Querier,
	envelopeID []byte,
) ([]envelopeDomain.Chunk, error) {
	query := `SELECT idx, hash, data
			  FROM envelope_blocks
			  WHERE envelope_id = ?
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
func (m *MySQLEnvelopeRepository) Delete(ctx context.Context, envelopeID uuid.UUID) error {
	querier := database.GetTx(ctx, m.db)

	id, err := envelopeID.MarshalBinary()
	if err != nil {
		return apperrors.Wrap(err, "failed to marshal envelope id")
	}

	query := `UPDATE envelopes
			  SET deleted_at = ?
			  WHERE id = ?`

	_, err = querier.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return apperrors.Wrap(err, "failed to delete envelope")
	}

	return nil
}

// List retrieves envelope metadata without blocks, ordered by path with pagination.
func (m *MySQLEnvelopeRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*envelopeDomain.Envelope, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, path, version, key_id, algorithm, chunk_size, checksum, merkle_root, created_at, deleted_at
			  FROM envelopes
			  WHERE deleted_at IS NULL
			  ORDER BY path ASC, version DESC
			  LIMIT ? OFFSET ?`

	rows, err := querier.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list envelopes")
	}
	defer rows.Close()

	var envelopes []*envelopeDomain.Envelope
	for rows.Next() {
		var envelope envelopeDomain.Envelope
		var id, merkleRoot []byte
		err := rows.Scan(
			&id,
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
		if err := envelope.ID.UnmarshalBinary(id); err != nil {
			return nil, apperrors.Wrap(err, "failed to unmarshal envelope id")
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
