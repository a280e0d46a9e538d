package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"assetoracle/internal/asset/models"
	dErrors "assetoracle/pkg/domain-errors"
)

// PostgresStore persists assets in the assets table. Location and blockchain
// data are stored as jsonb.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Schema is the assets DDL applied by migrations and integration tests.
const Schema = `
CREATE TABLE IF NOT EXISTS assets (
	id                  TEXT PRIMARY KEY,
	name                TEXT NOT NULL,
	description         TEXT NOT NULL,
	category            TEXT NOT NULL,
	estimated_value     DOUBLE PRECISION NOT NULL,
	location            JSONB NOT NULL,
	owner_wallet        TEXT NOT NULL,
	verification_status TEXT NOT NULL,
	blockchain_data     JSONB NOT NULL,
	created_at          TIMESTAMPTZ NOT NULL,
	updated_at          TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS assets_status_idx ON assets (verification_status);
CREATE INDEX IF NOT EXISTS assets_owner_idx ON assets (owner_wallet);
`

func (s *PostgresStore) Save(ctx context.Context, asset models.Asset) error {
	location, err := json.Marshal(asset.Location)
	if err != nil {
		return fmt.Errorf("marshal location: %w", err)
	}
	chainData, err := json.Marshal(asset.BlockchainData)
	if err != nil {
		return fmt.Errorf("marshal blockchain data: %w", err)
	}

	query := `
		INSERT INTO assets (
			id, name, description, category, estimated_value, location,
			owner_wallet, verification_status, blockchain_data, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			estimated_value = EXCLUDED.estimated_value,
			location = EXCLUDED.location,
			verification_status = EXCLUDED.verification_status,
			blockchain_data = EXCLUDED.blockchain_data,
			updated_at = EXCLUDED.updated_at
	`
	_, err = s.db.ExecContext(ctx, query,
		asset.ID, asset.Name, asset.Description, asset.Category,
		asset.EstimatedValue, location, asset.OwnerWallet,
		string(asset.VerificationStatus), chainData,
		asset.CreatedAt, asset.UpdatedAt,
	)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "insert asset")
	}
	return nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (models.Asset, error) {
	query := selectColumns + ` FROM assets WHERE id = $1`
	asset, err := scanAsset(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Asset{}, ErrNotFound
	}
	if err != nil {
		return models.Asset{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "query asset")
	}
	return asset, nil
}

func (s *PostgresStore) List(ctx context.Context, filter models.ListFilter) (models.Page, error) {
	filter = filter.Normalize()

	var conditions []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.VerifiedOnly {
		if filter.OwnerWallet != "" {
			conditions = append(conditions, fmt.Sprintf(
				"(verification_status = %s OR owner_wallet = %s)",
				arg(string(models.StatusVerified)), arg(filter.OwnerWallet)))
		} else {
			conditions = append(conditions, "verification_status = "+arg(string(models.StatusVerified)))
		}
	}
	if filter.Category != "" {
		conditions = append(conditions, "category = "+arg(filter.Category))
	}
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		conditions = append(conditions, fmt.Sprintf(
			"(LOWER(name) LIKE %s OR LOWER(location->>'city') LIKE %s OR LOWER(location->>'state') LIKE %s)",
			arg(pattern), arg(pattern), arg(pattern)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM assets"+where, args...).Scan(&total); err != nil {
		return models.Page{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "count assets")
	}

	query := selectColumns + " FROM assets" + where +
		" ORDER BY created_at DESC" +
		" LIMIT " + arg(filter.Limit) +
		" OFFSET " + arg((filter.Page-1)*filter.Limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return models.Page{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "list assets")
	}
	defer rows.Close()

	page := models.Page{Total: total, PageNo: filter.Page, Limit: filter.Limit}
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return models.Page{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "scan asset")
		}
		page.Assets = append(page.Assets, asset)
	}
	if err := rows.Err(); err != nil {
		return models.Page{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "iterate assets")
	}
	return page, nil
}

func (s *PostgresStore) Transition(ctx context.Context, id string, from, to models.VerificationStatus, data models.BlockchainData) (models.Asset, error) {
	current, err := s.FindByID(ctx, id)
	if err != nil {
		return models.Asset{}, err
	}

	merged := current.BlockchainData
	if data.DocumentHash != "" {
		merged.DocumentHash = data.DocumentHash
	}
	if data.VerificationID != "" {
		merged.VerificationID = data.VerificationID
	}
	if !data.VerifiedAt.IsZero() {
		merged.VerifiedAt = data.VerifiedAt
	}
	if data.Network != "" {
		merged.Network = data.Network
	}
	chainData, err := json.Marshal(merged)
	if err != nil {
		return models.Asset{}, fmt.Errorf("marshal blockchain data: %w", err)
	}

	// Optimistic check on the current status keeps concurrent runs from
	// racing to different terminal states.
	query := `
		UPDATE assets
		SET verification_status = $1, blockchain_data = $2, updated_at = $3
		WHERE id = $4 AND verification_status = $5
	`
	result, err := s.db.ExecContext(ctx, query,
		string(to), chainData, time.Now(), id, string(from))
	if err != nil {
		return models.Asset{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "transition asset")
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return models.Asset{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "transition asset")
	}
	if affected == 0 {
		return models.Asset{}, ErrConflict
	}

	return s.FindByID(ctx, id)
}

const selectColumns = `
	SELECT id, name, description, category, estimated_value, location,
	       owner_wallet, verification_status, blockchain_data, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAsset(row rowScanner) (models.Asset, error) {
	var (
		asset     models.Asset
		status    string
		location  []byte
		chainData []byte
	)
	err := row.Scan(
		&asset.ID, &asset.Name, &asset.Description, &asset.Category,
		&asset.EstimatedValue, &location, &asset.OwnerWallet,
		&status, &chainData, &asset.CreatedAt, &asset.UpdatedAt,
	)
	if err != nil {
		return models.Asset{}, err
	}
	if err := json.Unmarshal(location, &asset.Location); err != nil {
		return models.Asset{}, fmt.Errorf("unmarshal location: %w", err)
	}
	if err := json.Unmarshal(chainData, &asset.BlockchainData); err != nil {
		return models.Asset{}, fmt.Errorf("unmarshal blockchain data: %w", err)
	}
	asset.VerificationStatus = models.VerificationStatus(status)
	return asset, nil
}
