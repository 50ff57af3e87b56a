package identities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fitmint/internal/common"
	"github.com/dmitrijs2005/fitmint/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Owner(ctx context.Context, digest []byte) (string, error) {
	query := `SELECT account FROM identities WHERE digest = $1`

	var account string
	err := r.db.QueryRowContext(ctx, query, digest).Scan(&account)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("db error: %w", err)
	}
	return account, nil
}

func (r *PostgresRepository) Bind(ctx context.Context, digest []byte, account string) error {
	query :=
		`INSERT INTO identities (digest, account) VALUES ($1, $2)
		 ON CONFLICT (digest) DO UPDATE SET account = EXCLUDED.account`

	if _, err := r.db.ExecContext(ctx, query, digest, account); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
