package balances

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fitmint/internal/common"
	"github.com/dmitrijs2005/fitmint/internal/dbx"
	"github.com/holiman/uint256"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, account string) (*uint256.Int, error) {
	query := `SELECT amount FROM balances WHERE account = $1`

	amount := new(uint256.Int)
	if err := r.db.QueryRowContext(ctx, query, account).Scan(amount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return amount, nil
}

func (r *PostgresRepository) Put(ctx context.Context, account string, amount *uint256.Int) error {
	query :=
		`INSERT INTO balances (account, amount) VALUES ($1, $2)
		 ON CONFLICT (account) DO UPDATE SET amount = EXCLUDED.amount`

	if _, err := r.db.ExecContext(ctx, query, account, amount); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
