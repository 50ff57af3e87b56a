package balances

import (
	"context"

	"github.com/holiman/uint256"
)

type Repository interface {
	// Get returns common.ErrorNotFound for accounts that were never credited.
	Get(ctx context.Context, account string) (*uint256.Int, error)
	Put(ctx context.Context, account string, amount *uint256.Int) error
}
