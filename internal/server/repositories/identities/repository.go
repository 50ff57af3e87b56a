package identities

import "context"

// Repository binds identity token digests to the account that used them.
type Repository interface {
	Owner(ctx context.Context, digest []byte) (string, error)
	Bind(ctx context.Context, digest []byte, account string) error
}
