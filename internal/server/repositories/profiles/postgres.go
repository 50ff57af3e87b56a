package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fitmint/internal/common"
	"github.com/dmitrijs2005/fitmint/internal/dbx"
	"github.com/dmitrijs2005/fitmint/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Get(ctx context.Context, account string) (*models.UserProfile, error) {
	query :=
		`SELECT account, is_verified, identity_token, verified_at, last_claim_time, streak_days, total_claimed
		 FROM profiles
		 WHERE account = $1
		 `

	p := &models.UserProfile{}
	var verifiedAt, lastClaim sql.NullTime

	err := r.db.QueryRowContext(ctx, query, account).Scan(
		&p.Account, &p.IsVerified, &p.IdentityToken, &verifiedAt, &lastClaim, &p.StreakDays, &p.TotalClaimed)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	if verifiedAt.Valid {
		p.VerifiedAt = verifiedAt.Time.UTC()
	}
	if lastClaim.Valid {
		t := lastClaim.Time.UTC()
		p.LastClaimTime = &t
	}

	return p, nil
}

func (r *PostgresRepository) Put(ctx context.Context, p *models.UserProfile) error {
	query :=
		`INSERT INTO profiles (account, is_verified, identity_token, verified_at, last_claim_time, streak_days, total_claimed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (account) DO UPDATE SET
		 is_verified = EXCLUDED.is_verified,
		 identity_token = EXCLUDED.identity_token,
		 verified_at = EXCLUDED.verified_at,
		 last_claim_time = EXCLUDED.last_claim_time,
		 streak_days = EXCLUDED.streak_days,
		 total_claimed = EXCLUDED.total_claimed`

	var verifiedAt sql.NullTime
	if !p.VerifiedAt.IsZero() {
		verifiedAt = sql.NullTime{Time: p.VerifiedAt, Valid: true}
	}
	var lastClaim sql.NullTime
	if p.LastClaimTime != nil {
		lastClaim = sql.NullTime{Time: *p.LastClaimTime, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		p.Account, p.IsVerified, p.IdentityToken, verifiedAt, lastClaim, p.StreakDays, &p.TotalClaimed)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
