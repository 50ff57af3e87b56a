package challenges

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

const selectColumns = `SELECT id, name, target_steps, created_at, duration_ns, ends_at, prize_pool,
		 participant_count, winner, is_active, status, reclaimed, closed_at
		 FROM challenges`

type scanner interface {
	Scan(dest ...any) error
}

func scanChallenge(row scanner) (*models.Challenge, error) {
	c := &models.Challenge{}
	var durationNs int64
	var winner sql.NullString
	var status string
	var closedAt sql.NullTime

	if err := row.Scan(&c.ID, &c.Name, &c.TargetSteps, &c.CreatedAt, &durationNs, &c.EndsAt, &c.PrizePool,
		&c.ParticipantCount, &winner, &c.IsActive, &status, &c.Reclaimed, &closedAt); err != nil {
		return nil, err
	}

	c.CreatedAt = c.CreatedAt.UTC()
	c.EndsAt = c.EndsAt.UTC()
	c.Duration = time.Duration(durationNs)
	c.Winner = winner.String
	c.Status = models.ChallengeStatus(status)
	if closedAt.Valid {
		t := closedAt.Time.UTC()
		c.ClosedAt = &t
	}
	return c, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id uint64) (*models.Challenge, error) {
	query := selectColumns + ` WHERE id = $1`

	c, err := scanChallenge(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) Put(ctx context.Context, c *models.Challenge) error {
	query :=
		`INSERT INTO challenges (id, name, target_steps, created_at, duration_ns, ends_at, prize_pool,
		 participant_count, winner, is_active, status, reclaimed, closed_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		 ON CONFLICT (id) DO UPDATE SET
		 participant_count = EXCLUDED.participant_count,
		 winner = EXCLUDED.winner,
		 is_active = EXCLUDED.is_active,
		 status = EXCLUDED.status,
		 reclaimed = EXCLUDED.reclaimed,
		 closed_at = EXCLUDED.closed_at`

	winner := sql.NullString{String: c.Winner, Valid: c.Winner != ""}
	var closedAt sql.NullTime
	if c.ClosedAt != nil {
		closedAt = sql.NullTime{Time: *c.ClosedAt, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.TargetSteps, c.CreatedAt, int64(c.Duration), c.EndsAt, &c.PrizePool,
		c.ParticipantCount, winner, c.IsActive, string(c.Status), c.Reclaimed, closedAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListActive(ctx context.Context) ([]models.Challenge, error) {
	query := selectColumns + ` WHERE is_active ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Challenge
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
