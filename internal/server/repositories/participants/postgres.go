package participants

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

type scanner interface {
	Scan(dest ...any) error
}

func scanParticipant(row scanner) (*models.Participant, error) {
	p := &models.Participant{}
	var reportedAt sql.NullTime
	if err := row.Scan(&p.ChallengeID, &p.Account, &p.JoinedAt, &p.Steps, &reportedAt); err != nil {
		return nil, err
	}
	p.JoinedAt = p.JoinedAt.UTC()
	if reportedAt.Valid {
		t := reportedAt.Time.UTC()
		p.ReportedAt = &t
	}
	return p, nil
}

func (r *PostgresRepository) Get(ctx context.Context, challengeID uint64, account string) (*models.Participant, error) {
	query :=
		`SELECT challenge_id, account, joined_at, steps, reported_at FROM participants
		 WHERE challenge_id = $1 AND account = $2`

	p, err := scanParticipant(r.db.QueryRowContext(ctx, query, challengeID, account))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) Put(ctx context.Context, p *models.Participant) error {
	query :=
		`INSERT INTO participants (challenge_id, account, joined_at, steps, reported_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (challenge_id, account) DO UPDATE SET
		 steps = EXCLUDED.steps,
		 reported_at = EXCLUDED.reported_at`

	var reportedAt sql.NullTime
	if p.ReportedAt != nil {
		reportedAt = sql.NullTime{Time: *p.ReportedAt, Valid: true}
	}

	if _, err := r.db.ExecContext(ctx, query, p.ChallengeID, p.Account, p.JoinedAt, p.Steps, reportedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, challengeID uint64) ([]models.Participant, error) {
	query :=
		`SELECT challenge_id, account, joined_at, steps, reported_at FROM participants
		 WHERE challenge_id = $1 ORDER BY joined_at, account`

	rows, err := r.db.QueryContext(ctx, query, challengeID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Participant
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
