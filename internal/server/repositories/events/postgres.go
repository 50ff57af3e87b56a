package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/fitmint/internal/dbx"
	"github.com/dmitrijs2005/fitmint/internal/server/models"
	"github.com/holiman/uint256"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, e *models.Event) error {
	query :=
		`INSERT INTO events (seq, id, type, account, challenge_id, amount, attributes, at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	account := sql.NullString{String: e.Account, Valid: e.Account != ""}

	var challengeID sql.NullInt64
	if e.ChallengeID != nil {
		challengeID = sql.NullInt64{Int64: int64(*e.ChallengeID), Valid: true}
	}

	var amount sql.NullString
	if e.Amount != nil {
		amount = sql.NullString{String: e.Amount.Dec(), Valid: true}
	}

	var attrs any
	if len(e.Attributes) > 0 {
		b, err := json.Marshal(e.Attributes)
		if err != nil {
			return fmt.Errorf("marshal attributes: %w", err)
		}
		attrs = b
	}

	_, err := r.db.ExecContext(ctx, query, e.Seq, e.ID, string(e.Type), account, challengeID, amount, attrs, e.At)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) List(ctx context.Context, afterSeq uint64, limit int) ([]models.Event, error) {
	query :=
		`SELECT seq, id, type, account, challenge_id, amount, attributes, at FROM events
		 WHERE seq > $1 ORDER BY seq LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, afterSeq, limit)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []models.Event
	for rows.Next() {
		var (
			e           models.Event
			typ         string
			account     sql.NullString
			challengeID sql.NullInt64
			amount      sql.NullString
			attrs       []byte
		)
		if err := rows.Scan(&e.Seq, &e.ID, &typ, &account, &challengeID, &amount, &attrs, &e.At); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}

		e.Type = models.EventType(typ)
		e.Account = account.String
		e.At = e.At.UTC()
		if challengeID.Valid {
			id := uint64(challengeID.Int64)
			e.ChallengeID = &id
		}
		if amount.Valid {
			v, err := uint256.FromDecimal(amount.String)
			if err != nil {
				return nil, fmt.Errorf("event %d amount: %w", e.Seq, err)
			}
			e.Amount = v
		}
		if len(attrs) > 0 {
			if err := json.Unmarshal(attrs, &e.Attributes); err != nil {
				return nil, fmt.Errorf("event %d attributes: %w", e.Seq, err)
			}
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
