package engine

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/fitmint/internal/common"
	"github.com/dmitrijs2005/fitmint/internal/server/models"
	"github.com/holiman/uint256"
)

// NewChallenge describes a challenge to create.
type NewChallenge struct {
	Name        string
	TargetSteps uint64
	Duration    time.Duration
	PrizePool   uint256.Int
}

// CreateChallenge opens a new challenge. Owner only.
func (e *Engine) CreateChallenge(ctx context.Context, caller string, nc NewChallenge) (*models.Challenge, error) {
	if !e.isOwner(caller) {
		e.recorder.Operation("create_challenge", common.ErrUnauthorized, 0)
		return nil, common.ErrUnauthorized
	}
	name := strings.TrimSpace(nc.Name)
	if name == "" || nc.TargetSteps == 0 || nc.Duration <= 0 {
		e.recorder.Operation("create_challenge", common.ErrInvalidChallenge, 0)
		return nil, common.ErrInvalidChallenge
	}

	var created models.Challenge
	_, err := e.apply(ctx, "create_challenge", func(ctx context.Context, s *opState) error {
		c := models.Challenge{
			ID:          s.g.NextChallengeID,
			Name:        name,
			TargetSteps: nc.TargetSteps,
			CreatedAt:   s.now,
			Duration:    nc.Duration,
			EndsAt:      s.now.Add(nc.Duration),
			PrizePool:   nc.PrizePool,
			IsActive:    true,
			Status:      models.ChallengeActive,
		}
		if err := s.tx.PutChallenge(ctx, &c); err != nil {
			return fmt.Errorf("store challenge: %w", err)
		}

		s.g.NextChallengeID++
		if _, overflow := s.g.ReservedPrizes.AddOverflow(&s.g.ReservedPrizes, &c.PrizePool); overflow {
			return common.ErrInvalidAmount
		}

		s.emit(models.EventChallengeCreated, caller, idPtr(c.ID), &c.PrizePool, map[string]string{
			"name":        c.Name,
			"targetSteps": strconv.FormatUint(c.TargetSteps, 10),
			"endsAt":      c.EndsAt.Format(time.RFC3339),
		})

		if s.g.ReservedPrizes.Gt(&s.g.TreasuryBalance) {
			e.logger.Warn(ctx, "reserved prizes exceed treasury",
				"reserved", s.g.ReservedPrizes.Dec(), "treasury", s.g.TreasuryBalance.Dec())
		}

		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// loadOpenChallenge returns the challenge if it still accepts joins and
// progress at now. Unknown, closed and lapsed challenges are all inactive.
func loadOpenChallenge(ctx context.Context, s *opState, id uint64) (*models.Challenge, error) {
	c, err := s.tx.Challenge(ctx, id)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return nil, common.ErrChallengeInactive
	case err != nil:
		return nil, fmt.Errorf("load challenge: %w", err)
	}
	if !c.AcceptsActivity(s.now) {
		return nil, common.ErrChallengeInactive
	}
	return c, nil
}

// JoinChallenge adds account to the challenge participants.
func (e *Engine) JoinChallenge(ctx context.Context, account string, id uint64) (*models.Event, error) {
	events, err := e.apply(ctx, "join_challenge", func(ctx context.Context, s *opState) error {
		p, err := s.tx.Profile(ctx, account)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return common.ErrNotVerified
		case err != nil:
			return fmt.Errorf("load profile: %w", err)
		}
		if !p.IsVerified {
			return common.ErrNotVerified
		}
		if s.g.Paused {
			return common.ErrPaused
		}

		c, err := loadOpenChallenge(ctx, s, id)
		if err != nil {
			return err
		}

		_, err = s.tx.Participant(ctx, id, account)
		switch {
		case err == nil:
			return common.ErrAlreadyJoined
		case !errors.Is(err, common.ErrorNotFound):
			return fmt.Errorf("load participant: %w", err)
		}

		if err := s.tx.PutParticipant(ctx, &models.Participant{ChallengeID: id, Account: account, JoinedAt: s.now}); err != nil {
			return fmt.Errorf("store participant: %w", err)
		}
		c.ParticipantCount++
		if err := s.tx.PutChallenge(ctx, c); err != nil {
			return fmt.Errorf("store challenge: %w", err)
		}

		s.emit(models.EventChallengeJoined, account, idPtr(id), nil, map[string]string{
			"participantCount": strconv.FormatUint(c.ParticipantCount, 10),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lastEvent(events), nil
}

// ProgressResult is the outcome of a progress report.
type ProgressResult struct {
	Completed bool
	Event     models.Event
}

// UpdateChallengeProgress records steps for a participant. The first report
// that reaches the target wins the prize and closes the challenge.
func (e *Engine) UpdateChallengeProgress(ctx context.Context, account string, id uint64, steps uint64) (*ProgressResult, error) {
	var completed bool
	var prize uint256.Int

	events, err := e.apply(ctx, "update_progress", func(ctx context.Context, s *opState) error {
		completed = false

		c, err := loadOpenChallenge(ctx, s, id)
		if err != nil {
			return err
		}

		part, err := s.tx.Participant(ctx, id, account)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return common.ErrNotParticipant
		case err != nil:
			return fmt.Errorf("load participant: %w", err)
		}

		now := s.now
		part.Steps = steps
		part.ReportedAt = &now

		if steps < c.TargetSteps {
			if err := s.tx.PutParticipant(ctx, part); err != nil {
				return fmt.Errorf("store participant: %w", err)
			}
			s.emit(models.EventChallengeProgress, account, idPtr(id), nil, map[string]string{
				"steps":       strconv.FormatUint(steps, 10),
				"targetSteps": strconv.FormatUint(c.TargetSteps, 10),
			})
			return nil
		}

		if err := s.debitTreasury(&c.PrizePool); err != nil {
			return err
		}
		if err := s.credit(ctx, account, &c.PrizePool); err != nil {
			return err
		}
		s.g.TotalRewardsDistributed.Add(&s.g.TotalRewardsDistributed, &c.PrizePool)
		s.releaseReservation(&c.PrizePool)

		c.Winner = account
		c.IsActive = false
		c.Status = models.ChallengeCompleted
		c.ClosedAt = &now
		if err := s.tx.PutChallenge(ctx, c); err != nil {
			return fmt.Errorf("store challenge: %w", err)
		}
		if err := s.tx.PutParticipant(ctx, part); err != nil {
			return fmt.Errorf("store participant: %w", err)
		}

		s.emit(models.EventChallengeCompleted, account, idPtr(id), &c.PrizePool, map[string]string{
			"steps": strconv.FormatUint(steps, 10),
		})
		completed = true
		prize = c.PrizePool
		return nil
	})
	if err != nil {
		return nil, err
	}

	if completed {
		e.recorder.Payout("challenge", &prize)
	}
	return &ProgressResult{Completed: completed, Event: *lastEvent(events)}, nil
}

// expire closes a lapsed challenge. Under ExpiryRelease the reservation is
// returned at once and nothing is left to reclaim.
func (e *Engine) expire(s *opState, c *models.Challenge) {
	now := s.now
	c.IsActive = false
	c.Status = models.ChallengeExpired
	c.ClosedAt = &now
	if e.policy.Expiry == ExpiryRelease {
		s.releaseReservation(&c.PrizePool)
		c.Reclaimed = true
	}
	s.emit(models.EventChallengeExpired, "", idPtr(c.ID), &c.PrizePool, map[string]string{
		"policy":       string(e.policy.Expiry),
		"participants": strconv.FormatUint(c.ParticipantCount, 10),
	})
}

// SweepExpired closes every active challenge whose end passed without a
// winner. It returns the emitted ChallengeExpired events.
func (e *Engine) SweepExpired(ctx context.Context) ([]models.Event, error) {
	var due bool
	err := e.view(ctx, func(ctx context.Context, v *viewState) error {
		active, err := v.tx.ActiveChallenges(ctx)
		if err != nil {
			return fmt.Errorf("list challenges: %w", err)
		}
		for i := range active {
			if active[i].Lapsed(v.now) {
				due = true
				break
			}
		}
		return nil
	})
	if err != nil || !due {
		return nil, err
	}

	return e.apply(ctx, "sweep_expired", func(ctx context.Context, s *opState) error {
		active, err := s.tx.ActiveChallenges(ctx)
		if err != nil {
			return fmt.Errorf("list challenges: %w", err)
		}
		for i := range active {
			c := &active[i]
			if !c.Lapsed(s.now) {
				continue
			}
			e.expire(s, c)
			if err := s.tx.PutChallenge(ctx, c); err != nil {
				return fmt.Errorf("store challenge: %w", err)
			}
		}
		return nil
	})
}

// ReclaimChallenge releases the prize reservation of an expired challenge.
// Owner only. A lapsed challenge the sweeper has not reached yet is expired
// on the spot.
func (e *Engine) ReclaimChallenge(ctx context.Context, caller string, id uint64) (*models.Event, error) {
	if !e.isOwner(caller) {
		e.recorder.Operation("reclaim_challenge", common.ErrUnauthorized, 0)
		return nil, common.ErrUnauthorized
	}

	events, err := e.apply(ctx, "reclaim_challenge", func(ctx context.Context, s *opState) error {
		c, err := s.tx.Challenge(ctx, id)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			return common.ErrChallengeNotFound
		case err != nil:
			return fmt.Errorf("load challenge: %w", err)
		}

		if c.IsActive && c.Lapsed(s.now) {
			e.expire(s, c)
		}
		if c.Status != models.ChallengeExpired || c.Reclaimed {
			return common.ErrChallengeNotExpired
		}

		s.releaseReservation(&c.PrizePool)
		c.Reclaimed = true
		if err := s.tx.PutChallenge(ctx, c); err != nil {
			return fmt.Errorf("store challenge: %w", err)
		}
		s.emit(models.EventChallengeReclaimed, caller, idPtr(id), &c.PrizePool, nil)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lastEvent(events), nil
}
