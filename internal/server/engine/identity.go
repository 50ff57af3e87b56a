package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/fitmint/internal/common"
	"github.com/dmitrijs2005/fitmint/internal/cryptox"
	"github.com/dmitrijs2005/fitmint/internal/server/models"
)

// Verify marks account as a verified unique human. Verification is a
// one-way latch: a second call fails with ErrAlreadyVerified whatever the
// token.
func (e *Engine) Verify(ctx context.Context, account string, identityToken []byte) (*models.Event, error) {
	events, err := e.apply(ctx, "verify", func(ctx context.Context, s *opState) error {
		p, err := s.tx.Profile(ctx, account)
		switch {
		case errors.Is(err, common.ErrorNotFound):
			p = &models.UserProfile{Account: account}
		case err != nil:
			return fmt.Errorf("load profile: %w", err)
		}

		if p.IsVerified {
			return common.ErrAlreadyVerified
		}
		if len(identityToken) == 0 {
			return common.ErrInvalidIdentityToken
		}

		digest := cryptox.IdentityDigest(identityToken)
		if e.policy.RequireUniqueIdentity {
			owner, err := s.tx.IdentityOwner(ctx, digest[:])
			switch {
			case err == nil && owner != account:
				return common.ErrIdentityTokenInUse
			case err != nil && !errors.Is(err, common.ErrorNotFound):
				return fmt.Errorf("load identity: %w", err)
			}
		}

		p.IsVerified = true
		p.IdentityToken = append([]byte(nil), identityToken...)
		p.VerifiedAt = s.now
		if err := s.tx.PutProfile(ctx, p); err != nil {
			return fmt.Errorf("store profile: %w", err)
		}
		if e.policy.RequireUniqueIdentity {
			if err := s.tx.PutIdentityOwner(ctx, digest[:], account); err != nil {
				return fmt.Errorf("store identity: %w", err)
			}
		}

		s.g.TotalUsers++
		s.emit(models.EventUserVerified, account, nil, nil, map[string]string{
			"identity": cryptox.Fingerprint(identityToken),
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return lastEvent(events), nil
}
