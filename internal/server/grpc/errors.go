package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/fitmint/internal/common"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var businessCodes = map[error]codes.Code{
	common.ErrAlreadyVerified:         codes.AlreadyExists,
	common.ErrIdentityTokenInUse:      codes.AlreadyExists,
	common.ErrAlreadyJoined:           codes.AlreadyExists,
	common.ErrInvalidIdentityToken:    codes.InvalidArgument,
	common.ErrInvalidHealthData:       codes.InvalidArgument,
	common.ErrGoalsNotMet:             codes.InvalidArgument,
	common.ErrInvalidChallenge:        codes.InvalidArgument,
	common.ErrInvalidAmount:           codes.InvalidArgument,
	common.ErrNotVerified:             codes.FailedPrecondition,
	common.ErrPaused:                  codes.FailedPrecondition,
	common.ErrCooldownNotMet:          codes.FailedPrecondition,
	common.ErrChallengeInactive:       codes.FailedPrecondition,
	common.ErrNotParticipant:          codes.FailedPrecondition,
	common.ErrChallengeNotExpired:     codes.FailedPrecondition,
	common.ErrInsufficientPoolBalance: codes.FailedPrecondition,
	common.ErrChallengeNotFound:       codes.NotFound,
	common.ErrUnauthorized:            codes.PermissionDenied,
}

// toStatus converts an engine error into a gRPC status. Business failures
// carry an ErrorInfo detail with their reason; infrastructure failures are
// reported without internals.
func toStatus(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	if reason, ok := common.Reason(err); ok {
		code := codes.FailedPrecondition
		for target, c := range businessCodes {
			if errors.Is(err, target) {
				code = c
				break
			}
		}
		st := status.New(code, err.Error())
		if detailed, derr := st.WithDetails(&errdetails.ErrorInfo{
			Reason: reason,
			Domain: common.ErrorDomain,
		}); derr == nil {
			st = detailed
		}
		return st.Err()
	}

	switch {
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "not found")
	case errors.Is(err, common.ErrorNotBootstrapped):
		return status.Error(codes.Unavailable, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
