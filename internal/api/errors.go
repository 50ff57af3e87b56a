package api

import (
	"fmt"

	"github.com/dmitrijs2005/fitmint/internal/common"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"
)

// BusinessError recovers the business failure behind an RPC error from its
// ErrorInfo detail, so callers can match it with errors.Is. Other errors
// are returned unchanged.
func BusinessError(err error) error {
	st, ok := status.FromError(err)
	if !ok || st == nil {
		return err
	}
	for _, d := range st.Details() {
		info, ok := d.(*errdetails.ErrorInfo)
		if !ok || info.GetDomain() != common.ErrorDomain {
			continue
		}
		if target := common.FromReason(info.GetReason()); target != nil {
			return fmt.Errorf("%w (%s)", target, st.Code())
		}
	}
	return err
}
