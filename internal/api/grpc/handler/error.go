package handler

import (
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/status"

	"github.com/dtroode/nox-iam/internal/apperror"
)

const errorDomain = "iam.nox"

// handleError converts a service error into a gRPC status. Errors outside the
// apperror taxonomy become a generic internal error. The stable error code is
// attached as ErrorInfo.Reason.
func handleError(err error) error {
	if _, ok := status.FromError(err); ok {
		return err
	}

	appErr := apperror.From(err)
	st := status.New(appErr.GRPCCode(), appErr.Message)

	detailed, detailErr := st.WithDetails(&errdetails.ErrorInfo{
		Reason: appErr.Code,
		Domain: errorDomain,
	})
	if detailErr != nil {
		return st.Err()
	}
	return detailed.Err()
}
