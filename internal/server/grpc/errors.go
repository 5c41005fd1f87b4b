package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/credvault/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// mapError turns service errors into gRPC statuses. Anything unrecognised
// becomes Internal with a generic message.
func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorInvalidUsername):
		return status.Error(codes.InvalidArgument, common.ErrorInvalidUsername.Error())
	case errors.Is(err, common.ErrorInvalidPassword):
		return status.Error(codes.InvalidArgument, common.ErrorInvalidPassword.Error())
	case errors.Is(err, common.ErrorAlreadyExists):
		return status.Error(codes.AlreadyExists, "username taken")
	case errors.Is(err, common.ErrorNotFound):
		return status.Error(codes.NotFound, "no such account")
	case errors.Is(err, common.ErrorUnauthorized):
		return status.Error(codes.Unauthenticated, "unauthorized")
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "timed out")
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "canceled")
	default:
		return status.Error(codes.Internal, "internal error")
	}
}
