package sale

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/murkotick/catalog-sale-console/internal/app/sale/domain"
)

// mapError translates domain sentinel errors into gRPC status codes.
// Unknown errors become codes.Internal.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	// Aggregate bulk failure wraps the per-item errors, so it goes first.
	if errors.Is(err, domain.ErrBulkUpdateFailed) {
		return status.Error(codes.Aborted, err.Error())
	}

	if errors.Is(err, domain.ErrPresetNotFound) || errors.Is(err, domain.ErrItemNotFound) {
		return status.Error(codes.NotFound, err.Error())
	}

	if domain.IsValidation(err) || domain.IsFormat(err) {
		return status.Error(codes.InvalidArgument, err.Error())
	}

	switch {
	case errors.Is(err, domain.ErrBulkInProgress),
		errors.Is(err, domain.ErrNothingToConfirm),
		errors.Is(err, domain.ErrCatalogUserErrors):
		return status.Error(codes.FailedPrecondition, err.Error())
	}

	if errors.Is(err, domain.ErrCatalogTransport) {
		return status.Error(codes.Unavailable, err.Error())
	}

	return status.Error(codes.Internal, err.Error())
}
