package sale

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/murkotick/catalog-sale-console/internal/app/sale/domain"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		err  error
		want codes.Code
	}{
		{context.Canceled, codes.Canceled},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{domain.ErrPresetNotFound, codes.NotFound},
		{domain.ErrEmptyPresetName, codes.InvalidArgument},
		{domain.ErrInvalidPercentOff, codes.InvalidArgument},
		{fmt.Errorf("wrapped: %w", domain.ErrInvalidPresetFormat), codes.InvalidArgument},
		{domain.ErrBulkInProgress, codes.FailedPrecondition},
		{domain.ErrNothingToConfirm, codes.FailedPrecondition},
		{fmt.Errorf("%w: %w", domain.ErrBulkUpdateFailed, domain.ErrCatalogTransport), codes.Aborted},
		{domain.ErrCatalogTransport, codes.Unavailable},
		{errors.New("boom"), codes.Internal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, status.Code(mapError(tc.err)), tc.err.Error())
	}
	assert.NoError(t, mapError(nil))
}
