package service

import (
	"context"
	"errors"

	"github.com/persistorai/borderroute/internal/metrics"
	"github.com/persistorai/borderroute/internal/models"
	"github.com/persistorai/borderroute/internal/resolver"
)

// instrument counts every lookup made through r by mode and result.
func instrument(mode string, r resolver.Resolver) resolver.Resolver {
	return resolver.Func(func(ctx context.Context, id models.NodeID) ([]models.NodeID, error) {
		neighbours, err := r.Resolve(ctx, id)

		result := "ok"
		switch {
		case err == nil:
		case errors.Is(err, models.ErrUnknownNode):
			result = "unknown"
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			result = "canceled"
		default:
			result = "error"
		}

		metrics.LookupsTotal.WithLabelValues(mode, result).Inc()

		return neighbours, err
	})
}
