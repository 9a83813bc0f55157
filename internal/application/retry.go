package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/oksasatya/go-devconnector/internal/domain/repository"
	"github.com/oksasatya/go-devconnector/internal/observability/metrics"
)

// maxAttempts bounds the read-modify-write loop over one document.
const maxAttempts = 5

// withRetry runs fn until it stops failing with ErrVersionConflict. fn must
// reload the document on every call so rule checks see fresh state.
func withRetry(ctx context.Context, aggregate string, fn func() error) error {
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err = fn(); !errors.Is(err, repository.ErrVersionConflict) {
			return err
		}
		metrics.VersionConflicts.WithLabelValues(aggregate).Inc()
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
	return fmt.Errorf("%s: gave up after %d attempts: %w", aggregate, maxAttempts, err)
}
