package cluster

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RunWithRetry executes a CLI command, retrying transient failures with
// exponential backoff until it succeeds or maxElapsed passes. The platform
// CLI routinely fails while a scheduler is still coming up, so callers
// polling service state go through this instead of Run.
func RunWithRetry(ctx context.Context, r Runner, maxElapsed time.Duration, args ...string) (string, error) {
	var stdout string

	op := func() error {
		out, _, err := r.Run(ctx, args...)
		if err != nil {
			return err
		}
		stdout = out
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = maxElapsed

	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return "", err
	}

	return stdout, nil
}
