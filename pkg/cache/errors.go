package cache

import (
	"context"
	stderrors "errors"
	"net"
	"time"

	"github.com/matzehuels/graphdraw/pkg/errors"
)

// Reconnect policy for shared backends.
var (
	retryAttempts = 3
	retryDelay    = time.Second
)

// unavailable marks err as a backend outage. The server answers such errors
// with 503.
func unavailable(backend string, err error) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(errors.ErrCodeUnavailable, err, "%s cache unavailable", backend)
}

// IsUnavailable reports whether err comes from a backend that could not be
// reached.
func IsUnavailable(err error) bool {
	return errors.Is(err, errors.ErrCodeUnavailable)
}

// transient reports whether err is a network failure worth retrying.
func transient(err error) bool {
	var netErr net.Error
	return stderrors.As(err, &netErr)
}

// withRetry calls fn until it succeeds or returns a non-transient error,
// at most retryAttempts times, doubling the delay between calls.
func withRetry(ctx context.Context, fn func() error) error {
	delay := retryDelay
	var err error
	for i := 0; i < retryAttempts; i++ {
		if err = fn(); err == nil || !transient(err) {
			return err
		}
		if i == retryAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}
