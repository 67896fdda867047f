package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrBackend marks a failed call to a remote cache backend. The pipeline
// logs it and carries on as if the entry were missing.
var ErrBackend = errors.New("cache backend unavailable")

func backendError(op, key string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", ErrBackend, op, key, err)
}

// retry calls fn up to attempts times with a fixed pause between calls and
// returns the last error. It gives up early once ctx is done.
func retry(ctx context.Context, attempts int, pause time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(pause):
		}
	}
	return err
}
