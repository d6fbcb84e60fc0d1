package config

import (
	"context"
	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"
	"io"
	"time"
)

const dialTries = 5

// dial retries open with exponential backoff until it succeeds or dialTries
// attempts have failed.
func dial[T any](ctx context.Context, name string, open func() (T, error)) (T, error) {
	operation := func() (T, error) {
		v, err := open()
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("backend", name).Msg("connection failed, retrying")
		}
		return v, err
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = 10 * time.Second
	return backoff.Retry(ctx, operation, backoff.WithBackOff(bo), backoff.WithMaxTries(dialTries))
}

// closeOnDone closes c once ctx is cancelled.
func closeOnDone(ctx context.Context, name string, c io.Closer) {
	go func() {
		<-ctx.Done()
		if err := c.Close(); err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("backend", name).Msg("failed to close connection")
			return
		}
		zerolog.Ctx(ctx).Info().Str("backend", name).Msg("connection closed")
	}()
}
