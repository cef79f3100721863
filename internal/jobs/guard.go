// SPDX-License-Identifier: MIT

package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/ManuGH/sportsguide/internal/canvas"
	"github.com/ManuGH/sportsguide/internal/resilience"
)

// Default breaker settings for the provider fetch.
const (
	GuardThreshold    = 3
	GuardResetTimeout = 5 * time.Minute
)

type guardedFetcher struct {
	next CanvasFetcher
	cb   *resilience.CircuitBreaker
}

// Guard wraps next so that repeated upstream failures stop hitting the
// provider until the breaker's reset timeout has passed. A rejected call
// returns resilience.ErrCircuitOpen.
func Guard(next CanvasFetcher, cb *resilience.CircuitBreaker) CanvasFetcher {
	if next == nil || cb == nil {
		return next
	}
	return &guardedFetcher{next: next, cb: cb}
}

// NewBreaker returns the breaker used for the provider fetch. Cancelled
// calls are not counted as failures.
func NewBreaker() *resilience.CircuitBreaker {
	return resilience.NewCircuitBreaker("canvas", GuardThreshold, GuardResetTimeout,
		resilience.WithFailureFilter(func(err error) bool {
			return !errors.Is(err, context.Canceled)
		}))
}

func (g *guardedFetcher) ChannelCanvas(ctx context.Context) (*canvas.Canvas, error) {
	var out *canvas.Canvas
	err := g.cb.Execute(func() error {
		c, err := g.next.ChannelCanvas(ctx)
		out = c
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
