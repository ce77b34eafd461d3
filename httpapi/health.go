package httpapi

import (
	"context"
	"time"
)

// Pinger is a store that reports its own availability and round-trip time.
type Pinger interface {
	Ping(ctx context.Context) (time.Duration, error)
}

// PingHealth returns an Options.Health check that pings each store in order
// and fails on the first error.
func PingHealth(pingers ...Pinger) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		for _, p := range pingers {
			if _, err := p.Ping(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}
