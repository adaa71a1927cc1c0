package seed

import (
	"context"
	"time"

	userstore "github.com/goliatone/go-userstore"
)

// Delayed wraps a Source with simulated latency, standing in for the network
// round trip the UI would otherwise wait on. Cancellation policy: a ctx that
// expires during the delay aborts the load with ctx.Err(), so the caller's
// load settles as an error with prior state untouched.
type Delayed struct {
	source userstore.Source
	delay  time.Duration
}

// WithLatency wraps source so every Users call waits for delay first.
func WithLatency(source userstore.Source, delay time.Duration) *Delayed {
	return &Delayed{source: source, delay: delay}
}

// Users implements userstore.Source.
func (d *Delayed) Users(ctx context.Context) ([]userstore.User, error) {
	if d.source == nil {
		return nil, userstore.ErrSourceRequired
	}
	if d.delay > 0 {
		timer := time.NewTimer(d.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return d.source.Users(ctx)
}

// Failing is a Source that always fails, exercising the rejection branch of
// the load lifecycle.
type Failing struct {
	Err error
}

// Users implements userstore.Source.
func (f Failing) Users(_ context.Context) ([]userstore.User, error) {
	return nil, f.Err
}
