// internal/core/services/options.go
package services

import (
	"time"

	"github.com/google/uuid"
)

// Option configures the clock and id source of catalog, ledger and service
type Option func(*options)

type options struct {
	now         func() time.Time
	newID       func() string
	saveTimeout time.Duration
}

// WithClock overrides the time source used to stamp records and sessions
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithIDGenerator overrides the generator used for product and session ids
func WithIDGenerator(newID func() string) Option {
	return func(o *options) {
		if newID != nil {
			o.newID = newID
		}
	}
}

// WithSaveTimeout bounds each snapshot write. Writes outlive the caller's cancellation.
func WithSaveTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.saveTimeout = d
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
