package app

import (
	"time"

	"github.com/cfbranks/rankview/pkg/logger"
)

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithClient sets the upstream ranking client.
func WithClient(c Client) Option {
	return func(s *Store) {
		if c != nil {
			s.client = c
		}
	}
}

// WithLogger sets a custom logger for the store.
func WithLogger(l logger.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for season defaults.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithYearsShown sets how many past seasons are offered.
func WithYearsShown(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.yearsShown = n
		}
	}
}

// WithMaxWeek caps the selectable week range.
func WithMaxWeek(max int) Option {
	return func(s *Store) {
		if max > 0 {
			s.maxWeek = max
		}
	}
}
