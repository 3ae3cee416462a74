// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data
package service

import "time"

// Clock returns the current time. Services read time only through it.
type Clock func() time.Time

// Option configures the services.
type Option func(*Services)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(now Clock) Option {
	return func(s *Services) {
		s.now = now
	}
}
