package services

import "time"

type settings struct {
	now func() time.Time
	loc *time.Location
}

// Option customises a service at construction.
type Option func(*settings)

// WithClock replaces time.Now. Tests use it for deterministic timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithLocation sets the zone used to compute calendar days.
func WithLocation(loc *time.Location) Option {
	return func(s *settings) { s.loc = loc }
}

func newSettings(opts []Option) settings {
	s := settings{now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// stamp returns the current instant as stored: UTC, microsecond precision.
func (s settings) stamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// nextUpdate returns the updatedAt for a mutation following prev. It stays
// strictly after prev even when the clock has not moved.
func (s settings) nextUpdate(prev time.Time) time.Time {
	t := s.stamp()
	if !t.After(prev) {
		t = prev.Add(time.Microsecond)
	}
	return t
}
