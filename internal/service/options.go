package service

import (
	"context"
	"time"

	"github.com/Eursukkul/roomescape-service/internal/metrics"
	"github.com/Eursukkul/roomescape-service/internal/repository"
)

// EventPublisher sends domain events to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Stores groups the repositories the reservation services share.
type Stores struct {
	Tx           repository.TxManager
	Members      repository.MemberRepository
	Times        repository.TimeRepository
	Themes       repository.ThemeRepository
	Details      repository.DetailRepository
	Reservations repository.ReservationRepository
	Waitings     repository.WaitingRepository
}

// CacheInvalidator drops cached results that a write made stale.
type CacheInvalidator interface {
	Clear(ctx context.Context) error
}

type settings struct {
	publisher EventPublisher
	rankings  CacheInvalidator
	metrics   *metrics.Metrics
	now       func() time.Time
	loc       *time.Location
}

type Option func(*settings)

func WithPublisher(p EventPublisher) Option {
	return func(s *settings) { s.publisher = p }
}

// WithRankingInvalidator clears the ranking cache after reservations change.
func WithRankingInvalidator(c CacheInvalidator) Option {
	return func(s *settings) { s.rankings = c }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithLocation sets the zone "today" is computed in.
func WithLocation(loc *time.Location) Option {
	return func(s *settings) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{now: time.Now, loc: time.Local}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// today returns the current date at UTC midnight, the form dates are stored in.
func (s settings) today() time.Time {
	y, m, d := s.now().In(s.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
