package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts reservation outcomes. A nil *Metrics records nothing.
type Metrics struct {
	ReservationsCreated   prometheus.Counter
	ReservationsCancelled prometheus.Counter
	Conflicts             *prometheus.CounterVec
	WaitingsCreated       prometheus.Counter
	WaitingsPromoted      prometheus.Counter
	CatalogSynced         *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ReservationsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "roomescape_reservations_created_total",
			Help: "Total number of confirmed reservations created",
		}),
		ReservationsCancelled: f.NewCounter(prometheus.CounterOpts{
			Name: "roomescape_reservations_cancelled_total",
			Help: "Total number of reservations cancelled",
		}),
		Conflicts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "roomescape_conflicts_total",
			Help: "Total number of rejected requests by conflict kind",
		}, []string{"kind"}),
		WaitingsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "roomescape_waitings_created_total",
			Help: "Total number of waiting entries created",
		}),
		WaitingsPromoted: f.NewCounter(prometheus.CounterOpts{
			Name: "roomescape_waitings_promoted_total",
			Help: "Total number of waiting entries promoted to reservations",
		}),
		CatalogSynced: f.NewCounterVec(prometheus.CounterOpts{
			Name: "roomescape_catalog_synced_total",
			Help: "Total number of catalog messages applied by entity",
		}, []string{"entity"}),
	}
}

func (m *Metrics) ReservationCreated() {
	if m != nil {
		m.ReservationsCreated.Inc()
	}
}

func (m *Metrics) ReservationCancelled() {
	if m != nil {
		m.ReservationsCancelled.Inc()
	}
}

func (m *Metrics) Conflict(kind string) {
	if m != nil {
		m.Conflicts.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) WaitingCreated() {
	if m != nil {
		m.WaitingsCreated.Inc()
	}
}

func (m *Metrics) WaitingPromoted() {
	if m != nil {
		m.WaitingsPromoted.Inc()
	}
}

func (m *Metrics) Synced(entity string) {
	if m != nil {
		m.CatalogSynced.WithLabelValues(entity).Inc()
	}
}
