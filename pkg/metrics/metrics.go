package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics коллекторы прометея для бота
type Metrics struct {
	BookingsCreated  *prometheus.CounterVec
	SlotQueries      *prometheus.CounterVec
	CalendarDuration *prometheus.HistogramVec
	CalendarErrors   *prometheus.CounterVec
	ActiveSessions   prometheus.Gauge
}

// New регистрирует коллекторы в глобальном реестре
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		BookingsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Number of calendar events created by the bot",
			ConstLabels: constLabels,
		}, []string{"commune", "visit_type"}),

		SlotQueries: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_queries_total",
			Help:        "Number of free-slot computations",
			ConstLabels: constLabels,
		}, []string{"commune", "visit_type"}),

		CalendarDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "calendar_api_duration_seconds",
			Help:        "Latency of Google Calendar API calls",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),

		CalendarErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_api_errors_total",
			Help:        "Number of failed Google Calendar API calls",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "active_sessions",
			Help:        "Number of booking conversations currently in progress",
			ConstLabels: constLabels,
		}),
	}
}

// IncSlotQuery учитывает один расчет свободных слотов
func (m *Metrics) IncSlotQuery(commune, visitType string) {
	m.SlotQueries.WithLabelValues(commune, visitType).Inc()
}

// IncBookingCreated учитывает одну созданную запись
func (m *Metrics) IncBookingCreated(commune, visitType string) {
	m.BookingsCreated.WithLabelValues(commune, visitType).Inc()
}

// SetActiveSessions выставляет число активных диалогов
func (m *Metrics) SetActiveSessions(count int) {
	m.ActiveSessions.Set(float64(count))
}

// ObserveCalendarCall записывает длительность вызова Calendar API
func (m *Metrics) ObserveCalendarCall(operation string, seconds float64) {
	m.CalendarDuration.WithLabelValues(operation).Observe(seconds)
}

// IncCalendarError учитывает неуспешный вызов Calendar API
func (m *Metrics) IncCalendarError(operation string) {
	m.CalendarErrors.WithLabelValues(operation).Inc()
}
