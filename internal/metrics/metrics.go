package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chainpass/ticketing/internal/domain"
)

const namespace = "chainpass"

// Recorder collects ticketing counters and latencies
type Recorder struct {
	registrations   *prometheus.CounterVec
	reviews         *prometheus.CounterVec
	confirmations   *prometheus.HistogramVec
	scans           *prometheus.CounterVec
	emails          *prometheus.CounterVec
	reconciliations *prometheus.CounterVec
	activeSessions  prometheus.Gauge
}

// NewRecorder registers the ticketing metrics on reg
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		registrations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "registration_requests_total",
				Help:      "Registration submissions by event and outcome",
			},
			[]string{"event_id", "outcome"},
		),
		reviews: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "registration_reviews_total",
				Help:      "Per-item approve and reject outcomes",
			},
			[]string{"action", "result"},
		),
		confirmations: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "ledger_confirmation_seconds",
				Help:      "Time from transfer submission to confirmation",
				Buckets:   prometheus.ExponentialBuckets(0.5, 2, 8),
			},
			[]string{"status"},
		),
		scans: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "checkin_scans_total",
				Help:      "Check-in decisions by status and signature status",
			},
			[]string{"event_id", "status", "signature"},
		),
		emails: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ticket_emails_total",
				Help:      "Ticket email dispatches",
			},
			[]string{"result"},
		),
		reconciliations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "reconciliation_findings_total",
				Help:      "Ownership reconciliation findings",
			},
			[]string{"finding"},
		),
		activeSessions: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "checkin_sessions_active",
				Help:      "Open check-in sessions",
			},
		),
	}
}

// Handler serves the metrics gathered by g
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func (r *Recorder) RegistrationSubmitted(eventID uint64, outcome string) {
	r.registrations.WithLabelValues(strconv.FormatUint(eventID, 10), outcome).Inc()
}

func (r *Recorder) Reviewed(action, result string) {
	r.reviews.WithLabelValues(action, result).Inc()
}

func (r *Recorder) ConfirmationObserved(d time.Duration, err error) {
	status := "confirmed"
	if err != nil {
		status = "failed"
	}
	r.confirmations.WithLabelValues(status).Observe(d.Seconds())
}

func (r *Recorder) Scanned(eventID uint64, status domain.ScanStatus, signature domain.SignatureStatus) {
	r.scans.WithLabelValues(strconv.FormatUint(eventID, 10), string(status), string(signature)).Inc()
}

func (r *Recorder) EmailDispatched(err error) {
	result := "queued"
	if err != nil {
		result = "failed"
	}
	r.emails.WithLabelValues(result).Inc()
}

func (r *Recorder) Reconciled(finding string) {
	r.reconciliations.WithLabelValues(finding).Inc()
}

func (r *Recorder) SessionOpened() {
	r.activeSessions.Inc()
}

func (r *Recorder) SessionClosed() {
	r.activeSessions.Dec()
}
