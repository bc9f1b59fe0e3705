package revision

import (
	"errors"
	"time"

	"catalog-app/internal/domain/catalog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is optional; a nil *Metrics records nothing.
type Metrics struct {
	submissions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	conflicts   prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_revision_submissions_total",
			Help: "Revision submissions by entity kind and outcome",
		}, []string{"kind", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "catalog_revision_submit_duration_seconds",
			Help:    "Time spent in a revision submission including retries",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"kind"}),
		conflicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "catalog_revision_conflicts_total",
			Help: "Transactions that lost the race for a revision number",
		}),
	}
}

func (m *Metrics) observe(kind catalog.Kind, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(string(kind), outcome(err)).Inc()
	m.duration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}

func (m *Metrics) conflict() {
	if m == nil {
		return
	}
	m.conflicts.Inc()
}

func outcome(err error) string {
	var hasRel *HasRelationsError
	var dup *DuplicateEntryError
	var inv *ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrChangePermission):
		return "permission"
	case errors.Is(err, ErrStaleRevision):
		return "stale"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.As(err, &hasRel):
		return "has_relations"
	case errors.As(err, &dup):
		return "duplicate"
	case errors.As(err, &inv):
		return "invalid"
	default:
		return "error"
	}
}
