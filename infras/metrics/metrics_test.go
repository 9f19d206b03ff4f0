package metrics_test

import (
	"testing"

	"roombooking/infras/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := metrics.New("test", prometheus.NewRegistry())

	m.IncOccurrence("accepted")
	m.IncOccurrence("accepted")
	m.IncOccurrence("rejected")
	m.IncConflicts(3)
	m.IncTransition("cancelled", 2)
	m.IncPublished("ok", 5)
	m.SetBacklog(7)
	m.IncExpired(4)
	m.IncPersistenceConflict()

	assert.InDelta(t, 2, testutil.ToFloat64(m.OccurrencesTotal.WithLabelValues("accepted")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.OccurrencesTotal.WithLabelValues("rejected")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(m.ConflictsTotal), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(m.TransitionsTotal.WithLabelValues("cancelled")), 0)
	assert.InDelta(t, 5, testutil.ToFloat64(m.OutboxPublished.WithLabelValues("ok")), 0)
	assert.InDelta(t, 7, testutil.ToFloat64(m.OutboxBacklog), 0)
	assert.InDelta(t, 4, testutil.ToFloat64(m.ExpiredOccurrences), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.PersistenceConflicts), 0)
}

func TestMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		metrics.New("test", prometheus.NewRegistry())
		metrics.New("test", prometheus.NewRegistry())
	})
}
