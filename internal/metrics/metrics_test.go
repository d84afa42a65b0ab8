package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollector_RecordsByLabel(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordWebhookEvent("user.created", OutcomeSuccess)
	c.RecordWebhookEvent("user.created", OutcomeSuccess)
	c.RecordWebhookEvent("user.deleted", OutcomeError)
	c.RecordProfileOperation("create", OutcomeRejected)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.webhookEvents.WithLabelValues("user.created", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.webhookEvents.WithLabelValues("user.deleted", OutcomeError)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.profileOperations.WithLabelValues("create", OutcomeRejected)))
}

func TestCollector_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)

	assert.Panics(t, func() { NewCollector(reg) })
}

func TestNop_SatisfiesRecorder(t *testing.T) {
	var r Recorder = Nop{}
	r.RecordWebhookEvent("user.created", OutcomeSuccess)
	r.RecordProfileOperation("create", OutcomeSuccess)
}
