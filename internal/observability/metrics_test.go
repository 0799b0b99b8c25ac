package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_LLMCalls(t *testing.T) {
	m := MustNewMetrics(prometheus.NewRegistry())

	m.ObserveLLMCall("chat", OutcomeOK, 200*time.Millisecond)
	m.ObserveLLMCall("chat", OutcomeOK, 300*time.Millisecond)
	m.ObserveLLMCall("alignment", OutcomeInvalid, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.llmCalls.WithLabelValues("chat", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.llmCalls.WithLabelValues("alignment", OutcomeInvalid)))
}

func TestMetrics_HTTPInFlight(t *testing.T) {
	m := MustNewMetrics(prometheus.NewRegistry())

	done := m.HTTPStarted()
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpInFlight))
	done()
	assert.Equal(t, 0.0, testutil.ToFloat64(m.httpInFlight))

	m.ObserveHTTPRequest("GET", "/health", "200", time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/health", "200")))
}

func TestMetrics_ReuseRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := MustNewMetrics(reg)
	second := MustNewMetrics(reg)

	first.IncChatTurnRejected()
	second.IncChatTurnRejected()

	assert.Equal(t, 2.0, testutil.ToFloat64(first.chatTurnRejected))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveLLMCall("chat", OutcomeOK, time.Second)
		m.ObserveHTTPRequest("GET", "/", "200", time.Second)
		m.HTTPStarted()()
		m.IncChatTurnRejected()
		m.IncPDFExport(OutcomeOK)
	})
}
