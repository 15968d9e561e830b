package metrics

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedMetric struct {
	kind  string
	name  string
	value float64
	tags  map[string]string
}

type recordingSink struct {
	mu      sync.Mutex
	metrics []recordedMetric
}

func (s *recordingSink) Count(name string, value int64, tags map[string]string) {
	s.record("count", name, float64(value), tags)
}

func (s *recordingSink) Gauge(name string, value float64, tags map[string]string) {
	s.record("gauge", name, value, tags)
}

func (s *recordingSink) Timing(name string, value time.Duration, tags map[string]string) {
	s.record("timing", name, float64(value.Milliseconds()), tags)
}

func (s *recordingSink) record(kind, name string, value float64, tags map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = append(s.metrics, recordedMetric{kind: kind, name: name, value: value, tags: tags})
}

type gateError struct{}

func (gateError) Error() string { return "gate" }

func TestEmitJobMutation(t *testing.T) {
	sink := &recordingSink{}
	EmitJobMutation(sink, JobMutationMetric{
		Action:   ActionCreate,
		Result:   ResultError,
		Duration: 20 * time.Millisecond,
		Err:      gateError{},
	})

	require.Len(t, sink.metrics, 2)
	assert.Equal(t, "job.mutation", sink.metrics[0].name)
	assert.Equal(t, "create", sink.metrics[0].tags["action"])
	assert.Equal(t, "metrics_gateerror", sink.metrics[0].tags["error_class"])
	assert.Equal(t, "job.mutation.duration", sink.metrics[1].name)
	assert.InDelta(t, 20, sink.metrics[1].value, 0.001)
}

func TestEmitJobMutation_NilSink(t *testing.T) {
	assert.NotPanics(t, func() {
		EmitJobMutation(nil, JobMutationMetric{Action: ActionDelete, Result: ResultSuccess})
		EmitCreditExhausted(nil, true)
		EmitMatching(nil, MatchingMetric{})
	})
}

func TestEmitCreditExhausted(t *testing.T) {
	sink := &recordingSink{}
	EmitCreditExhausted(sink, true)
	EmitCreditExhausted(sink, false)

	require.Len(t, sink.metrics, 2)
	assert.Equal(t, "expired", sink.metrics[0].tags["reason"])
	assert.Equal(t, "insufficient", sink.metrics[1].tags["reason"])
}

func TestEmitMatching(t *testing.T) {
	sink := &recordingSink{}
	EmitMatching(sink, MatchingMetric{CacheHit: true, Candidates: 7, Duration: time.Millisecond})
	EmitMatching(sink, MatchingMetric{Err: errors.New("db down"), Duration: time.Millisecond})

	require.Len(t, sink.metrics, 3)
	assert.Equal(t, "matching.duration", sink.metrics[0].name)
	assert.Equal(t, "true", sink.metrics[0].tags["cache"])
	assert.Equal(t, "matching.candidates", sink.metrics[1].name)
	assert.InDelta(t, 7, sink.metrics[1].value, 0.001)
	assert.Equal(t, "error", sink.metrics[2].tags["result"])
}
