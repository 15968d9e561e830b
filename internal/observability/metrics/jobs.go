// Package metrics emits the marketplace's StatsD metrics with consistent names and tags.
package metrics

import (
	"maps"
	"strconv"
	"time"

	obserrors "github.com/target/jobmarket-api/internal/observability/errors"
	"github.com/target/jobmarket-api/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSuccess  = "success"
	ResultError    = "error"
	ResultRejected = "rejected"
)

// Job mutation actions.
const (
	ActionCreate             = "create"
	ActionUpdate             = "update"
	ActionDelete             = "delete"
	ActionChangeStatus       = "change_status"
	ActionChangeVerification = "change_verification"
)

// JobMutationMetric captures one job write for metric emission.
type JobMutationMetric struct {
	Action   string
	Result   string
	Duration time.Duration
	Err      error
}

// EmitJobMutation emits the job.mutation counter and its duration.
func EmitJobMutation(sink statsd.Sink, in JobMutationMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"action": in.Action,
		"result": in.Result,
	}
	if in.Err != nil && in.Result == ResultError {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count("job.mutation", 1, tags)
	if in.Duration > 0 {
		sink.Timing("job.mutation.duration", in.Duration, CloneTags(tags))
	}
}

// EmitCreditExhausted counts a job creation refused by the ledger gate.
func EmitCreditExhausted(sink statsd.Sink, expired bool) {
	if sink == nil {
		return
	}
	reason := "insufficient"
	if expired {
		reason = "expired"
	}
	sink.Count("credit.exhausted", 1, map[string]string{"reason": reason})
}

// MatchingMetric captures one recommendation request.
type MatchingMetric struct {
	CacheHit   bool
	Candidates int
	Duration   time.Duration
	Err        error
}

// EmitMatching emits matching.duration and the size of the returned list.
func EmitMatching(sink statsd.Sink, in MatchingMetric) {
	if sink == nil {
		return
	}
	result := ResultSuccess
	if in.Err != nil {
		result = ResultError
	}
	tags := map[string]string{
		"cache":  strconv.FormatBool(in.CacheHit),
		"result": result,
	}
	sink.Timing("matching.duration", in.Duration, tags)
	if in.Err == nil {
		sink.Gauge("matching.candidates", float64(in.Candidates), CloneTags(tags))
	}
}

// CloneTags creates a shallow copy of a tag map.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	return maps.Clone(src)
}
