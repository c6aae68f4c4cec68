package telemetry

import (
	"context"
	"maps"
	"slices"

	"github.com/grafana/pyroscope-go"
)

// Profiling label keys
const (
	ProfilingLabelController = "controller"
	ProfilingLabelRoute      = "route"
	ProfilingLabelMethod     = "method"
)

// MaxLabelValueLength caps label values so a bad route cannot blow up profile storage
const MaxLabelValueLength = 128

// highCardinalityLabels are never attached to profiles
var highCardinalityLabels = map[string]bool{
	"user_id":     true,
	"request_id":  true,
	"trace_id":    true,
	"span_id":     true,
	"contact_id":  true,
	"delivery_id": true,
}

// WithProfilingLabels runs fn with Pyroscope labels attached to its goroutine.
// Empty, oversized or high-cardinality labels are dropped or truncated; fn
// runs unlabeled when nothing is left.
func WithProfilingLabels(ctx context.Context, labels map[string]string, fn func(context.Context)) {
	pairs := sanitizeLabels(labels)
	if len(pairs) == 0 {
		fn(ctx)
		return
	}
	pyroscope.TagWrapper(ctx, pyroscope.Labels(pairs...), fn)
}

// sanitizeLabels returns key/value pairs sorted by key
func sanitizeLabels(labels map[string]string) []string {
	if len(labels) == 0 {
		return nil
	}
	pairs := make([]string, 0, len(labels)*2)
	for _, key := range slices.Sorted(maps.Keys(labels)) {
		value := labels[key]
		if key == "" || value == "" || highCardinalityLabels[key] {
			continue
		}
		if len(value) > MaxLabelValueLength {
			value = value[:MaxLabelValueLength]
		}
		pairs = append(pairs, key, value)
	}
	return pairs
}
