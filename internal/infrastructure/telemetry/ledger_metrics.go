package telemetry

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/sakhalil42-svg/dedeagalar-sub001/internal/domain/shared"
)

// LedgerMetrics holds the business instruments of the ledger service.
type LedgerMetrics struct {
	cacheLookups      *Counter
	auditChecked      *Gauge
	auditInconsistent *Gauge
	auditDuration     *Histogram
}

// NewLedgerMetrics creates the ledger instruments on meter.
func NewLedgerMetrics(meter metric.Meter) (*LedgerMetrics, error) {
	cacheLookups, err := NewCounter(meter, "query_cache_lookups_total", "Query cache lookups by key family and result", "{lookup}")
	if err != nil {
		return nil, err
	}
	auditChecked, err := NewGauge(meter, "ledger_audit_accounts_checked", "Accounts verified by the last ledger audit", "{account}")
	if err != nil {
		return nil, err
	}
	auditInconsistent, err := NewGauge(meter, "ledger_audit_accounts_inconsistent", "Accounts out of balance in the last ledger audit", "{account}")
	if err != nil {
		return nil, err
	}
	auditDuration, err := NewHistogram(meter, HistogramOpts{
		Name:        "ledger_audit_duration_seconds",
		Description: "Duration of a full ledger audit run",
		Unit:        "s",
		Boundaries:  []float64{0.1, 0.5, 1, 5, 15, 30, 60, 300, 600},
	})
	if err != nil {
		return nil, err
	}
	return &LedgerMetrics{
		cacheLookups:      cacheLookups,
		auditChecked:      auditChecked,
		auditInconsistent: auditInconsistent,
		auditDuration:     auditDuration,
	}, nil
}

// RecordAudit records the outcome of one ledger audit run.
func (m *LedgerMetrics) RecordAudit(ctx context.Context, checked, inconsistent int, elapsed time.Duration) {
	m.auditChecked.Record(ctx, int64(checked))
	m.auditInconsistent.Record(ctx, int64(inconsistent))
	m.auditDuration.RecordDuration(ctx, elapsed)
}

// InstrumentCache wraps c so that every lookup is counted as a hit or a miss.
// A nil cache stays nil, keeping caching disabled.
func (m *LedgerMetrics) InstrumentCache(c shared.QueryCache) shared.QueryCache {
	if c == nil {
		return nil
	}
	return &instrumentedCache{QueryCache: c, lookups: m.cacheLookups}
}

type instrumentedCache struct {
	shared.QueryCache
	lookups *Counter
}

func (c *instrumentedCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	hit, err := c.QueryCache.Get(ctx, key, dest)
	result := "miss"
	switch {
	case err != nil:
		result = "error"
	case hit:
		result = "hit"
	}
	c.lookups.Inc(ctx,
		attribute.String("cache.family", keyFamily(key)),
		attribute.String("cache.result", result))
	return hit, err
}

// keyFamily returns the logical query family of a cache key, e.g. "ledger"
// for "ledger:<contact id>".
func keyFamily(key string) string {
	if i := strings.IndexByte(key, ':'); i > 0 {
		return key[:i]
	}
	return key
}
