// Package metrics exposes Prometheus collectors for the RPC layer and the
// settlement engine.
package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mmynk/splitledger/internal/calculator"
)

const namespace = "splitledger"

// Metrics holds the collectors registered for one server.
type Metrics struct {
	gatherer prometheus.Gatherer

	rpcTotal           *prometheus.CounterVec
	rpcDuration        *prometheus.HistogramVec
	settlementSize     prometheus.Histogram
	validationFailures *prometheus.CounterVec
}

// New registers the collectors on reg. Passing prometheus.NewRegistry() keeps
// tests isolated from the default registry.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: reg,
		rpcTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "Connect RPCs handled, by procedure and status code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "Connect RPC latency, by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		settlementSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settlement_transfers",
			Help:      "Number of transfers in each computed settlement plan.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "engine_validation_failures_total",
			Help:      "Group snapshots rejected by the balance engine, by offending field.",
		}, []string{"field"}),
	}
	reg.MustRegister(m.rpcTotal, m.rpcDuration, m.settlementSize, m.validationFailures)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Interceptor records call counts and latency for every unary RPC.
func (m *Metrics) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			m.rpcTotal.WithLabelValues(procedure, code).Inc()
			m.rpcDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
			return resp, err
		}
	}
}

// ObserveSettlements records the size of a settlement plan.
func (m *Metrics) ObserveSettlements(n int) {
	if m == nil {
		return
	}
	m.settlementSize.Observe(float64(n))
}

// ObserveValidationFailure counts err if it is an engine validation error.
func (m *Metrics) ObserveValidationFailure(err error) {
	if m == nil {
		return
	}
	var verr *calculator.ValidationError
	if errors.As(err, &verr) {
		m.validationFailures.WithLabelValues(fieldKind(verr.Field)).Inc()
	}
}

// fieldKind strips indexes so "expenses[3].value" becomes "expenses.value",
// keeping label cardinality bounded.
func fieldKind(field string) string {
	out := make([]byte, 0, len(field))
	skip := false
	for i := 0; i < len(field); i++ {
		switch c := field[i]; {
		case c == '[':
			skip = true
		case c == ']':
			skip = false
		case !skip:
			out = append(out, c)
		}
	}
	return string(out)
}
