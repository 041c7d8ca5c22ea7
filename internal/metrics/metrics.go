// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "groupledger"

var (
	// RPCRequests counts handled RPCs by procedure and connect code ("ok" on success).
	RPCRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rpc_requests_total",
		Help:      "RPC calls by procedure and result code.",
	}, []string{"procedure", "code"})

	// RPCDuration observes handler latency.
	RPCDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "rpc_duration_seconds",
		Help:      "RPC handler latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure"})

	// Mutations counts coordinator operations by kind and the phase they ended in.
	Mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mutations_total",
		Help:      "Coordinator operations by kind and final phase.",
	}, []string{"operation", "phase"})

	// Compensations counts compensating deletes of half-written expenses.
	Compensations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "compensations_total",
		Help:      "Compensating expense deletions by result.",
	}, []string{"result"})

	// LedgerRebuilds counts full ledger recomputes by reason.
	LedgerRebuilds = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_rebuilds_total",
		Help:      "Full ledger recomputes by reason.",
	}, []string{"reason"})

	// LedgerConsistencyErrors counts cached ledgers that disagreed with a recompute.
	LedgerConsistencyErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ledger_consistency_errors_total",
		Help:      "Cached ledgers found to disagree with a full recompute.",
	})
)
