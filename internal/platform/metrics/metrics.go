// Package metrics holds the domain-level Prometheus collectors of the banking core.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mybanking"

var (
	// AuthorizationDenials counts Authorize calls that failed, by required tier.
	AuthorizationDenials = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "authorization_denials_total",
			Help:      "Number of account operations rejected for insufficient access tier",
		},
		[]string{"required_tier"},
	)

	// TransactionsRecorded counts booked transactions by direction relative to the booking account.
	TransactionsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_recorded_total",
			Help:      "Number of transactions recorded",
		},
		[]string{"direction"},
	)

	// BalanceCacheLookups counts balance cache reads by result (hit, miss, error).
	BalanceCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "balance_cache_lookups_total",
			Help:      "Balance cache lookups by result",
		},
		[]string{"result"},
	)
)
