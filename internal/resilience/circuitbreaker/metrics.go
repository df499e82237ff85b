package circuitbreaker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StateGauge is 0 when closed, 1 when half-open and 2 when open.
	StateGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "yatube_circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	// RejectedTotal counts calls refused without reaching the database.
	RejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yatube_circuit_breaker_rejected_total",
			Help: "Calls rejected by an open or saturated half-open circuit breaker",
		},
		[]string{"name"},
	)
)
