package identity

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultValid   = "valid"
	resultInvalid = "invalid"
	resultAbsent  = "absent"
)

// tokensTotal counts requests by token verification result.
var tokensTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "yatube_identity_tokens_total",
		Help: "Requests by token verification result",
	},
	[]string{"result"}, // valid | invalid | absent
)

func recordToken(result string) {
	tokensTotal.WithLabelValues(result).Inc()
}
