package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK              = "ok"
	outcomeCacheHit        = "cache_hit"
	outcomeValidationError = "validation_error"
	outcomeTransportError  = "transport_error"
	outcomeDecodeError     = "decode_error"
)

var fetchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "jikan_client",
		Name:      "fetches_total",
		Help:      "Resource fetches by outcome.",
	},
	[]string{"outcome"},
)
