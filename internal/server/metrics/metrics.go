// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled HTTP requests by route and outcome
	// ("ok", "client_error", "denied", "error").
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "t2auth",
		Name:      "http_requests_total",
		Help:      "HTTP requests handled, by route and outcome.",
	}, []string{"route", "outcome"})

	// RPCCalls counts served RPC procedures by name and outcome.
	RPCCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "t2auth",
		Name:      "rpc_calls_total",
		Help:      "RPC procedure calls served, by procedure and outcome.",
	}, []string{"procedure", "outcome"})

	// CredentialsCreated counts successfully created credentials.
	CredentialsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "t2auth",
		Name:      "credentials_created_total",
		Help:      "Credentials created since process start.",
	})
)
