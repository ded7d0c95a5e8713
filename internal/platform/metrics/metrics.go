// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics exposes Prometheus instrumentation for the API.

Collectors are registered once on the default registry and scraped through
[Handler] at /metrics. Route labels use chi route patterns ("/api/v1/books/{id}")
rather than raw paths so that label cardinality stays bounded.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts finished requests by method, route and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookwise_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookwise_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// MutationsTotal counts committed entity mutations.
	MutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookwise_mutations_total",
			Help: "Total number of committed entity mutations",
		},
		[]string{"entity", "operation"},
	)

	// ReadOnlyRejections counts mutations refused by the read-only gate.
	ReadOnlyRejections = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookwise_read_only_rejections_total",
			Help: "Total number of mutations rejected while in read-only mode",
		},
	)
)

// RecordMutation increments the mutation counter for entity and operation.
func RecordMutation(entity, operation string) {
	MutationsTotal.WithLabelValues(entity, operation).Inc()
}

// Handler serves the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (recorder *statusRecorder) WriteHeader(code int) {
	recorder.status = code
	recorder.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and latency.
//
// The route pattern is read after the handler runs, once chi has finished
// matching. Unmatched requests are labelled "unmatched".
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		startTime := time.Now()
		recorder := &statusRecorder{ResponseWriter: writer, status: http.StatusOK}

		next.ServeHTTP(recorder, request)

		route := "unmatched"
		if routeContext := chi.RouteContext(request.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		HTTPRequestsTotal.WithLabelValues(request.Method, route, strconv.Itoa(recorder.status)).Inc()
		HTTPRequestDuration.WithLabelValues(request.Method, route).Observe(time.Since(startTime).Seconds())
	})
}
