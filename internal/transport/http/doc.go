// Package http exposes the pipeline results over a small JSON API.
//
// Endpoints:
//
//	GET  /api/report          latest run summary
//	POST /api/report/refresh  force a new pipeline run
//	GET  /api/regions         regions present in the accepted set
//	GET  /healthz             liveness probe
//	GET  /metrics             Prometheus metrics
//
// Errors follow RFC 7807 problem detail shape, matching what the
// middleware chain emits for panics and rate limiting.
package http
