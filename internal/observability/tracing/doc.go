// Package tracing wires OpenTelemetry into the HTTP server.
//
// NewProvider builds an SDK tracer provider and Install makes it global
// together with the W3C trace-context propagator. Middleware opens a server
// span per request; the request log reads the trace ID from that span.
//
// No exporter is configured; spans exist for trace-ID correlation and for
// any exporter registered on the provider later.
package tracing
