// Package observability groups the cross-cutting instrumentation shared by
// the HTTP server and the admin tool.
//
// Subpackages:
//   - logging: slog construction and request-scoped loggers
//   - tracing: OpenTelemetry provider setup and the request span middleware
//
// Prometheus collectors live next to the code they measure and are exposed
// on /metrics by the HTTP router.
package observability
