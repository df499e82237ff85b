// Package resilience provides fault tolerance for the service's dependencies.
//
// The only pattern in use is a circuit breaker around the SQL handle: when the
// database keeps failing, requests fail fast with gobreaker.ErrOpenState instead
// of queueing on a dead connection pool. Nothing is retried.
//
// Usage Example:
//
//	guarded := circuitbreaker.NewDB(db, circuitbreaker.DefaultConfig())
//	posts := postgres.NewPostRepo(guarded)
package resilience
