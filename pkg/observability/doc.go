/*
Package observability turns router lifecycle events and generation calls into
Prometheus metrics and structured log records.

Metrics owns its registry so several instances can coexist in tests. Wire it by
merging Metrics.Hooks into the router's lifecycle hooks and wrapping the
generator with Metrics.InstrumentGenerator; expose Metrics.Handler on /metrics.
*/
package observability
