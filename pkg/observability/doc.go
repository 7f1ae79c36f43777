/*
Package observability provides tools for monitoring the cfrac engine.

Metrics turns engine operation events into Prometheus series, and Chain fans a
single event out to several hook sets (metrics, debug logging, tests).
*/
package observability
