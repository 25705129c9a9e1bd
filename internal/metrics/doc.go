// Package metrics collects runtime memory snapshots and Prometheus metrics
// about prime enumerations.
package metrics
