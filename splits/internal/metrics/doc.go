// Package metrics records board activity in a Prometheus registry and reads
// it back, either from the local registry or from a remote /metrics endpoint.
package metrics
