// Package metrics counts calculation events and writes them in the
// Prometheus text exposition format, suitable for a node_exporter textfile
// collector. The Recorder subscribes to the event store; nothing here
// listens on a network port.
package metrics
