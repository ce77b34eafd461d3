// Package otel bridges goStudio engine metrics to OpenTelemetry.
//
// [New] registers one Int64ObservableCounter per engine counter and one
// Int64ObservableGauge per latency bucket, all read from a single
// MetricsSnapshot per collection. Callers own the MeterProvider.
package otel
