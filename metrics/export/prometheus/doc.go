// Package prometheus renders goStudio engine metrics in the Prometheus text
// exposition format.
//
// Counters are named gostudio_*_total. The identify and login latency
// histograms are gostudio_identify_latency_seconds and
// gostudio_login_latency_seconds. The package keeps no registry; callers
// mount [Exporter.Handler] where they want it.
package prometheus
