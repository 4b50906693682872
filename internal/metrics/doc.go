// Package metrics records build metrics for wikibook.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default and does nothing; PrometheusRecorder collects stage durations,
// stage results, build outcomes and file counts into a Prometheus registry,
// which the build command can export as a node_exporter textfile:
//
//	reg := prom.NewRegistry()
//	recorder := metrics.NewPrometheusRecorder(reg)
//	// ... run the build with recorder ...
//	err := recorder.WriteTextfile("/var/lib/node_exporter/wikibook.prom")
package metrics
