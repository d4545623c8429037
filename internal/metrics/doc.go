// Package metrics provides observability hooks for refman build metrics.
//
// The package implements the Null Object pattern so components never need
// nil checks: everything defaults to NoopRecorder, whose methods inline to
// nothing. Serve mode swaps in the Prometheus implementation and exposes it
// over HTTP.
//
// Components receive a Recorder through dependency injection:
//
//	builder, err := site.NewBuilder(cfg, outDir)
//	...
//	builder.WithRecorder(recorder)
//
// Only swap in NewPrometheusRecorder when a scrape endpoint is actually
// served; one-shot CLI builds keep the noop default.
package metrics
