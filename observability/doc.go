// Package observability exports search metrics to Prometheus.
//
//	reg := prometheus.NewRegistry()
//	mc := observability.NewPrometheusCollector(reg, "gsfs")
//	sel, _ := gsfs.New(features, gsfs.WithMetricsCollector(mc))
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
package observability
