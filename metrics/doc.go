// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package metrics exposes request counters and entity gauges in the
Prometheus exposition format.

	reg := metrics.New()
	reg.Gauge("taskpoll_tasks", "Tasks currently stored.", func() float64 {
		return float64(tasks.Len())
	})
	mux.HandleFunc("GET /tasks", reg.Instrument("GET /tasks", handler))
	mux.Handle("GET /metrics", reg)

Requests are labelled with the mux pattern, so /tasks/1 and /tasks/2 share
one series.
*/
package metrics
