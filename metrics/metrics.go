// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"sync"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
	"google.golang.org/protobuf/proto"

	"github.com/danielhkuo/taskpoll/middleware"
)

// RequestsTotal is the name of the per-route request counter.
const RequestsTotal = "taskpoll_http_requests_total"

type requestKey struct {
	method string
	route  string
	code   int
}

type gauge struct {
	name string
	help string
	fn   func() float64
}

// Registry counts requests by route and status and samples gauges on
// every scrape.
type Registry struct {
	mu       sync.Mutex
	requests map[requestKey]float64
	gauges   []gauge
}

func New() *Registry {
	return &Registry{requests: make(map[requestKey]float64)}
}

// Instrument counts every request served by next under route, which
// should be the mux pattern rather than the raw path.
func (r *Registry) Instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		sw := middleware.NewStatusWriter(w)
		next(sw, req)
		r.Observe(req.Method, route, sw.Status())
	}
}

// Observe adds one request to the counter.
func (r *Registry) Observe(method, route string, code int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests[requestKey{method: method, route: route, code: code}]++
}

// Gauge registers fn to be sampled as a gauge named name.
func (r *Registry) Gauge(name, help string, fn func() float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gauges = append(r.gauges, gauge{name: name, help: help, fn: fn})
}

// Gather returns the current metric families sorted by name.
func (r *Registry) Gather() []*dto.MetricFamily {
	r.mu.Lock()
	keys := make([]requestKey, 0, len(r.requests))
	for k := range r.requests {
		keys = append(keys, k)
	}
	counts := make(map[requestKey]float64, len(r.requests))
	for k, v := range r.requests {
		counts[k] = v
	}
	gauges := make([]gauge, len(r.gauges))
	copy(gauges, r.gauges)
	r.mu.Unlock()

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].route != keys[j].route {
			return keys[i].route < keys[j].route
		}
		if keys[i].method != keys[j].method {
			return keys[i].method < keys[j].method
		}
		return keys[i].code < keys[j].code
	})

	requests := &dto.MetricFamily{
		Name: proto.String(RequestsTotal),
		Help: proto.String("HTTP requests by method, route and status code."),
		Type: dto.MetricType_COUNTER.Enum(),
	}
	for _, k := range keys {
		requests.Metric = append(requests.Metric, &dto.Metric{
			Label: []*dto.LabelPair{
				label("code", strconv.Itoa(k.code)),
				label("method", k.method),
				label("route", k.route),
			},
			Counter: &dto.Counter{Value: proto.Float64(counts[k])},
		})
	}

	families := []*dto.MetricFamily{requests}
	for _, g := range gauges {
		families = append(families, &dto.MetricFamily{
			Name: proto.String(g.name),
			Help: proto.String(g.help),
			Type: dto.MetricType_GAUGE.Enum(),
			Metric: []*dto.Metric{{
				Gauge: &dto.Gauge{Value: proto.Float64(g.fn())},
			}},
		})
	}

	sort.Slice(families, func(i, j int) bool {
		return families[i].GetName() < families[j].GetName()
	})
	return families
}

// ServeHTTP writes the exposition in the format negotiated from Accept.
func (r *Registry) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	format := expfmt.Negotiate(req.Header)
	w.Header().Set("Content-Type", string(format))

	enc := expfmt.NewEncoder(w, format)
	for _, mf := range r.Gather() {
		if len(mf.Metric) == 0 {
			continue
		}
		if err := enc.Encode(mf); err != nil {
			slog.Error("failed to encode metrics", "family", mf.GetName(), "error", err)
			return
		}
	}
	if closer, ok := enc.(expfmt.Closer); ok {
		if err := closer.Close(); err != nil {
			slog.Error("failed to close metrics encoder", "error", err)
		}
	}
}

func label(name, value string) *dto.LabelPair {
	return &dto.LabelPair{Name: proto.String(name), Value: proto.String(value)}
}
