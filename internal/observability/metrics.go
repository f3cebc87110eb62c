package observability

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

type MetricPoint struct {
	Name   string            `json:"name"`
	Labels map[string]string `json:"labels,omitempty"`
	Value  float64           `json:"value"`
}

type Snapshot struct {
	Counters []MetricPoint `json:"counters"`
	Gauges   []MetricPoint `json:"gauges"`
}

// Registry is a small label-aware counter/gauge store, exposed as JSON on the
// metrics endpoint and renderable in the Prometheus text format.
type Registry struct {
	mu       sync.Mutex
	counters map[string]MetricPoint
	gauges   map[string]MetricPoint
}

var Default = NewRegistry()

func NewRegistry() *Registry {
	return &Registry{
		counters: make(map[string]MetricPoint),
		gauges:   make(map[string]MetricPoint),
	}
}

func (r *Registry) IncCounter(name string, labels map[string]string, delta float64) {
	if delta == 0 {
		return
	}
	key := seriesKey(name, labels)
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.counters[key]
	if !ok {
		p = MetricPoint{Name: name, Labels: copyLabels(labels)}
	}
	p.Value += delta
	r.counters[key] = p
}

func (r *Registry) SetGauge(name string, labels map[string]string, value float64) {
	key := seriesKey(name, labels)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gauges[key] = MetricPoint{Name: name, Labels: copyLabels(labels), Value: value}
}

func (r *Registry) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := Snapshot{
		Counters: collect(r.counters),
		Gauges:   collect(r.gauges),
	}
	return snap
}

func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters = make(map[string]MetricPoint)
	r.gauges = make(map[string]MetricPoint)
}

func (r *Registry) RenderPrometheus() string {
	snap := r.Snapshot()
	lines := make([]string, 0, len(snap.Counters)+len(snap.Gauges))
	for _, p := range append(snap.Counters, snap.Gauges...) {
		lines = append(lines, promLine(p))
	}
	sort.Strings(lines)
	return strings.Join(lines, "\n") + "\n"
}

func collect(series map[string]MetricPoint) []MetricPoint {
	out := make([]MetricPoint, 0, len(series))
	for _, p := range series {
		out = append(out, MetricPoint{Name: p.Name, Labels: copyLabels(p.Labels), Value: p.Value})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return seriesKey(out[i].Name, out[i].Labels) < seriesKey(out[j].Name, out[j].Labels)
	})
	return out
}

func seriesKey(name string, labels map[string]string) string {
	if len(labels) == 0 {
		return name
	}
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteString(name)
	for _, k := range keys {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(labels[k])
	}
	return b.String()
}

func copyLabels(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func promLine(p MetricPoint) string {
	name := sanitizeName(p.Name)
	value := strconv.FormatFloat(p.Value, 'f', -1, 64)
	if len(p.Labels) == 0 {
		return name + " " + value
	}
	keys := make([]string, 0, len(p.Labels))
	for k := range p.Labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%q", sanitizeName(k), p.Labels[k]))
	}
	return fmt.Sprintf("%s{%s} %s", name, strings.Join(pairs, ","), value)
}

func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "dynamicdo_metric"
	}
	out := make([]rune, 0, len(name))
	for i, r := range name {
		ok := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_' || (r >= '0' && r <= '9' && i > 0)
		if ok {
			out = append(out, r)
		} else {
			out = append(out, '_')
		}
	}
	return string(out)
}
