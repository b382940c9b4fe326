package metrics

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"github.com/vsinha/fibercalc/pkg/infrastructure/events"
)

const namespace = "fibercalc"

// Recorder aggregates calculation events into counters and gauges.
type Recorder struct {
	mu                sync.Mutex
	calculations      map[string]float64
	infeasibleSolves  float64
	lastCandidates    float64
	yardsEstimated    float64
	skeinsEstimated   float64
	handledEventTypes map[string]bool
}

// NewRecorder creates a Recorder that accepts every calculation event type.
func NewRecorder() *Recorder {
	handled := make(map[string]bool, len(events.AllEventTypes))
	for _, t := range events.AllEventTypes {
		handled[t] = true
	}
	return &Recorder{
		calculations:      make(map[string]float64),
		handledEventTypes: handled,
	}
}

var _ events.EventHandler = (*Recorder)(nil)

// Attach subscribes the recorder to every calculation event on store.
func (r *Recorder) Attach(store events.EventStore) error {
	return store.Subscribe(events.AllEventTypes, r)
}

func (r *Recorder) CanHandle(eventType string) bool {
	return r.handledEventTypes[eventType]
}

func (r *Recorder) Handle(event events.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calculations[event.Type()]++

	switch data := event.Data().(type) {
	case events.SolveCompleted:
		r.lastCandidates = float64(data.Candidates)
		if !data.Feasible {
			r.infeasibleSolves++
		}
	case events.YardageEstimated:
		r.yardsEstimated += data.Result.BufferedLength
		r.skeinsEstimated += float64(data.Result.SkeinsNeeded)
	}
	return nil
}

// Count returns how many events of eventType were recorded.
func (r *Recorder) Count(eventType string) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calculations[eventType]
}

// Families snapshots the current values as metric families, sorted by name.
func (r *Recorder) Families() []*dto.MetricFamily {
	r.mu.Lock()
	defer r.mu.Unlock()

	eventTypes := make([]string, 0, len(r.calculations))
	for t := range r.calculations {
		eventTypes = append(eventTypes, t)
	}
	sort.Strings(eventTypes)

	calculations := &dto.MetricFamily{
		Name: ptr(namespace + "_calculations_total"),
		Help: ptr("Calculations performed, by outcome event."),
		Type: dto.MetricType_COUNTER.Enum(),
	}
	for _, t := range eventTypes {
		calculations.Metric = append(calculations.Metric, &dto.Metric{
			Label:   []*dto.LabelPair{{Name: ptr("event"), Value: ptr(t)}},
			Counter: &dto.Counter{Value: ptr(r.calculations[t])},
		})
	}

	families := []*dto.MetricFamily{
		calculations,
		counter("infeasible_solves_total", "Solves whose constraints admit no stitch count.", r.infeasibleSolves),
		gauge("last_candidate_count", "Candidates returned by the most recent solve.", r.lastCandidates),
		counter("skeins_estimated_total", "Skeins recommended across all yardage estimates.", r.skeinsEstimated),
		counter("yards_estimated_total", "Buffered yards across all yardage estimates.", r.yardsEstimated),
	}
	sort.Slice(families, func(i, j int) bool { return families[i].GetName() < families[j].GetName() })
	return families
}

// WriteTo writes the text exposition of all families to w.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, mf := range r.Families() {
		n, err := expfmt.MetricFamilyToText(w, mf)
		total += int64(n)
		if err != nil {
			return total, fmt.Errorf("metrics: encode %s: %w", mf.GetName(), err)
		}
	}
	return total, nil
}

// WriteFile replaces path atomically so a collector never reads a partial file.
func (r *Recorder) WriteFile(path string) error {
	var buf bytes.Buffer
	if _, err := r.WriteTo(&buf); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("metrics: create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("metrics: create temp file: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("metrics: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("metrics: close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("metrics: rename: %w", err)
	}
	return nil
}

func counter(name, help string, v float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   ptr(namespace + "_" + name),
		Help:   ptr(help),
		Type:   dto.MetricType_COUNTER.Enum(),
		Metric: []*dto.Metric{{Counter: &dto.Counter{Value: ptr(v)}}},
	}
}

func gauge(name, help string, v float64) *dto.MetricFamily {
	return &dto.MetricFamily{
		Name:   ptr(namespace + "_" + name),
		Help:   ptr(help),
		Type:   dto.MetricType_GAUGE.Enum(),
		Metric: []*dto.Metric{{Gauge: &dto.Gauge{Value: ptr(v)}}},
	}
}

func ptr[T any](v T) *T {
	return &v
}
