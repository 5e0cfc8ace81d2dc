package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"attendeelist/internal/domain"
)

const namespace = "attendeelist"

// Pipeline names, also used in file names and the last_run label.
const (
	PipelineTagFilter = "tagfilter"
	PipelineGuestList = "guestlist"
)

// TextfileRecorder writes run counters in the node_exporter textfile format.
// Each pipeline owns one file, <dir>/attendeelist_<pipeline>.prom, so a run of
// one CLI never clobbers the other's gauges. Each Record call rewrites that file.
type TextfileRecorder struct {
	path     string
	pipeline string
	registry *prometheus.Registry
	now      func() time.Time

	filterEntries *prometheus.GaugeVec
	guests        *prometheus.GaugeVec
	lastRun       *prometheus.GaugeVec
}

// TextfilePath returns the file a pipeline's recorder writes inside dir.
func TextfilePath(dir, pipeline string) string {
	return filepath.Join(dir, namespace+"_"+pipeline+".prom")
}

// NewTextfileRecorder returns a recorder for pipeline writing into dir.
func NewTextfileRecorder(dir, pipeline string) *TextfileRecorder {
	r := &TextfileRecorder{
		path:     TextfilePath(dir, pipeline),
		pipeline: pipeline,
		registry: prometheus.NewRegistry(),
		now:      time.Now,
		filterEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "tagfilter",
			Name:      "entries",
			Help:      "Event entries seen by the last tag filter run, by result.",
		}, []string{"result"}),
		guests: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "guests",
			Help:      "Guests and events handled by the last aggregation run, by result.",
		}, []string{"result"}),
		lastRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time of the last completed run.",
		}, []string{"pipeline"}),
	}
	r.registry.MustRegister(r.filterEntries, r.guests, r.lastRun)
	return r
}

var _ domain.StatsRecorder = (*TextfileRecorder)(nil)

// Path returns the textfile this recorder writes.
func (r *TextfileRecorder) Path() string {
	return r.path
}

// RecordFilter sets the tag filter gauges and rewrites the textfile.
func (r *TextfileRecorder) RecordFilter(s domain.FilterStats) error {
	r.filterEntries.WithLabelValues("total").Set(float64(s.Total))
	r.filterEntries.WithLabelValues("matched").Set(float64(s.Matched))
	r.filterEntries.WithLabelValues("missing_api_id").Set(float64(s.MissingAPIID))
	r.filterEntries.WithLabelValues("collected").Set(float64(s.Collected))
	r.lastRun.WithLabelValues(r.pipeline).Set(float64(r.now().Unix()))
	return r.flush()
}

// RecordAggregate sets the guest aggregation gauges and rewrites the textfile.
func (r *TextfileRecorder) RecordAggregate(s domain.AggregateStats) error {
	r.guests.WithLabelValues("event_ids").Set(float64(s.IDs))
	r.guests.WithLabelValues("failed_event_ids").Set(float64(s.FailedIDs))
	r.guests.WithLabelValues("fetched").Set(float64(s.Fetched))
	r.guests.WithLabelValues("missing_email").Set(float64(s.MissingEmail))
	r.guests.WithLabelValues("duplicate").Set(float64(s.Duplicates))
	r.guests.WithLabelValues("unique").Set(float64(s.Unique))
	r.lastRun.WithLabelValues(r.pipeline).Set(float64(r.now().Unix()))
	return r.flush()
}

func (r *TextfileRecorder) flush() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(r.path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}

// NopRecorder discards run counters when no textfile directory is configured.
type NopRecorder struct{}

// RecordFilter does nothing.
func (NopRecorder) RecordFilter(domain.FilterStats) error { return nil }

// RecordAggregate does nothing.
func (NopRecorder) RecordAggregate(domain.AggregateStats) error { return nil }

// NewRecorder returns a TextfileRecorder for pipeline in dir, or a NopRecorder when dir is empty.
func NewRecorder(dir, pipeline string) domain.StatsRecorder {
	if dir == "" {
		return NopRecorder{}
	}
	return NewTextfileRecorder(dir, pipeline)
}
