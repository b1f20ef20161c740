package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder holds the counters of one run. Each Recorder has its own
// registry so runs and tests never share state.
type Recorder struct {
	registry *prometheus.Registry

	Issues            *prometheus.CounterVec
	Comments          *prometheus.CounterVec
	UnknownSeverities *prometheus.CounterVec
	LocationFailures  prometheus.Counter
	MissingLocations  prometheus.Counter
	Failures          *prometheus.CounterVec
	RenderLatency     *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),

		Issues: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zreview_issues_total",
				Help: "Review issues read, by severity",
			},
			[]string{"severity"},
		),

		Comments: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zreview_comments_total",
				Help: "Zuul inline comments emitted, by level",
			},
			[]string{"level"},
		),

		UnknownSeverities: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zreview_unknown_severity_total",
				Help: "Issues filed under an unrecognized severity key",
			},
			[]string{"severity"},
		),

		LocationFailures: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "zreview_location_parse_failures_total",
				Help: "Issues whose location could not be parsed",
			},
		),

		MissingLocations: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "zreview_issues_without_location_total",
				Help: "Issues that carry no location",
			},
		),

		Failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zreview_failures_total",
				Help: "Pipeline failures, by error kind",
			},
			[]string{"kind"},
		),

		RenderLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "zreview_render_duration_seconds",
				Help:    "Time spent rendering an output",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"renderer"},
		),
	}

	r.registry.MustRegister(
		r.Issues, r.Comments, r.UnknownSeverities,
		r.LocationFailures, r.MissingLocations,
		r.Failures, r.RenderLatency,
	)
	return r
}

// ObserveRender records how long renderer took since start.
func (r *Recorder) ObserveRender(renderer string, start time.Time) {
	r.RenderLatency.WithLabelValues(renderer).Observe(time.Since(start).Seconds())
}

// Registry exposes the recorder's registry for gathering.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes every metric in the Prometheus text format to path,
// as read by the node exporter textfile collector. The file is replaced
// atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
