package metrics

import (
	"runtime"

	"github.com/athapong/richtext/pkg/richtext"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// System metrics
	SystemMemoryUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "richtext_system_memory_bytes",
		Help: "Current system memory usage",
	})

	SystemGoroutines = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "richtext_system_goroutines",
		Help: "Number of goroutines",
	})

	// Renderer metrics
	NodesRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "richtext_nodes_rendered_total",
			Help: "Total number of nodes resolved by the renderer",
		},
		[]string{"node_type"},
	)

	MarksApplied = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "richtext_marks_applied_total",
			Help: "Total number of marks folded over text nodes",
		},
		[]string{"mark_type"},
	)

	Diagnostics = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "richtext_diagnostics_total",
			Help: "Total number of recoverable rendering problems",
		},
		[]string{"kind"},
	)

	// Pipeline metrics
	PipelineQueueLength = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "richtext_pipeline_queue_length",
		Help: "Number of documents waiting to be rendered",
	})

	DocumentsRendered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "richtext_pipeline_documents_rendered_total",
			Help: "Total number of documents rendered by the pipeline",
		},
		[]string{"status"},
	)

	RenderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "richtext_pipeline_render_duration_seconds",
			Help: "Time spent rendering documents in the pipeline",
		},
		[]string{"mode"},
	)
)

// UpdateSystemMetrics updates system-level metrics
func UpdateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	SystemMemoryUsage.Set(float64(m.Alloc))
	SystemGoroutines.Set(float64(runtime.NumGoroutine()))
}

type observer struct{}

// Observer returns a richtext.Observer feeding the renderer counters.
func Observer() richtext.Observer {
	return observer{}
}

func (observer) ObserveNode(t richtext.NodeType) {
	NodesRendered.WithLabelValues(string(t)).Inc()
}

func (observer) ObserveMark(t richtext.MarkType) {
	MarksApplied.WithLabelValues(string(t)).Inc()
}

func (observer) ObserveDiagnostic(d richtext.Diagnostic) {
	Diagnostics.WithLabelValues(string(d.Kind)).Inc()
}
