package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"sigs.k8s.io/moo-optimizer/pkg/multiobjective/algorithms"
)

const (
	namespace = "moo"
	subsystem = "optimizer"
)

// Recorder exports the progress of one optimization run. It owns its registry
// so that several runs in one process do not collide.
type Recorder struct {
	registry *prometheus.Registry

	Generations        prometheus.Counter
	Evaluations        prometheus.Counter
	FrontSize          prometheus.Gauge
	Hypervolume        prometheus.Gauge
	GenerationDuration prometheus.Histogram

	mu              sync.Mutex
	lastEvaluations int
	lastElapsed     time.Duration
}

// NewRecorder creates the collectors of a run, labelled with the problem and
// algorithm names, and registers them together with the Go runtime collector.
func NewRecorder(problem string) *Recorder {
	labels := prometheus.Labels{"problem": problem, "algorithm": algorithms.Name}
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		Generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "generations_total",
			Help:        "Number of completed generations, the initial population included.",
			ConstLabels: labels,
		}),
		Evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "evaluations_total",
			Help:        "Number of objective function evaluations.",
			ConstLabels: labels,
		}),
		FrontSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "pareto_front_size",
			Help:        "Number of nondominated individuals in the current population.",
			ConstLabels: labels,
		}),
		Hypervolume: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "hypervolume",
			Help:        "Hypervolume of the current Pareto front with respect to the configured reference point.",
			ConstLabels: labels,
		}),
		GenerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   namespace,
			Subsystem:   subsystem,
			Name:        "generation_duration_seconds",
			Help:        "Wall time spent producing one generation.",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
	}

	r.registry.MustRegister(
		r.Generations,
		r.Evaluations,
		r.FrontSize,
		r.Hypervolume,
		r.GenerationDuration,
		collectors.NewGoCollector(),
	)
	return r
}

// Registry returns the registry holding the run's collectors.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observe updates the collectors from a generation snapshot. It can be
// registered with algorithms.WithObserver.
func (r *Recorder) Observe(s algorithms.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Generations.Inc()
	if delta := s.Evaluations - r.lastEvaluations; delta > 0 {
		r.Evaluations.Add(float64(delta))
	}
	r.lastEvaluations = s.Evaluations

	r.FrontSize.Set(float64(len(s.ParetoFront)))
	if s.HasHypervolume {
		r.Hypervolume.Set(s.Hypervolume)
	}

	r.GenerationDuration.Observe((s.Elapsed - r.lastElapsed).Seconds())
	r.lastElapsed = s.Elapsed
}

// WriteToTextfile writes the current values in the text exposition format,
// for consumption by the node exporter textfile collector.
func (r *Recorder) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
