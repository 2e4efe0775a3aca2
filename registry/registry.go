// Package registry owns the process-wide state shared by every constant:
// the creation-order sequence and the definition metrics.
//
// A Registry is created once, at process start, and never reset. Tests that
// need isolated counters build their own with New and pass it explicitly.
//
// Metrics are not registered anywhere by default. Embedding applications
// call Register with their own prometheus.Registerer; the candv CLI prints
// them with "check --metrics".
package registry

import (
	"log/slog"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry hands out creation-order tokens and records container definitions.
type Registry struct {
	next   atomic.Uint64
	logger *slog.Logger

	constantsCreated   prometheus.Counter
	containersDefined  prometheus.Counter
	definitionFailures *prometheus.CounterVec
}

// New creates a registry. A nil logger falls back to slog.Default().
func New(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger: logger,
		constantsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "candv_constants_created_total",
			Help: "Total constants created",
		}),
		containersDefined: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "candv_containers_defined_total",
			Help: "Total containers and groups finalized",
		}),
		definitionFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "candv_definition_failures_total",
			Help: "Total container definitions rejected by kind",
		}, []string{"kind"}),
	}
}

// NextOrder returns a fresh creation-order token.
// Tokens are strictly increasing and never repeat for the life of the registry.
func (r *Registry) NextOrder() uint64 {
	r.constantsCreated.Inc()
	return r.next.Add(1) - 1
}

// Peek returns the token the next call to NextOrder will hand out.
func (r *Registry) Peek() uint64 {
	return r.next.Load()
}

// Logger returns the registry logger.
func (r *Registry) Logger() *slog.Logger {
	return r.logger
}

// ContainerDefined records a finalized container or group.
func (r *Registry) ContainerDefined(fullName string, members int) {
	r.containersDefined.Inc()
	r.logger.Debug("Finalized constants container",
		slog.String("container", fullName),
		slog.Int("members", members))
}

// DefinitionFailed records a rejected definition.
// The error itself is returned to the caller, so nothing is logged here.
func (r *Registry) DefinitionFailed(kind string) {
	r.definitionFailures.WithLabelValues(kind).Inc()
}

// Collectors returns the registry metrics.
func (r *Registry) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		r.constantsCreated,
		r.containersDefined,
		r.definitionFailures,
	}
}

// Register adds the registry metrics to reg.
func (r *Registry) Register(reg prometheus.Registerer) error {
	for _, c := range r.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
