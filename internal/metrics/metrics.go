// Package metrics exposes training progress as prometheus metrics.
package metrics

import (
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/drakos74/dnf-net/internal/train"
)

var Observer = NewMetrics()

func init() {
	prometheus.MustRegister(Observer.prometheus.Collectors()...)
}

// Metrics tracks the epochs of training runs.
type Metrics struct {
	mutex      *sync.RWMutex
	prometheus Prometheus
	epochs     map[string]int
}

// NewMetrics creates a new unregistered metrics observer.
func NewMetrics() *Metrics {
	return &Metrics{
		mutex:      new(sync.RWMutex),
		prometheus: NewPrometheusMetrics(),
		epochs:     make(map[string]int),
	}
}

// Register registers the metrics collectors to the given registerer.
func (m *Metrics) Register(r prometheus.Registerer) error {
	for _, c := range m.prometheus.Collectors() {
		if err := r.Register(c); err != nil {
			return fmt.Errorf("could not register collector: %w", err)
		}
	}
	return nil
}

// Observe records the results of an epoch for the given run.
func (m *Metrics) Observe(run string, epoch train.Epoch) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.epochs[run]++
	m.prometheus.Epochs.WithLabelValues(run).Inc()
	m.prometheus.Incorrect.WithLabelValues(run).Set(float64(epoch.Incorrect))
	for u, misses := range epoch.UnitMisses {
		m.prometheus.UnitMisses.WithLabelValues(run, strconv.Itoa(u)).Set(float64(misses))
	}
}

// Epochs returns the number of epochs observed for the run.
func (m *Metrics) Epochs(run string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.epochs[run]
}

// Serve exposes the default registry on the given port.
func Serve(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		err := http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
		if err != nil {
			log.Error().Err(err).Int("port", port).Msg("metrics server stopped")
		}
	}()
}
