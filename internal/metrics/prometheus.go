package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "dnf"

type Prometheus struct {
	Epochs     *prometheus.CounterVec
	Incorrect  *prometheus.GaugeVec
	UnitMisses *prometheus.GaugeVec
}

func NewPrometheusMetrics() Prometheus {
	return Prometheus{
		Epochs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "epochs",
				Help:      "number of completed training epochs",
			}, []string{"run"}),
		Incorrect: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "incorrect",
				Help:      "network mismatches of the last epoch",
			}, []string{"run"}),
		UnitMisses: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "unit_misses",
				Help:      "unit mismatches of the last epoch",
			}, []string{"run", "unit"}),
	}
}

// Collectors returns all the metric collectors.
func (p Prometheus) Collectors() []prometheus.Collector {
	return []prometheus.Collector{p.Epochs, p.Incorrect, p.UnitMisses}
}
