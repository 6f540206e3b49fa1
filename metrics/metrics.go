// Package metrics exports decode outcomes of an abi.Registry to Prometheus
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/xgr-network/xgr-abi/abi"
)

const namespace = "xgr_abi"

const resultOK = "ok"

var _ abi.Observer = (*Metrics)(nil)

// Metrics counts registry decodes by operation and result. The result of a
// failed decode is its error kind.
type Metrics struct {
	decodes *prometheus.CounterVec
	imports *prometheus.CounterVec
}

// NewMetrics creates the collectors without registering them
func NewMetrics() *Metrics {
	return &Metrics{
		decodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decodes_total",
			Help:      "Registry decodes by operation and result",
		}, []string{"op", "result"}),
		imports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sigdb",
			Name:      "signatures_total",
			Help:      "Signatures offered to the signature directory by outcome",
		}, []string{"result"}),
	}
}

// Register adds the collectors to reg
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.decodes, m.imports} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}

	return nil
}

// ObserveDecode implements abi.Observer
func (m *Metrics) ObserveDecode(op string, err error) {
	result := resultOK
	if err != nil {
		result = abi.ErrorKind(err)
	}

	m.decodes.WithLabelValues(op, result).Inc()
}

// ObserveImport records the outcome of a signature import
func (m *Metrics) ObserveImport(added, rejected int) {
	m.imports.WithLabelValues("added").Add(float64(added))
	m.imports.WithLabelValues("rejected").Add(float64(rejected))
}

// WriteTextfile dumps everything gathered by g to path in the text
// exposition format read by the node exporter textfile collector
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
