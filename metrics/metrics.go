package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics provides Prometheus metrics for one reconciliation.
//
// All methods handle a nil receiver, so the engine can run with
// metrics disabled.
type Metrics struct {
	// UnmountsTotal counts detach requests by result
	UnmountsTotal *prometheus.CounterVec

	// RemountsTotal counts overlay restorations by result
	RemountsTotal *prometheus.CounterVec

	// Targets is the size of the last target list, duplicates included
	Targets prometheus.Gauge

	// BackupsPruned counts overlays found undisturbed after unmount
	BackupsPruned prometheus.Counter
}

// NewMetrics creates and registers the metrics on reg.
// Pass nil to create metrics without registration.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		UnmountsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mountrevert_unmounts_total",
				Help: "Total detach unmount requests by result",
			},
			[]string{"result"},
		),
		RemountsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mountrevert_remounts_total",
				Help: "Total overlay restorations by result",
			},
			[]string{"result"},
		),
		Targets: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "mountrevert_targets",
				Help: "Mount points selected to hide in last run",
			},
		),
		BackupsPruned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "mountrevert_backups_pruned_total",
				Help: "Overlays still mounted after unmount and not restored",
			},
		),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.UnmountsTotal, m.RemountsTotal, m.Targets, m.BackupsPruned} {
			if err := reg.Register(c); err != nil {
				return nil, errors.Wrap(err, "register metrics")
			}
		}
	}
	return m, nil
}

func result(err error) string {
	if err != nil {
		return "failure"
	}
	return "success"
}

func (m *Metrics) ObserveUnmount(err error) {
	if m == nil {
		return
	}
	m.UnmountsTotal.WithLabelValues(result(err)).Inc()
}

func (m *Metrics) ObserveRemount(err error) {
	if m == nil {
		return
	}
	m.RemountsTotal.WithLabelValues(result(err)).Inc()
}

func (m *Metrics) SetTargets(n int) {
	if m == nil {
		return
	}
	m.Targets.Set(float64(n))
}

func (m *Metrics) AddPruned(n int) {
	if m == nil {
		return
	}
	m.BackupsPruned.Add(float64(n))
}

// WriteTextfile writes every metric in g to filename in text exposition
// format, for node_exporter textfile collector.
func WriteTextfile(filename string, g prometheus.Gatherer) error {
	return errors.Wrapf(prometheus.WriteToTextfile(filename, g), "write metrics to %s", filename)
}
