// Package metrics exposes the simulator's counters as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics mirrors the PHY and protocol counters. It satisfies both
// phy.Observer and nodes.Observer. Registration happens on the supplied
// Registerer so repeated trials and tests can use isolated registries.
type Metrics struct {
	Transmissions   prometheus.Counter
	Receptions      prometheus.Counter
	Collisions      prometheus.Counter
	DiscoveryRounds prometheus.Counter
	DataPDUs        prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Transmissions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sensornet_transmissions_total",
			Help: "Total PDUs put on the air.",
		}),
		Receptions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sensornet_receptions_total",
			Help: "Total PDUs delivered collision-free.",
		}),
		Collisions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sensornet_collisions_total",
			Help: "Total receptions corrupted by overlapping transmissions.",
		}),
		DiscoveryRounds: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sensornet_discovery_rounds_total",
			Help: "Discovery rounds started by the coordinator.",
		}),
		DataPDUs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sensornet_data_pdus_total",
			Help: "DATA PDUs accepted by the coordinator.",
		}),
	}
	reg.MustRegister(m.Transmissions, m.Receptions, m.Collisions, m.DiscoveryRounds, m.DataPDUs)
	return m
}

func (m *Metrics) OnTransmit()       { m.Transmissions.Inc() }
func (m *Metrics) OnReceive()        { m.Receptions.Inc() }
func (m *Metrics) OnCollision()      { m.Collisions.Inc() }
func (m *Metrics) OnDiscoveryRound() { m.DiscoveryRounds.Inc() }
func (m *Metrics) OnDataPDU()        { m.DataPDUs.Inc() }
