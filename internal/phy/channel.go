package phy

import (
	"math"

	"sensornet-simulator/internal/engine"
	"sensornet-simulator/internal/protocol"
)

// Position is a node's location on the plane.
type Position struct {
	X float64
	Y float64
}

// DistanceTo returns the Euclidean distance to q.
func (p Position) DistanceTo(q Position) float64 {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Receiver is the contract a node exposes to the shared medium.
type Receiver interface {
	NodeID() int
	Position() Position
	TxRange() float64
	Deliver(pdu protocol.PDU)
}

// Observer mirrors channel counters into an external sink, e.g. Prometheus.
type Observer interface {
	OnTransmit()
	OnReceive()
	OnCollision()
}

// Stats are the medium's passive counters, readable after a run.
type Stats struct {
	TotalTx         int
	TotalRx         int
	TotalCollisions int
}

// reception is one frame in flight toward a single receiver.
type reception struct {
	end       float64
	corrupted bool
}

// Channel is the shared lossy medium. A transmission reaches every other
// registered node within the sender's range after one airtime; receptions
// that overlap in time at the same receiver corrupt each other and are
// counted as collisions instead of being delivered.
type Channel struct {
	BitRate  float64
	Stats    Stats
	Observer Observer

	sim       *engine.Simulation
	receivers []Receiver
	inFlight  map[int][]*reception
}

const defaultBitRate = 250_000 // bit/s

func NewChannel(sim *engine.Simulation, bitRate float64) *Channel {
	if bitRate <= 0 {
		bitRate = defaultBitRate
	}
	return &Channel{
		BitRate:  bitRate,
		sim:      sim,
		inFlight: make(map[int][]*reception),
	}
}

// Register adds a node to the medium. Registration order is the iteration
// order for deliveries, which keeps runs reproducible.
func (c *Channel) Register(r Receiver) {
	c.receivers = append(c.receivers, r)
}

// Send puts a PDU on the air. The sender never receives its own frame.
func (c *Channel) Send(src Receiver, pdu protocol.PDU) {
	c.Stats.TotalTx++
	if c.Observer != nil {
		c.Observer.OnTransmit()
	}

	airtime := float64(pdu.Size*8) / c.BitRate
	for _, rcv := range c.receivers {
		if rcv.NodeID() == src.NodeID() {
			continue
		}
		if src.Position().DistanceTo(rcv.Position()) > src.TxRange() {
			continue
		}
		c.beginReception(rcv, pdu, airtime)
	}
}

func (c *Channel) beginReception(rcv Receiver, pdu protocol.PDU, airtime float64) {
	id := rcv.NodeID()

	// Drop receptions that already ended, keep the ones still in the air.
	active := c.inFlight[id][:0]
	for _, r := range c.inFlight[id] {
		if r.end > c.sim.Now {
			active = append(active, r)
		}
	}

	rec := &reception{end: c.sim.Now + airtime}
	for _, r := range active {
		if !r.corrupted {
			r.corrupted = true
			c.collision()
		}
		if !rec.corrupted {
			rec.corrupted = true
			c.collision()
		}
	}
	c.inFlight[id] = append(active, rec)

	c.sim.Schedule(airtime, func() {
		if rec.corrupted {
			return
		}
		c.Stats.TotalRx++
		if c.Observer != nil {
			c.Observer.OnReceive()
		}
		rcv.Deliver(pdu)
	})
}

func (c *Channel) collision() {
	c.Stats.TotalCollisions++
	if c.Observer != nil {
		c.Observer.OnCollision()
	}
}
