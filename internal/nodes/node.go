package nodes

import (
	"fmt"
	"io"

	"sensornet-simulator/internal/engine"
	"sensornet-simulator/internal/phy"
)

// Node is a protocol participant. It makes progress only when a timer it
// scheduled fires or a PDU is delivered to it; handlers run to completion
// before the next event.
type Node interface {
	phy.Receiver
	Start()
}

// Observer receives protocol-level events for instrumentation.
type Observer interface {
	OnDiscoveryRound()
	OnDataPDU()
}

// base carries the state every node variant shares.
type base struct {
	id      int
	pos     phy.Position
	txRange float64
	sim     *engine.Simulation
	ch      *phy.Channel
	logw    io.Writer
}

func newBase(sim *engine.Simulation, ch *phy.Channel, id int, pos phy.Position, txRange float64, logw io.Writer) base {
	if logw == nil {
		logw = io.Discard
	}
	return base{
		id:      id,
		pos:     pos,
		txRange: txRange,
		sim:     sim,
		ch:      ch,
		logw:    logw,
	}
}

func (b *base) NodeID() int            { return b.id }
func (b *base) Position() phy.Position { return b.pos }
func (b *base) TxRange() float64       { return b.txRange }

// logf writes one event-log line prefixed with the virtual timestamp.
func (b *base) logf(format string, args ...any) {
	fmt.Fprintf(b.logw, "[%7.3fs] node %d: %s\n", b.sim.Now, b.id, fmt.Sprintf(format, args...))
}
