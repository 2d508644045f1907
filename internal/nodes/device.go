package nodes

import (
	"fmt"
	"io"
	"math/rand"

	"sensornet-simulator/internal/engine"
	"sensornet-simulator/internal/phy"
	"sensornet-simulator/internal/protocol"
)

// DeviceConfig holds the device-side timing parameters.
type DeviceConfig struct {
	CoordinatorID int
	SlotDuration  float64
	HelloTimeout  float64 // jitter bound for the HELLO response
	Horizon       float64 // simulation end; the only stop for transmissions
	PDUSize       int
}

// Device is a sensor node: it answers discovery requests after a random
// jitter and, once scheduled, transmits one DATA PDU per frame in its slot
// until the horizon.
type Device struct {
	base
	cfg DeviceConfig

	// Jitter returns the delay before a HELLO response. Injectable so tests
	// can force deterministic orderings.
	Jitter func() float64

	Slot        int
	HasSlot     bool
	FrameLength float64
	DataSent    int

	responded bool
}

// NewDevice creates a sensor node. The rng drives the response jitter; pass
// a seeded source for reproducible runs.
func NewDevice(sim *engine.Simulation, ch *phy.Channel, id int, pos phy.Position, txRange float64, cfg DeviceConfig, rng *rand.Rand, logw io.Writer) *Device {
	if rng == nil {
		rng = rand.New(rand.NewSource(int64(id)))
	}
	d := &Device{
		base: newBase(sim, ch, id, pos, txRange, logw),
		cfg:  cfg,
	}
	d.Jitter = func() float64 {
		return rng.Float64() * cfg.HelloTimeout
	}
	return d
}

func (d *Device) Start() {
	d.logf("waiting for DISCOVERY (tx range: %.0f)", d.txRange)
}

// Deliver routes a received PDU through the MAC dispatch policy.
func (d *Device) Deliver(pdu protocol.PDU) {
	switch protocol.Dispatch(pdu, protocol.RoleDevice, d.id) {
	case protocol.Deliver:
		d.onMessage(pdu)
	case protocol.Drop, protocol.ForwardDefault:
		// Devices neither relay nor consume traffic addressed elsewhere.
	}
}

func (d *Device) onMessage(pdu protocol.PDU) {
	switch pdu.Type {
	case protocol.TypeDiscovery:
		disc, ok := pdu.Payload.(protocol.DiscoveryPayload)
		if !ok {
			return
		}
		d.onDiscovery(pdu.Src, disc)

	case protocol.TypeSchedule:
		sched, ok := pdu.Payload.(protocol.SchedulePayload)
		if !ok {
			return
		}
		d.onSchedule(sched)
	}
}

// onDiscovery schedules a jittered HELLO. A device responds to its first
// request unconditionally, and afterwards only when a later round lists it
// as still missing.
func (d *Device) onDiscovery(src int, disc protocol.DiscoveryPayload) {
	d.logf("received DISCOVERY from node %d", src)

	listed := false
	for _, id := range disc.Missing {
		if id == d.id {
			listed = true
			break
		}
	}
	if d.responded && !listed {
		return
	}
	d.responded = true

	delay := d.Jitter()
	d.logf("scheduling HELLO in %.4fs", delay)
	d.sim.Schedule(delay, d.sendHello)
}

func (d *Device) sendHello() {
	d.ch.Send(d, protocol.PDU{
		Type:    protocol.TypeHello,
		Src:     d.id,
		Dest:    d.cfg.CoordinatorID,
		Size:    d.cfg.PDUSize,
		Payload: protocol.HelloPayload{DeviceID: d.id},
	})
	d.logf("sent HELLO to node %d", d.cfg.CoordinatorID)
}

// onSchedule looks up this device's slot and arms the transmission chain.
// A device not listed stays silent for the cycle.
func (d *Device) onSchedule(sched protocol.SchedulePayload) {
	slot, ok := protocol.SlotFor(sched.Slots, d.id)
	if !ok {
		d.logf("didn't get a slot")
		return
	}

	d.Slot = slot
	d.HasSlot = true
	d.FrameLength = float64(sched.SlotCount) * d.cfg.SlotDuration
	d.logf("received schedule, slot %d of %d, frame length %.3fs", slot, sched.SlotCount, d.FrameLength)

	d.sim.Schedule(sched.StartDelay+float64(slot)*d.cfg.SlotDuration, d.sendData)
}

// sendData transmits once per frame at the assigned offset. The chain
// terminates only by the horizon check; there is no cancellation primitive.
func (d *Device) sendData() {
	if d.sim.Now >= d.cfg.Horizon {
		return
	}

	d.ch.Send(d, protocol.PDU{
		Type:    protocol.TypeData,
		Src:     d.id,
		Dest:    d.cfg.CoordinatorID,
		Size:    d.cfg.PDUSize,
		Payload: protocol.DataPayload{Reading: fmt.Sprintf("data from %d", d.id)},
	})
	d.DataSent++
	d.logf("sent DATA to node %d", d.cfg.CoordinatorID)

	if d.sim.Now+d.FrameLength < d.cfg.Horizon {
		d.sim.Schedule(d.FrameLength, d.sendData)
	}
}
