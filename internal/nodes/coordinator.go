package nodes

import (
	"io"
	"sort"

	"sensornet-simulator/internal/engine"
	"sensornet-simulator/internal/phy"
	"sensornet-simulator/internal/protocol"
)

// CoordinatorConfig holds the timing parameters of the discovery and
// scheduling phases.
type CoordinatorConfig struct {
	DiscoveryStart  float64 // delay before the first discovery round
	DiscoveryWindow float64 // response collection window per round
	SlotDuration    float64
	SchedStartDelay float64 // delay before the first frame, carried in SCHED
	MaxRetries      int     // extra rounds after the first; 0 = unbounded
	PDUSize         int
}

// Coordinator is the base station: it discovers the device population,
// builds the TDMA schedule, broadcasts it once, and accepts data.
type Coordinator struct {
	base
	cfg CoordinatorConfig

	// Discovered holds device ids in arrival order; arrival order is the
	// slot assignment order.
	Discovered   []int
	Schedule     []protocol.SlotAssignment
	Rounds       int
	DataReceived int

	missing   map[int]bool
	scheduled bool
	obs       Observer
}

// NewCoordinator creates the base station expecting the given device ids.
func NewCoordinator(sim *engine.Simulation, ch *phy.Channel, id int, pos phy.Position, txRange float64, deviceIDs []int, cfg CoordinatorConfig, logw io.Writer) *Coordinator {
	missing := make(map[int]bool, len(deviceIDs))
	for _, devID := range deviceIDs {
		missing[devID] = true
	}
	return &Coordinator{
		base:    newBase(sim, ch, id, pos, txRange, logw),
		cfg:     cfg,
		missing: missing,
	}
}

// SetObserver attaches protocol instrumentation. Must be called before Start.
func (c *Coordinator) SetObserver(obs Observer) {
	c.obs = obs
}

// MissingIDs returns the ids not yet discovered, sorted.
func (c *Coordinator) MissingIDs() []int {
	ids := make([]int, 0, len(c.missing))
	for id := range c.missing {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (c *Coordinator) Start() {
	c.sim.Schedule(c.cfg.DiscoveryStart, c.startRound)
}

func (c *Coordinator) startRound() {
	c.Rounds++
	if c.obs != nil {
		c.obs.OnDiscoveryRound()
	}

	missing := c.MissingIDs()
	c.logf("discovery round %d starts, missing: %v", c.Rounds, missing)
	c.ch.Send(c, protocol.PDU{
		Type:    protocol.TypeDiscovery,
		Src:     c.id,
		Dest:    protocol.Broadcast,
		Size:    c.cfg.PDUSize,
		Payload: protocol.DiscoveryPayload{Missing: missing},
	})
	c.logf("sent DISCOVERY with missing ids: %v", missing)

	c.sim.Schedule(c.cfg.DiscoveryWindow, c.endRound)
}

func (c *Coordinator) endRound() {
	if len(c.missing) == 0 {
		c.logf("discovered all devices: %v", c.Discovered)
		c.distributeSchedule()
		return
	}

	if c.cfg.MaxRetries > 0 && c.Rounds > c.cfg.MaxRetries {
		c.logf("retry budget exhausted, permanently missing: %v", c.MissingIDs())
		c.distributeSchedule()
		return
	}

	c.logf("still missing responses from: %v", c.MissingIDs())
	c.startRound()
}

// distributeSchedule builds and broadcasts the schedule exactly once per
// discovery cycle.
func (c *Coordinator) distributeSchedule() {
	if c.scheduled {
		return
	}
	c.scheduled = true

	c.Schedule = protocol.BuildSchedule(c.Discovered)
	c.ch.Send(c, protocol.PDU{
		Type: protocol.TypeSchedule,
		Src:  c.id,
		Dest: protocol.Broadcast,
		Size: c.cfg.PDUSize,
		Payload: protocol.SchedulePayload{
			SlotCount:  len(c.Schedule),
			Slots:      c.Schedule,
			StartDelay: c.cfg.SchedStartDelay,
		},
	})
	c.logf("sent schedule: %v", c.Schedule)
}

// Deliver routes a received PDU through the MAC dispatch policy.
func (c *Coordinator) Deliver(pdu protocol.PDU) {
	switch protocol.Dispatch(pdu, protocol.RoleCoordinator, c.id) {
	case protocol.Deliver:
		c.onMessage(pdu)
	case protocol.Drop, protocol.ForwardDefault:
		// Default transport handling has nothing to do at the base station.
	}
}

func (c *Coordinator) onMessage(pdu protocol.PDU) {
	switch pdu.Type {
	case protocol.TypeHello:
		hello, ok := pdu.Payload.(protocol.HelloPayload)
		if !ok {
			return
		}
		if !c.missing[hello.DeviceID] {
			return
		}
		delete(c.missing, hello.DeviceID)
		c.Discovered = append(c.Discovered, hello.DeviceID)
		c.logf("received HELLO from device %d", hello.DeviceID)

	case protocol.TypeData:
		c.DataReceived++
		if c.obs != nil {
			c.obs.OnDataPDU()
		}
		c.logf("received DATA from device %d", pdu.Src)
	}
}
