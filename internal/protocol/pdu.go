package protocol

// PDUType tags a protocol message and fixes its payload shape.
type PDUType string

const (
	// TypeDiscovery is the coordinator's broadcast discovery request.
	TypeDiscovery PDUType = "DISCOVERY"
	// TypeHello is a device's response to a discovery request.
	TypeHello PDUType = "HELLO"
	// TypeSchedule carries the TDMA slot assignments.
	TypeSchedule PDUType = "SCHED"
	// TypeData is a scheduled data transmission from a device.
	TypeData PDUType = "DATA"
)

// Broadcast addresses every node within the sender's range.
const Broadcast = -1

// PDU is one unit of communication. Immutable after construction; Size is
// in bytes and matters only for airtime on the shared medium.
type PDU struct {
	Type    PDUType
	Src     int
	Dest    int
	Size    int
	Payload any
}

// DiscoveryPayload lists the ids the coordinator has not yet heard from.
type DiscoveryPayload struct {
	Missing []int
}

// HelloPayload identifies the responding device.
type HelloPayload struct {
	DeviceID int
}

// SlotAssignment binds one device to one slot index within the frame.
type SlotAssignment struct {
	DeviceID int
	Slot     int
}

// SchedulePayload is the broadcast TDMA schedule: slot table plus the delay
// before the first frame starts.
type SchedulePayload struct {
	SlotCount  int
	Slots      []SlotAssignment
	StartDelay float64
}

// DataPayload is an opaque sensor reading.
type DataPayload struct {
	Reading string
}
