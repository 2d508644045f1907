package protocol

// Role distinguishes the two node variants of the protocol.
type Role int

const (
	// RoleCoordinator runs discovery and owns the schedule.
	RoleCoordinator Role = iota
	// RoleDevice responds to discovery and transmits in its slot.
	RoleDevice
)

// Decision is the MAC layer's routing verdict for a received PDU.
type Decision int

const (
	// Deliver hands the PDU to the node's protocol logic.
	Deliver Decision = iota
	// Drop discards the PDU silently.
	Drop
	// ForwardDefault falls back to default transport handling.
	ForwardDefault
)

// Dispatch decides how a received PDU is routed on a node. It is a pure
// function of the PDU's type and destination and the receiver's role and id;
// it never inspects the payload and is defined for every combination.
func Dispatch(pdu PDU, role Role, selfID int) Decision {
	switch pdu.Type {
	case TypeDiscovery, TypeSchedule:
		if pdu.Dest == Broadcast {
			return Deliver
		}
		return Drop
	case TypeHello:
		if role == RoleCoordinator {
			return Deliver
		}
		return Drop
	case TypeData:
		if role == RoleCoordinator && pdu.Dest == selfID {
			return Deliver
		}
		return ForwardDefault
	}
	return ForwardDefault
}
