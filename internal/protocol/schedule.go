package protocol

// BuildSchedule assigns slot i to discovered[i]. Slot indices are unique and
// contiguous from 0; the order of discovered is the discovery arrival order
// and is preserved.
func BuildSchedule(discovered []int) []SlotAssignment {
	slots := make([]SlotAssignment, 0, len(discovered))
	for idx, deviceID := range discovered {
		slots = append(slots, SlotAssignment{DeviceID: deviceID, Slot: idx})
	}
	return slots
}

// SlotFor looks up the slot assigned to deviceID in a schedule.
func SlotFor(slots []SlotAssignment, deviceID int) (int, bool) {
	for _, sa := range slots {
		if sa.DeviceID == deviceID {
			return sa.Slot, true
		}
	}
	return 0, false
}
