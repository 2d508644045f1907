package protocol

import (
	"testing"
)

func TestBuildScheduleSlotsAreContiguous(t *testing.T) {
	discovered := []int{9, 4, 11, 2}

	slots := BuildSchedule(discovered)

	if len(slots) != len(discovered) {
		t.Fatalf("got %d assignments, want %d", len(slots), len(discovered))
	}
	seen := make(map[int]bool)
	for i, sa := range slots {
		if sa.Slot != i {
			t.Errorf("slot at index %d = %d, want %d", i, sa.Slot, i)
		}
		if sa.DeviceID != discovered[i] {
			t.Errorf("device at slot %d = %d, want %d (arrival order)", i, sa.DeviceID, discovered[i])
		}
		if seen[sa.Slot] {
			t.Errorf("slot %d assigned twice", sa.Slot)
		}
		seen[sa.Slot] = true
	}
}

func TestBuildScheduleEmpty(t *testing.T) {
	if slots := BuildSchedule(nil); len(slots) != 0 {
		t.Errorf("got %d assignments for no devices", len(slots))
	}
}

func TestSlotFor(t *testing.T) {
	slots := BuildSchedule([]int{5, 3})

	if slot, ok := SlotFor(slots, 3); !ok || slot != 1 {
		t.Errorf("SlotFor(3) = %d,%v, want 1,true", slot, ok)
	}
	if _, ok := SlotFor(slots, 8); ok {
		t.Error("SlotFor(8) found a slot for an unscheduled device")
	}
}
