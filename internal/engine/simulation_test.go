package engine

import (
	"testing"
)

func TestRunOrdersEventsByTime(t *testing.T) {
	sim := NewSimulation()

	var fired []int
	sim.Schedule(3.0, func() { fired = append(fired, 3) })
	sim.Schedule(1.0, func() { fired = append(fired, 1) })
	sim.Schedule(2.0, func() { fired = append(fired, 2) })

	sim.Run(10.0)

	want := []int{1, 2, 3}
	if len(fired) != len(want) {
		t.Fatalf("fired %v, want %v", fired, want)
	}
	for i := range want {
		if fired[i] != want[i] {
			t.Errorf("fired[%d] = %d, want %d", i, fired[i], want[i])
		}
	}
	if sim.Now != 3.0 {
		t.Errorf("Now = %v, want 3.0", sim.Now)
	}
}

func TestEqualTimestampsFireInInsertionOrder(t *testing.T) {
	sim := NewSimulation()

	var fired []int
	for i := 0; i < 10; i++ {
		i := i
		sim.Schedule(1.0, func() { fired = append(fired, i) })
	}

	sim.Run(2.0)

	for i := range fired {
		if fired[i] != i {
			t.Fatalf("fired = %v, want insertion order", fired)
		}
	}
	if len(fired) != 10 {
		t.Fatalf("fired %d events, want 10", len(fired))
	}
}

func TestRunStopsAtHorizon(t *testing.T) {
	sim := NewSimulation()

	fired := 0
	sim.Schedule(1.0, func() { fired++ })
	sim.Schedule(5.0, func() { fired++ })

	sim.Run(2.0)

	if fired != 1 {
		t.Errorf("fired = %d, want 1", fired)
	}
	if sim.PendingEvents() != 1 {
		t.Errorf("PendingEvents = %d, want 1", sim.PendingEvents())
	}
	if sim.NextEventTime() != 5.0 {
		t.Errorf("NextEventTime = %v, want 5.0", sim.NextEventTime())
	}
}

func TestScheduledActionsCanSchedule(t *testing.T) {
	sim := NewSimulation()

	var times []float64
	var rearm func()
	rearm = func() {
		times = append(times, sim.Now)
		if sim.Now+1.0 <= 5.0 {
			sim.Schedule(1.0, rearm)
		}
	}
	sim.Schedule(1.0, rearm)

	sim.Run(10.0)

	if len(times) != 5 {
		t.Fatalf("fired at %v, want 5 firings", times)
	}
	for i, at := range times {
		if at != float64(i+1) {
			t.Errorf("firing %d at %v, want %v", i, at, float64(i+1))
		}
	}
}

func TestScheduleAtDropsPastEvents(t *testing.T) {
	sim := NewSimulation()
	sim.Schedule(2.0, func() {})
	sim.Run(10.0)

	fired := false
	sim.ScheduleAt(1.0, func() { fired = true })
	sim.Run(10.0)

	if fired {
		t.Error("event in the past fired")
	}
}

func TestNegativeDelayClampsToNow(t *testing.T) {
	sim := NewSimulation()
	sim.Schedule(2.0, func() {
		sim.Schedule(-1.0, func() {
			if sim.Now != 2.0 {
				t.Errorf("Now = %v, want 2.0", sim.Now)
			}
		})
	})
	sim.Run(10.0)
}
