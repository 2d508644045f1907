package engine

import (
	"sort"
)

// Event is a single scheduled action on the virtual timeline.
type Event struct {
	Time   float64
	Action func()

	seq uint64
}

// Simulation manages the virtual clock and the event schedule.
type Simulation struct {
	Now     float64
	events  []Event
	nextSeq uint64
}

// NewSimulation initialises a simulation environment at time zero.
func NewSimulation() *Simulation {
	return &Simulation{
		Now:    0.0,
		events: []Event{},
	}
}

// Schedule queues action to run delay time units from now. Negative delays
// clamp to zero. Events with equal timestamps fire in the order they were
// scheduled; discovery arrival order and slot assignment depend on this, so
// the tie-break is part of the contract.
func (s *Simulation) Schedule(delay float64, action func()) {
	if delay < 0 {
		delay = 0
	}
	s.insert(Event{
		Time:   s.Now + delay,
		Action: action,
	})
}

// ScheduleAt queues action at an absolute time. Times already in the past
// are dropped.
func (s *Simulation) ScheduleAt(absoluteTime float64, action func()) {
	if absoluteTime < s.Now {
		return
	}
	s.insert(Event{
		Time:   absoluteTime,
		Action: action,
	})
}

func (s *Simulation) insert(ev Event) {
	ev.seq = s.nextSeq
	s.nextSeq++

	s.events = append(s.events, ev)
	sort.Slice(s.events, func(i, j int) bool {
		if s.events[i].Time != s.events[j].Time {
			return s.events[i].Time < s.events[j].Time
		}
		return s.events[i].seq < s.events[j].seq
	})
}

// Run executes queued events in time order until the queue drains or the
// next event lies beyond the horizon. Each action runs to completion before
// the next event fires.
func (s *Simulation) Run(until float64) {
	for len(s.events) > 0 {
		event := s.events[0]

		if event.Time > until {
			break
		}

		s.events = s.events[1:]
		s.Now = event.Time
		event.Action()
	}
}

// RunSteps executes at most the next n events regardless of the horizon.
func (s *Simulation) RunSteps(n int) {
	for i := 0; i < n && len(s.events) > 0; i++ {
		event := s.events[0]
		s.events = s.events[1:]
		s.Now = event.Time
		event.Action()
	}
}

func (s *Simulation) PendingEvents() int {
	return len(s.events)
}

func (s *Simulation) NextEventTime() float64 {
	if len(s.events) == 0 {
		return -1
	}
	return s.events[0].Time
}

func (s *Simulation) Reset() {
	s.Now = 0.0
	s.events = []Event{}
	s.nextSeq = 0
}
