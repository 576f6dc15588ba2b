package ecs

import (
	"github.com/phanxgames/barchart"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// JoinEventType is the Donburi event type for chart join events.
var JoinEventType = events.NewEventType[barchart.JoinEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Join events
// are published to JoinEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) barchart.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitJoin(event barchart.JoinEvent) {
	JoinEventType.Publish(s.world, event)
}

// PhaseCounter tallies join events by phase. Register it with Subscribe.
type PhaseCounter struct {
	Counts map[barchart.JoinPhase]int
	Last   barchart.JoinEvent
}

// NewPhaseCounter creates a counter subscribed to JoinEventType on world.
func NewPhaseCounter(world donburi.World) *PhaseCounter {
	c := &PhaseCounter{Counts: make(map[barchart.JoinPhase]int)}
	JoinEventType.Subscribe(world, c.handle)
	return c
}

func (c *PhaseCounter) handle(_ donburi.World, e barchart.JoinEvent) {
	c.Counts[e.Phase]++
	c.Last = e
}
