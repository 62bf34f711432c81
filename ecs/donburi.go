package ecs

import (
	"github.com/phanxgames/reveal"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// RevealEventType is the Donburi event type for reveal events.
// Subscribe to this in your ECS systems to react to sections entering,
// leaving, scrubbing or being replayed.
var RevealEventType = events.NewEventType[reveal.RevealEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Events are queued on RevealEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) reveal.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitReveal(event reveal.RevealEvent) {
	RevealEventType.Publish(s.world, event)
}
