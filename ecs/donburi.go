package ecs

import (
	"github.com/phanxgames/reach"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type for reach interaction
// events. Events are queued; call ProcessEvents (or events.ProcessAllEvents)
// from your ECS update to deliver them.
var InteractionEventType = events.NewEventType[reach.InteractionEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
func NewDonburiStore(world donburi.World) reach.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event reach.InteractionEvent) {
	InteractionEventType.Publish(s.world, event)
}
