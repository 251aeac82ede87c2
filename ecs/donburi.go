package ecs

import (
	"github.com/phanxgames/cadence"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// LifecycleEventType is the Donburi event type for cadence lifecycle events.
var LifecycleEventType = events.NewEventType[cadence.Event]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Events are published to LifecycleEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) cadence.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event cadence.Event) {
	LifecycleEventType.Publish(s.world, event)
}
