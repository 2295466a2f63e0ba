package ecs

import (
	"github.com/phanxgames/sapling"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// InteractionEventType is the Donburi event type carrying sapling events.
var InteractionEventType = events.NewEventType[sapling.InteractionEvent]()

type donburiStore struct {
	world donburi.World
	types map[sapling.EventType]bool
}

// NewDonburiStore returns an EntityStore that publishes to world. With no
// types every forwarded event is published; otherwise only the listed
// types are.
func NewDonburiStore(world donburi.World, types ...sapling.EventType) sapling.EntityStore {
	s := &donburiStore{world: world}
	if len(types) > 0 {
		s.types = make(map[sapling.EventType]bool, len(types))
		for _, t := range types {
			s.types[t] = true
		}
	}
	return s
}

func (s *donburiStore) EmitEvent(event sapling.InteractionEvent) {
	if s.types != nil && !s.types[event.Type] {
		return
	}
	InteractionEventType.Publish(s.world, event)
}
