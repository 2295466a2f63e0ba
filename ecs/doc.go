// Package ecs bridges sapling pointer events into a [Donburi] world.
//
// Events delivered to nodes with a non-zero EntityID are published as
// [InteractionEventType] events, queued until the world processes them:
//
//	store := ecs.NewDonburiStore(world, sapling.EventClick, sapling.EventMouseDown)
//	scene.SetEntityStore(store)
//
//	ecs.InteractionEventType.Subscribe(world, func(w donburi.World, e sapling.InteractionEvent) {
//		// ...
//	})
//	ecs.InteractionEventType.ProcessEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
