// Package ecs provides ECS adapters for cadence's lifecycle events.
//
// The primary adapter is [NewDonburiStore], which bridges cadence events
// (animation completed or looped, object activated, deactivated or failed)
// into a [Donburi] world as typed events. Subscribe to [LifecycleEventType]
// in your ECS systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
