// Package ecs provides ECS adapters for reach's pointer event stream.
//
// The primary adapter is [NewDonburiStore], which bridges reach interaction
// events (hover, select, move, cancel, ...) into a [Donburi] world as typed
// events. Subscribe to [InteractionEventType] in your ECS systems to receive
// them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	reachWorld.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
