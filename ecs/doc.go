// Package ecs provides ECS adapters for reveal's trigger and replay events.
//
// The primary adapter is [NewDonburiSink], which publishes every
// [reveal.RevealEvent] (enter, leave, progress, replay) into a [Donburi]
// world as a typed event. Subscribe to [RevealEventType] in your ECS
// systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
