// Package ecs bridges barchart join events into a [Donburi] world.
//
// [NewDonburiSink] publishes every enter, update, exit and removal as a typed
// event. Subscribe to [JoinEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	opts := barchart.DefaultChartOptions()
//	opts.Sink = sink
//	chart := barchart.NewChart(scene.Root(), opts)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
