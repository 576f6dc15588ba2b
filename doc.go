// Package barchart is a live 3D bar chart for [Ebitengine].
//
// A [Chart] binds bars to the records of a data batch by key. Every call to
// [Chart.Join] reconciles the live bars with a new batch: new keys enter,
// matched keys update in place, and vanished keys fade out and are removed
// once the fade completes. After each join every bar's transitions are
// re-armed, and [Chart.Update] moves them toward their targets frame by frame.
//
// # Quick start
//
// [App] wires a [Scene], a [Chart] and a [Feed] together, and [Run] opens the
// window:
//
//	cfg := barchart.DefaultConfig()
//	scene := barchart.NewScene()
//	cfg.ApplyScene(scene)
//	app := barchart.NewApp(scene, feed.NewRandom(1, cfg.Records), cfg.AppOptions())
//	if err := app.Start(); err != nil {
//		log.Fatal(err)
//	}
//	if err := barchart.Run(scene, cfg.RunConfig()); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, drive a Chart from [Scene.SetUpdateFunc] yourself; see
// examples/basic.
//
// # Data join
//
// Heights come from a [LinearScale] mapping [0, max value] onto [0, 1],
// recomputed on every join. Records with an empty key, an unknown color, or a
// negative or non-finite value are skipped; Join reports them as
// [*RecordError] values wrapping [ErrInvalidRecord]. Repeated keys follow
// [ChartOptions.Duplicates]. Set [ChartOptions.Sink] to observe every enter,
// update, exit and removal; package ecs forwards them into a Donburi world.
//
// # Rendering
//
// Bars are box nodes in a small scene graph rooted at [Scene.Root]. The
// [Camera] is orthographic and orbits its target; [OrbitControls] maps mouse
// and touch drags onto it. Each frame the visible faces are projected, shaded
// by the scene's point [Light], sorted back to front and drawn in batched
// DrawTriangles32 calls. The stage is clamped to [MaxStageSize].
//
// Without a window, [Recorder] samples bar heights and plots them as ASCII
// line graphs.
//
// # Scripts
//
// [LoadScript] reads YAML or JSON steps (data, wait, screenshot) that run
// one per frame, for reproducible runs and visual checks.
//
// # Debug mode
//
// [Scene.SetDebugMode] panics on use of disposed nodes, warns about very
// large child lists, and logs per-frame timing at debug level.
//
// [Ebitengine]: https://ebitengine.org
package barchart
