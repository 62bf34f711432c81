// Package reveal is a viewport-synchronized reveal engine for [Ebitengine].
//
// Reveal drives the opacity and position of scene-graph elements from
// scroll position, viewport intersection and out-of-band navigation
// signals such as a deep link to a section.
//
// # Quick start
//
// Build a tree of nodes, activate a reveal on a section and hand the scene
// to [Run]:
//
//	scene := reveal.NewScene(800, 600)
//
//	pricing := reveal.NewContainer("pricing")
//	pricing.SetPosition(0, 900)
//	pricing.SetSize(800, 400)
//	for i := range 3 {
//		card := reveal.NewBox("card", 200, 300, reveal.ColorWhite, "card")
//		card.SetPosition(float64(40+i*250), 50)
//		pricing.AddChild(card)
//	}
//	scene.Root().AddChild(pricing)
//
//	dispose, err := scene.Activate(reveal.Config{
//		Section:  "pricing",
//		Region:   pricing,
//		Selector: ".card",
//		Stagger:  0.1,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer dispose()
//
//	reveal.Run(scene, reveal.RunConfig{Title: "Landing"})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw], or drive [Scene.Step] from any loop.
//
// # Components
//
// [Resolve] turns explicit node handles plus an optional [Selector] into
// the ordered target list. An [Observer] compares a trigger region with the
// [Viewport] and emits one tagged [TriggerEvent] per transition, or a
// progress value in scrubbed mode. A [Driver] owns one state machine per
// [Target] and runs transitions as gween tweens. A [Coordinator] binds the
// three to an activate/dispose lifecycle and keeps at most one watch per
// region in the scene's [Registry]. A [ReplayHook] turns navigation
// signals from a [SignalSource] into force-plays.
//
// # Frame order
//
// Everything runs on the goroutine that calls [Scene.Step]. Each step
// advances the clock, applies injected input, updates transforms and
// scrolling, advances running transitions, settles queued replay signals
// and finally samples every observer.
//
// # Page files
//
// [LoadPage] reads section definitions from YAML and [Scene.ActivatePage]
// activates them all behind one [Disposer].
//
// # Debug mode
//
// Call [Scene.SetDebugMode] to panic on use of disposed nodes and to log
// activations, dropped targets and replays through charmbracelet/log.
//
// # ECS integration
//
// The reveal/ecs module publishes every [RevealEvent] into a [Donburi]
// world; see [Scene.SetEventSink].
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package reveal
