// Package reach is a tick-driven interaction core: the state machine that
// decides, every frame, which of many spatial targets an actor is hovering or
// selecting, and the ordered pointer-event stream that reports it.
//
// Reach does no rendering, physics, or input sampling of its own. It consumes
// one actor pose per tick, asks a [SpatialQuery] about target volumes, and
// publishes [PointerEvent]s synchronously to whoever subscribed.
//
// # Quick start
//
//	world := reach.NewWorld(reach.DefaultConfig())
//
//	slot := world.NewInteractable("slot", "left")
//	slot.Volumes = []reach.Volume{reach.Sphere{Radius: 1}}
//	slot.Enable()
//
//	button := &reach.ButtonPolicy{}
//	hand := world.NewInteractor("slot", "hand", reach.InteractorOptions{
//		Scorer: &reach.SnapScorer{},
//		Policy: button,
//		Source: handTracker,
//	})
//	hand.Enable()
//
//	// once per frame
//	world.Update(dt)
//
// # Lifecycle
//
// An [Interactor] walks Disabled -> Normal -> Hover -> Select and back, one
// edge at a time, publishing Hover, Select, Unselect, and Unhover on the
// interactable it is bound to. While selecting it publishes Move every tick
// with the pose computed by the interactable's [Movement].
//
// An [Interactable] records which interactors hover and select it. Disabling
// it cancels every engaged interactor with exactly one Cancel each before it
// leaves its [Registry], so nothing is left selecting a target that is gone.
//
// # Composition
//
// Interactors are composed, not subclassed: a [Scorer] picks the candidate
// ([SnapScorer] for containment-first snapping with an idle fallback,
// [NearestScorer] for grabbing), a [SelectPolicy] decides when to select
// ([ButtonPolicy], [ExclusivePolicy], [SnapPolicy]), and the selected
// interactable supplies a [Movement] ([DirectMovement], [EaseMovement] via
// [gween], [VelocityMovement], [SelectorMovement]).
//
// Adapters live in subpackages: reach/ecs forwards events into a [Donburi]
// world, and reach/cursor turns the [Ebitengine] mouse into a pose source.
//
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
// [Ebitengine]: https://ebitengine.org
package reach
