// Package cadence is a keyframe animation core and parent-chain compositor
// for rhythm-game levels on [Ebitengine].
//
// Every visible object in a level is driven by time-stamped keyframes and
// inherits motion through a chain of ancestors, each with its own start time,
// offsets and parallax. Cadence samples those keyframes once per frame and
// composes the result into a world transform and a color.
//
// # Quick start
//
// Describe the level as [ObjectData] records, build it, attach visuals and
// hand the scene to [Run]:
//
//	b := cadence.NewBuilder(palette)
//	b.Add(records...)
//
//	scene := cadence.NewScene(cadence.DefaultConfig())
//	if err := scene.LoadLevel(b); err != nil {
//		log.Printf("level: %v", err) // truncated chains still load
//	}
//	r := cadence.NewRenderer()
//	for _, o := range scene.Objects() {
//		o.Visual = r.NewSprite(1, 1)
//	}
//	rc := cadence.RunConfigFrom(cfg)
//	rc.Renderer = r
//	cadence.Run(scene, rc)
//
// For full control, drive [Scene.Update] yourself with the song position:
//
//	func (g *Game) Update() error {
//		g.scene.Update(float32(g.player.Position().Seconds()))
//		return nil
//	}
//
// # Sequences
//
// A [Sequence] maps time to a value through sorted [Keyframe]s. The ease of
// a keyframe shapes the segment that starts at it. Sampling keeps a cursor,
// so playback that moves forward or backward a little costs a step or two
// instead of a search. Values before the first keyframe clamp to it and
// values after the last hold it.
//
//	s := cadence.NewFloatSequence(
//		cadence.Keyframe[float32]{Time: 0, Value: 0, Ease: cadence.MustEase("OutCubic")},
//		cadence.Keyframe[float32]{Time: 2, Value: 10},
//	)
//	v, err := s.Interpolate(1)
//
// Eases are looked up by name with [Ease]; unknown names fail with
// [*UnknownEaseError]. [BlendFamilies] blends the Quad..Quint ladder for a
// continuous ease strength.
//
// # Animations
//
// An [Animation] groups [Handler]s that forward sequence values to sinks.
// Handlers complete independently; the animation completes with its slowest
// handler and restarts when Loop is set. A [Manager] owns the animations of
// one session and advances them once per tick on a wall clock or on the
// host-driven audio clock:
//
//	fade := cadence.NewAnimation("fade", cadence.NewHandler(seq, setAlpha, nil))
//	scene.Manager.Play(fade)
//
// # Parent chains
//
// A [LevelObject] holds its own [ParentLink] at index 0 followed by one link
// per ancestor. Each tick walks the chain from the object's own link outward.
// A link's animate, offset and parallax settings govern how its parent is
// sampled, so a child decides how much of each ancestor it follows; additive
// offsets accumulate up the chain. When a link marked Desync first samples,
// everything beyond it freezes at its current transform until a start time
// in the chain changes. Chains whose outermost
// link is camera-parented follow the live [Camera].
//
// A failing object never stops the tick: channels that cannot be sampled
// keep their last value, and a panicking object is drawn at its own local
// transform and reported once.
//
// # Concurrency
//
// Set Config.Workers above 1 to interpolate objects on a worker pool. Each
// object is processed by exactly one worker per tick; the Builder gives every
// object its own copy of each ancestor's sequences, so no cursor is shared.
//
// # Logging and configuration
//
// Cadence logs through [zerolog]; replace the logger with [SetLogger].
// [LoadConfig] reads YAML settings over [DefaultConfig].
//
// # ECS integration
//
// Set an [EntityStore] on the scene to receive animation and object
// lifecycle [Event]s. The ecs subpackage bridges them into a Donburi world.
//
// [Ebitengine]: https://ebitengine.org
// [zerolog]: https://github.com/rs/zerolog
package cadence
