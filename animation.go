package cadence

import "sync/atomic"

// Handler is one channel of an Animation: a sequence bound to whatever
// consumes its value. AnimationHandler is the generic implementation; the
// interface lets one Animation mix value types.
type Handler interface {
	// Length is the time of the last keyframe, 0 when there are none.
	Length() float32
	// Interpolate samples at t and forwards the value.
	Interpolate(t float32)
	// Complete marks the handler done and fires its callback, at most once
	// per armed cycle.
	Complete()
	Completed() bool
	// Rearm clears the completed flag so Complete may fire again.
	Rearm()
}

// AnimationHandler binds a Sequence to a value sink.
type AnimationHandler[T any] struct {
	seq        *Sequence[T]
	sink       func(T)
	onComplete func()
	completed  bool
}

// NewHandler creates a handler that forwards seq's values to sink. Both sink
// and onComplete may be nil.
func NewHandler[T any](seq *Sequence[T], sink func(T), onComplete func()) *AnimationHandler[T] {
	return &AnimationHandler[T]{seq: seq, sink: sink, onComplete: onComplete}
}

// Sequence returns the handler's sequence.
func (h *AnimationHandler[T]) Sequence() *Sequence[T] {
	return h.seq
}

// Length returns the time of the sequence's last keyframe.
func (h *AnimationHandler[T]) Length() float32 {
	if h.seq == nil {
		return 0
	}
	return h.seq.Length()
}

// Interpolate samples the sequence at t and forwards the value to the sink.
// An empty sequence forwards nothing.
func (h *AnimationHandler[T]) Interpolate(t float32) {
	if h.seq == nil {
		return
	}
	v, err := h.seq.Interpolate(t)
	if err != nil {
		return
	}
	if h.sink != nil {
		h.sink(v)
	}
}

// Complete marks the handler completed and fires the callback once.
func (h *AnimationHandler[T]) Complete() {
	if h.completed {
		return
	}
	h.completed = true
	if h.onComplete != nil {
		h.onComplete()
	}
}

// Completed reports whether the handler has completed this cycle.
func (h *AnimationHandler[T]) Completed() bool {
	return h.completed
}

// Rearm clears the completed flag.
func (h *AnimationHandler[T]) Rearm() {
	h.completed = false
}

// TimeSource selects the clock an Animation runs on.
type TimeSource uint8

const (
	TimeSourceReal  TimeSource = iota // wall clock; keeps running while the song is paused
	TimeSourceAudio                   // host-driven song position
)

var animationIDCounter atomic.Uint64

func nextAnimationID() uint64 {
	return animationIDCounter.Add(1)
}

// Animation is a playable group of handlers with its own clock. It completes
// when every handler has completed, so channels of different lengths finish
// independently while the animation waits for the slowest one.
//
// Animations are driven by a Manager: Manager.Play binds the clock and
// Manager.Update calls Update once per tick.
type Animation struct {
	// Name is not unique; it groups animations for bulk lookup and removal.
	Name       string
	TimeSource TimeSource
	// Loop restarts the animation from zero instead of stopping on completion.
	Loop bool
	// Speed scales elapsed time. Defaults to 1.
	Speed float32
	// OnComplete fires each time the whole animation completes.
	OnComplete func()

	id       uint64
	handlers []Handler
	playing  bool
	time     float32
	clock    Clock
	manager  *Manager

	// time = base + (clock.Now()-offset) * speed. A speed change moves the
	// anchor to the current time so elapsed time stays continuous.
	offset      float64
	base        float32
	speed       float32
	globalSpeed float32
}

// NewAnimation creates a stopped animation with a fresh ID.
func NewAnimation(name string, handlers ...Handler) *Animation {
	return &Animation{
		Name:        name,
		Speed:       1,
		id:          nextAnimationID(),
		handlers:    handlers,
		globalSpeed: 1,
	}
}

// ID returns the animation's unique identifier.
func (a *Animation) ID() uint64 {
	return a.id
}

// AddHandler appends a handler.
func (a *Animation) AddHandler(h Handler) {
	a.handlers = append(a.handlers, h)
}

// Handlers returns the handler list. The returned slice MUST NOT be mutated.
func (a *Animation) Handlers() []Handler {
	return a.handlers
}

// Length returns the longest handler length.
func (a *Animation) Length() float32 {
	var l float32
	for _, h := range a.handlers {
		l = max(l, h.Length())
	}
	return l
}

// Time returns the elapsed time computed by the last Update.
func (a *Animation) Time() float32 {
	return a.time
}

// Playing reports whether the animation is playing.
func (a *Animation) Playing() bool {
	return a.playing
}

// Completed reports whether every handler has completed.
func (a *Animation) Completed() bool {
	for _, h := range a.handlers {
		if !h.Completed() {
			return false
		}
	}
	return true
}

// Play starts or resumes the animation. Resuming continues from the time it
// was stopped at. No-op while already playing.
func (a *Animation) Play() {
	if a.playing {
		return
	}
	a.playing = true
	a.syncOffset()
}

// Stop pauses the animation without resetting its time.
func (a *Animation) Stop() {
	a.playing = false
}

// ResetTime rewinds to zero and re-arms every handler.
func (a *Animation) ResetTime() {
	a.time = 0
	a.base = 0
	if a.clock != nil {
		a.offset = a.clock.Now()
	}
	for _, h := range a.handlers {
		h.Rearm()
	}
}

// Update advances the animation by reading its clock, drives every handler,
// and reports whether the animation completed on this call. Handlers still
// within their length are interpolated; handlers past it are interpolated
// once at their final time and completed. When all handlers are complete the
// animation stops, fires OnComplete and, with Loop set, starts over.
func (a *Animation) Update() bool {
	if !a.playing || a.clock == nil {
		return false
	}
	now := a.clock.Now()
	if speed := a.effectiveSpeed(); speed != a.speed {
		a.base += float32(now-a.offset) * a.speed
		a.offset = now
		a.speed = speed
	}
	a.time = a.base + float32(now-a.offset)*a.speed

	for _, h := range a.handlers {
		if h.Length() >= a.time {
			h.Rearm()
			h.Interpolate(a.time)
			continue
		}
		if !h.Completed() {
			h.Interpolate(h.Length())
			h.Complete()
		}
	}

	if !a.playing || !a.Completed() {
		return false
	}
	a.playing = false
	if a.OnComplete != nil {
		a.OnComplete()
	}
	if a.Loop {
		a.ResetTime()
		a.Play()
	}
	return true
}

func (a *Animation) bind(c Clock) {
	if a.clock == c {
		return
	}
	a.clock = c
	a.syncOffset()
}

// syncOffset anchors the current time at the clock's present reading.
func (a *Animation) syncOffset() {
	if a.clock == nil {
		return
	}
	a.offset = a.clock.Now()
	a.base = a.time
	a.speed = a.effectiveSpeed()
}

func (a *Animation) effectiveSpeed() float32 {
	return a.Speed * a.globalSpeed
}
