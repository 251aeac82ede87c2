package cadence

import (
	"cmp"
	"slices"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Sequence maps a playback time to a value by interpolating between
// time-sorted keyframes. It keeps a cursor on the segment it sampled last, so
// the common case of slowly increasing (or decreasing) query times costs a
// comparison or two instead of a search.
//
// A Sequence is not safe for concurrent use. Each one belongs to exactly one
// object and is sampled only by that object's tick.
type Sequence[T any] struct {
	keyframes []Keyframe[T]
	states    []activation // per keyframe: Start state of the segment ending there
	lerp      Lerp[T]

	index    int // last keyframe with Time <= prevTime, -1 before the first
	prevTime float32
	primed   bool
	current  T
}

// NewSequence creates a Sequence over keyframes using lerp for the value type.
// The keyframes are copied and sorted by time; when two share a time the one
// given first is kept.
func NewSequence[T any](lerp Lerp[T], keyframes ...Keyframe[T]) *Sequence[T] {
	if lerp == nil {
		panic("cadence: sequence needs a lerp")
	}
	s := &Sequence[T]{lerp: lerp}
	s.SetKeyframes(keyframes...)
	return s
}

// NewFloatSequence creates a scalar Sequence (opacity, hue, rotation, ...).
func NewFloatSequence(keyframes ...Keyframe[float32]) *Sequence[float32] {
	return NewSequence(LerpFloat, keyframes...)
}

// NewVec2Sequence creates a 2D vector Sequence (scale).
func NewVec2Sequence(keyframes ...Keyframe[mgl32.Vec2]) *Sequence[mgl32.Vec2] {
	return NewSequence(LerpVec2, keyframes...)
}

// NewVec3Sequence creates a 3D vector Sequence (position with depth).
func NewVec3Sequence(keyframes ...Keyframe[mgl32.Vec3]) *Sequence[mgl32.Vec3] {
	return NewSequence(LerpVec3, keyframes...)
}

// NewColorSequence creates a Color Sequence.
func NewColorSequence(keyframes ...Keyframe[Color]) *Sequence[Color] {
	return NewSequence(LerpColor, keyframes...)
}

// NewQuatSequence creates an orientation Sequence using spherical lerp.
func NewQuatSequence(keyframes ...Keyframe[mgl32.Quat]) *Sequence[mgl32.Quat] {
	return NewSequence(LerpQuat, keyframes...)
}

// SetKeyframes replaces the keyframe snapshot, for example when a network or
// script event rewrites an object's animation mid-level. The cursor is
// dropped and every Start hook is armed again.
func (s *Sequence[T]) SetKeyframes(keyframes ...Keyframe[T]) {
	kfs := slices.Clone(keyframes)
	slices.SortStableFunc(kfs, func(a, b Keyframe[T]) int {
		return cmp.Compare(a.Time, b.Time)
	})
	kfs = slices.CompactFunc(kfs, func(a, b Keyframe[T]) bool {
		return a.Time == b.Time
	})

	s.keyframes = kfs
	s.states = make([]activation, len(kfs))
	for i := range kfs {
		if kfs[i].Start != nil {
			s.states[i] = activationArmed
		}
	}
	s.index = 0
	s.prevTime = 0
	s.primed = false
}

// Len returns the number of keyframes.
func (s *Sequence[T]) Len() int {
	return len(s.keyframes)
}

// Keyframe returns the i-th keyframe in time order.
func (s *Sequence[T]) Keyframe(i int) Keyframe[T] {
	return s.keyframes[i]
}

// Keyframes returns the sorted keyframes. The returned slice MUST NOT be mutated.
func (s *Sequence[T]) Keyframes() []Keyframe[T] {
	return s.keyframes
}

// Length returns the time of the last keyframe, or 0 for an empty Sequence.
func (s *Sequence[T]) Length() float32 {
	if len(s.keyframes) == 0 {
		return 0
	}
	return s.keyframes[len(s.keyframes)-1].Time
}

// Value returns the value produced by the most recent Interpolate.
func (s *Sequence[T]) Value() T {
	return s.current
}

// Search returns the index of the last keyframe whose time is <= time, or -1
// if time precedes the first keyframe. It does not touch the cursor.
func (s *Sequence[T]) Search(time float32) int {
	return sort.Search(len(s.keyframes), func(i int) bool {
		return s.keyframes[i].Time > time
	}) - 1
}

// Interpolate returns the value at time. Times before the first keyframe
// return the first value and times after the last return the last value; a
// single keyframe always returns its own value.
func (s *Sequence[T]) Interpolate(time float32) (T, error) {
	n := len(s.keyframes)
	if n == 0 {
		var zero T
		return zero, ErrEmptySequence
	}
	if n == 1 {
		s.current = s.keyframes[0].Value
		return s.current, nil
	}

	first := !s.primed
	switch {
	case first:
		s.index = s.Search(time)
		s.primed = true
	case time >= s.prevTime:
		for s.index+1 < n && s.keyframes[s.index+1].Time <= time {
			s.index++
		}
	default:
		for s.index >= 0 && s.keyframes[s.index].Time > time {
			s.index--
		}
	}
	s.prevTime = time

	if s.index < 0 {
		s.current = s.keyframes[0].Value
		return s.current, nil
	}
	if s.index >= n-1 {
		s.current = s.keyframes[n-1].Value
		return s.current, nil
	}

	prev := &s.keyframes[s.index]
	next := &s.keyframes[s.index+1]
	if s.states[s.index+1] == activationArmed {
		s.states[s.index+1] = activationActive
		next.Start(*prev, s.current, time)
	}

	t := segmentProgress(prev.Time, next.Time, time, first)
	s.current = s.lerp(prev.Value, next.Value, prev.ease(t))
	return s.current, nil
}

// Rearm returns every fired Start hook to Armed and drops the cursor so the
// next sample searches from scratch. Called when the owner is deactivated.
func (s *Sequence[T]) Rearm() {
	for i, st := range s.states {
		if st == activationActive {
			s.states[i] = activationArmed
		}
	}
	s.primed = false
}

// segmentProgress is the inverse lerp of time across [start, end]. A
// zero-width segment yields 1 on the first sample and 0 afterwards rather
// than NaN.
func segmentProgress(start, end, time float32, first bool) float32 {
	if start == end {
		if first {
			return 1
		}
		return 0
	}
	return (time - start) / (end - start)
}
