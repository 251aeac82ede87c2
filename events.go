package cadence

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// EventKeyframe is one authored keyframe record as the level model hands it
// over: a time, the channel's value components, an ease name and whether the
// values are relative to the previous keyframe's resolved value.
type EventKeyframe struct {
	Time     float32
	Values   []float32
	Ease     string
	Relative bool
}

// Color event values are laid out as
//
//	[slot, opacity, hue, saturation, value, gradientSlot, gradientOpacity]
//
// with trailing components optional.
const (
	colorSlot = iota
	colorOpacity
	colorHue
	colorSaturation
	colorValue
	colorGradientSlot
	colorGradientOpacity
)

func component(vals []float32, i int, def float32) float32 {
	if i < len(vals) {
		return vals[i]
	}
	return def
}

// resolveEase maps an event's ease name to a function; the empty name is
// Linear.
func resolveEase(name string) (EaseFunc, error) {
	if name == "" {
		return Linear, nil
	}
	return Ease(name)
}

// resolveEases looks up the ease of every record once so several channels
// built from the same records can share the result.
func resolveEases(events []EventKeyframe) ([]EaseFunc, error) {
	eases := make([]EaseFunc, len(events))
	for i, ev := range events {
		fn, err := resolveEase(ev.Ease)
		if err != nil {
			return nil, fmt.Errorf("keyframe %d: %w", i, err)
		}
		eases[i] = fn
	}
	return eases, nil
}

// buildKeyframes turns event records into keyframes with already resolved
// eases. value builds the channel value from the record's components and, for
// relative records, the previous resolved value. An empty list yields the
// single default keyframe.
func buildKeyframes[T any](events []EventKeyframe, eases []EaseFunc, def T, value func(ev EventKeyframe, prev T) T) []Keyframe[T] {
	if len(events) == 0 {
		return []Keyframe[T]{{Value: def, Ease: Linear}}
	}
	kfs := make([]Keyframe[T], 0, len(events))
	prev := def
	for i, ev := range events {
		v := value(ev, prev)
		kfs = append(kfs, Keyframe[T]{Time: ev.Time, Value: v, Ease: eases[i]})
		prev = v
	}
	return kfs
}

// convertKeyframes resolves the eases of events and builds one channel.
func convertKeyframes[T any](events []EventKeyframe, def T, value func(ev EventKeyframe, prev T) T) ([]Keyframe[T], error) {
	eases, err := resolveEases(events)
	if err != nil {
		return nil, err
	}
	return buildKeyframes(events, eases, def, value), nil
}

// PositionKeyframes converts position records ([x, y] or [x, y, z]).
func PositionKeyframes(events []EventKeyframe) ([]Keyframe[mgl32.Vec3], error) {
	return convertKeyframes(events, mgl32.Vec3{}, func(ev EventKeyframe, prev mgl32.Vec3) mgl32.Vec3 {
		v := mgl32.Vec3{component(ev.Values, 0, 0), component(ev.Values, 1, 0), component(ev.Values, 2, 0)}
		if ev.Relative {
			v = v.Add(prev)
		}
		return v
	})
}

// ScaleKeyframes converts scale records ([s] for uniform or [sx, sy]).
func ScaleKeyframes(events []EventKeyframe) ([]Keyframe[mgl32.Vec2], error) {
	return convertKeyframes(events, mgl32.Vec2{1, 1}, func(ev EventKeyframe, prev mgl32.Vec2) mgl32.Vec2 {
		sx := component(ev.Values, 0, 1)
		v := mgl32.Vec2{sx, component(ev.Values, 1, sx)}
		if ev.Relative {
			v = v.Add(prev)
		}
		return v
	})
}

// RotationKeyframes converts rotation records ([degrees]).
func RotationKeyframes(events []EventKeyframe) ([]Keyframe[float32], error) {
	return convertKeyframes(events, 0, func(ev EventKeyframe, prev float32) float32 {
		v := component(ev.Values, 0, 0)
		if ev.Relative {
			v += prev
		}
		return v
	})
}

// Palette resolves color slots. Slots outside the palette resolve to white.
type Palette []Color

// At returns the color in slot i.
func (p Palette) At(i int) Color {
	if i < 0 || i >= len(p) {
		return ColorWhite
	}
	return p[i]
}

// ColorChannels is the set of sequences one list of color records expands to.
type ColorChannels struct {
	Color           *Sequence[Color]
	Opacity         *Sequence[float32]
	Hue             *Sequence[float32]
	Saturation      *Sequence[float32]
	Value           *Sequence[float32]
	GradientColor   *Sequence[Color]
	GradientOpacity *Sequence[float32]
}

// ColorKeyframes expands color records into per-channel sequences using
// palette for the slots. Gradient sequences are only built when gradient is
// set. Color records are never relative.
func ColorKeyframes(events []EventKeyframe, palette Palette, gradient bool) (ColorChannels, error) {
	var out ColorChannels
	slot := func(i int) func(EventKeyframe, Color) Color {
		return func(ev EventKeyframe, _ Color) Color {
			return palette.At(int(component(ev.Values, i, 0)))
		}
	}
	scalar := func(i int, def float32) func(EventKeyframe, float32) float32 {
		return func(ev EventKeyframe, _ float32) float32 {
			return component(ev.Values, i, def)
		}
	}

	eases, err := resolveEases(events)
	if err != nil {
		return out, fmt.Errorf("color: %w", err)
	}
	out.Color = NewColorSequence(buildKeyframes(events, eases, palette.At(0), slot(colorSlot))...)
	out.Opacity = NewFloatSequence(buildKeyframes(events, eases, 1, scalar(colorOpacity, 1))...)
	out.Hue = NewFloatSequence(buildKeyframes(events, eases, 0, scalar(colorHue, 0))...)
	out.Saturation = NewFloatSequence(buildKeyframes(events, eases, 0, scalar(colorSaturation, 0))...)
	out.Value = NewFloatSequence(buildKeyframes(events, eases, 0, scalar(colorValue, 0))...)

	if gradient {
		out.GradientColor = NewColorSequence(buildKeyframes(events, eases, palette.At(0), slot(colorGradientSlot))...)
		out.GradientOpacity = NewFloatSequence(buildKeyframes(events, eases, 1, scalar(colorGradientOpacity, 1))...)
	}
	return out, nil
}
