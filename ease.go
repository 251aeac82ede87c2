package cadence

import (
	"sort"

	"github.com/tanema/gween/ease"
)

// EaseFunc maps normalized progress t to eased progress. Built-in curves map
// 0 to 0 and 1 to 1; values outside [0, 1] are only meaningful where the
// formula extends naturally, so callers clamp when they need to.
type EaseFunc func(t float32) float32

// fromTween adapts a gween tween function to unit begin, change and duration.
func fromTween(fn ease.TweenFunc) EaseFunc {
	return func(t float32) float32 {
		return fn(t, 0, 1, 1)
	}
}

// Linear returns t unchanged.
func Linear(t float32) float32 {
	return t
}

// Instant holds the start value for the whole segment and snaps to the end
// value once progress reaches 1.
func Instant(t float32) float32 {
	if t >= 1 {
		return 1
	}
	return 0
}

// eases is the name registry. It is populated at init and by RegisterEase;
// lookups during a tick are read-only.
var eases = map[string]EaseFunc{
	"Linear":  Linear,
	"Instant": Instant,

	"InQuad":    fromTween(ease.InQuad),
	"OutQuad":   fromTween(ease.OutQuad),
	"InOutQuad": fromTween(ease.InOutQuad),
	"OutInQuad": fromTween(ease.OutInQuad),

	"InCubic":    fromTween(ease.InCubic),
	"OutCubic":   fromTween(ease.OutCubic),
	"InOutCubic": fromTween(ease.InOutCubic),
	"OutInCubic": fromTween(ease.OutInCubic),

	"InQuart":    fromTween(ease.InQuart),
	"OutQuart":   fromTween(ease.OutQuart),
	"InOutQuart": fromTween(ease.InOutQuart),
	"OutInQuart": fromTween(ease.OutInQuart),

	"InQuint":    fromTween(ease.InQuint),
	"OutQuint":   fromTween(ease.OutQuint),
	"InOutQuint": fromTween(ease.InOutQuint),
	"OutInQuint": fromTween(ease.OutInQuint),

	"InSine":    fromTween(ease.InSine),
	"OutSine":   fromTween(ease.OutSine),
	"InOutSine": fromTween(ease.InOutSine),
	"OutInSine": fromTween(ease.OutInSine),

	"InExpo":    fromTween(ease.InExpo),
	"OutExpo":   fromTween(ease.OutExpo),
	"InOutExpo": fromTween(ease.InOutExpo),
	"OutInExpo": fromTween(ease.OutInExpo),

	"InCirc":    fromTween(ease.InCirc),
	"OutCirc":   fromTween(ease.OutCirc),
	"InOutCirc": fromTween(ease.InOutCirc),
	"OutInCirc": fromTween(ease.OutInCirc),

	"InElastic":    fromTween(ease.InElastic),
	"OutElastic":   fromTween(ease.OutElastic),
	"InOutElastic": fromTween(ease.InOutElastic),
	"OutInElastic": fromTween(ease.OutInElastic),

	"InBack":    fromTween(ease.InBack),
	"OutBack":   fromTween(ease.OutBack),
	"InOutBack": fromTween(ease.InOutBack),
	"OutInBack": fromTween(ease.OutInBack),

	"InBounce":    fromTween(ease.InBounce),
	"OutBounce":   fromTween(ease.OutBounce),
	"InOutBounce": fromTween(ease.InOutBounce),
	"OutInBounce": fromTween(ease.OutInBounce),
}

// Ease returns the curve registered under name. An absent name is an error;
// there is no fallback to Linear.
func Ease(name string) (EaseFunc, error) {
	fn, ok := eases[name]
	if !ok {
		return nil, &UnknownEaseError{Name: name}
	}
	return fn, nil
}

// MustEase is like Ease but panics on an unknown name. Intended for
// package-level variables and tests.
func MustEase(name string) EaseFunc {
	fn, err := Ease(name)
	if err != nil {
		panic(err)
	}
	return fn
}

// Evaluate applies the named curve to t.
func Evaluate(name string, t float32) (float32, error) {
	fn, err := Ease(name)
	if err != nil {
		return 0, err
	}
	return fn(t), nil
}

// RegisterEase adds or replaces a named curve. Not safe to call while a
// Scene is ticking on worker goroutines.
func RegisterEase(name string, fn EaseFunc) {
	if fn == nil {
		panic("cadence: cannot register nil ease")
	}
	eases[name] = fn
}

// EaseNames returns all registered names in sorted order.
func EaseNames() []string {
	names := make([]string, 0, len(eases))
	for name := range eases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EaseDirection selects which variant of a curve family BlendFamilies uses.
type EaseDirection uint8

const (
	EaseIn    EaseDirection = iota // slow start
	EaseOut                        // slow end
	EaseInOut                      // slow start and end
)

// maxEaseStrength is the top of the Linear→Quint ladder.
const maxEaseStrength = 4

// easeLadders holds Linear, Quad, Cubic, Quart, Quint per direction.
var easeLadders = [3][maxEaseStrength + 1]EaseFunc{
	EaseIn:    easeLadder("In"),
	EaseOut:   easeLadder("Out"),
	EaseInOut: easeLadder("InOut"),
}

func easeLadder(prefix string) [maxEaseStrength + 1]EaseFunc {
	return [maxEaseStrength + 1]EaseFunc{
		Linear,
		eases[prefix+"Quad"],
		eases[prefix+"Cubic"],
		eases[prefix+"Quart"],
		eases[prefix+"Quint"],
	}
}

// BlendFamilies evaluates a continuous ease intensity. strength is clamped to
// [0, 4]; integer strengths select Linear, Quad, Cubic, Quart or Quint
// exactly, and fractional strengths blend linearly between the two
// neighbouring curves.
func BlendFamilies(dir EaseDirection, t, strength float32) float32 {
	if dir > EaseInOut {
		dir = EaseIn
	}
	ladder := &easeLadders[dir]
	if !(strength > 0) {
		return ladder[0](t)
	}
	if strength >= maxEaseStrength {
		return ladder[maxEaseStrength](t)
	}
	lo := int(strength)
	frac := strength - float32(lo)
	a := ladder[lo](t)
	if frac == 0 {
		return a
	}
	b := ladder[lo+1](t)
	return a + (b-a)*frac
}
