package cadence

// StartFunc is called once when interpolation first enters the segment that
// ends at its keyframe. prev is the keyframe the segment starts from and
// current is the value the Sequence produced on its previous sample, which
// lets relative or homing variants capture a baseline.
type StartFunc[T any] func(prev Keyframe[T], current T, time float32)

// Keyframe is a single (time, value, ease) sample point. Ease shapes the
// segment from this keyframe to the next one; nil means Linear.
type Keyframe[T any] struct {
	Time  float32
	Value T
	Ease  EaseFunc
	Start StartFunc[T]
}

func (k *Keyframe[T]) ease(t float32) float32 {
	if k.Ease == nil {
		return t
	}
	return k.Ease(t)
}

// activation is the per-segment state of a keyframe's Start hook.
//
//	Inactive: the keyframe has no hook
//	Armed:    the hook fires the next time the cursor enters the segment
//	Active:   the hook already fired; Rearm moves it back to Armed
type activation uint8

const (
	activationInactive activation = iota
	activationArmed
	activationActive
)
