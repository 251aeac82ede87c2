package cadence

import "github.com/go-gl/mathgl/mgl32"

// Channel indexes the per-channel settings of a ParentLink.
type Channel uint8

const (
	ChannelPosition Channel = iota
	ChannelScale
	ChannelRotation

	channelCount
)

// ParentLink is one level of an object's ancestor chain. It carries the
// ancestor's own position, scale and rotation sequences plus the settings
// that govern how much of its parent reaches it.
type ParentLink struct {
	// ID is the owning object's ID.
	ID string

	Position *Sequence[mgl32.Vec3]
	Scale    *Sequence[mgl32.Vec2]
	Rotation *Sequence[float32]

	// TimeOffset is the owning object's start time. Sequences are sampled
	// relative to it.
	TimeOffset float32

	// Per-channel settings declared by the owning object. They govern how
	// the next link outward (the owner's parent) is sampled, not this link.
	Animate  [channelCount]bool
	Additive [channelCount]bool
	Offset   [channelCount]float32
	Parallax [channelCount]float32

	// Desync freezes every link beyond this one at its current transform
	// once the chain spawns.
	Desync bool

	// CameraParent marks the outermost link of a chain anchored to the
	// camera. CameraParallax scales how much of the camera's position, zoom
	// and rotation reaches the chain.
	CameraParent   bool
	CameraParallax [channelCount]float32

	// Local is the transform computed on the last walk.
	Local Transform

	lastTimeOffset float32
	primed         bool
}

// NewParentLink creates a link with default keyframes: origin position, unit
// scale and zero rotation, all channels animated at full parallax.
func NewParentLink(id string) *ParentLink {
	l := &ParentLink{
		ID:       id,
		Position: NewVec3Sequence(Keyframe[mgl32.Vec3]{}),
		Scale:    NewVec2Sequence(Keyframe[mgl32.Vec2]{Value: mgl32.Vec2{1, 1}}),
		Rotation: NewFloatSequence(Keyframe[float32]{}),
		Local:    IdentityTransform,
	}
	for ch := range channelCount {
		l.Animate[ch] = true
		l.Parallax[ch] = 1
		l.CameraParallax[ch] = 1
	}
	return l
}

// timeOffsetChanged reports whether TimeOffset moved since the last call and
// records the current value.
func (l *ParentLink) timeOffsetChanged() bool {
	if !l.primed {
		l.primed = true
		l.lastTimeOffset = l.TimeOffset
		return false
	}
	if l.TimeOffset == l.lastTimeOffset {
		return false
	}
	l.lastTimeOffset = l.TimeOffset
	return true
}

// rearm returns every Start hook on the link's sequences to Armed.
func (l *ParentLink) rearm() {
	rearmSequence(l.Position)
	rearmSequence(l.Scale)
	rearmSequence(l.Rotation)
}

// clear drops the sequences.
func (l *ParentLink) clear() {
	l.Position = nil
	l.Scale = nil
	l.Rotation = nil
}
