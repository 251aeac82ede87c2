package cadence

import "errors"

// Visual is the render-side handle a LevelObject drives. The compositor only
// pushes values into it; it never reads them back.
type Visual interface {
	SetColor(c Color)
	// SetTransform receives the world affine matrix [a, b, c, d, tx, ty] and
	// the accumulated depth.
	SetTransform(world [6]float64, z float32)
	SetVisible(visible bool)
}

// GradientVisual is implemented by visuals that render a two-color gradient.
// Objects with a GradientColor sequence call SetGradient instead of SetColor.
type GradientVisual interface {
	Visual
	SetGradient(a, b Color)
}

// LevelObject is a leaf of the level scene: a visual driven by its own
// keyframes composed through its ancestor chain.
type LevelObject struct {
	ID   string
	Name string

	// StartTime and KillTime bound the object's lifetime in level time. A
	// KillTime at or before StartTime means the object never dies.
	StartTime float32
	KillTime  float32
	// Depth is added to the accumulated chain depth.
	Depth float32

	Visual Visual

	// Color channels, sampled at level time minus StartTime. Any of them may
	// be nil, in which case the channel keeps its default.
	Color           *Sequence[Color]
	Opacity         *Sequence[float32]
	Hue             *Sequence[float32]
	Saturation      *Sequence[float32]
	Value           *Sequence[float32]
	GradientColor   *Sequence[Color]
	GradientOpacity *Sequence[float32]

	// PrefabOffset is the static pivot the chain hangs from.
	PrefabOffset Transform

	chain  []*ParentLink
	camera *Camera

	desyncParentIndex int
	syncParentIndex   int
	spawned           bool
	active            bool

	world [6]float64
	z     float32

	baseColor       Color
	gradColor       Color
	opacity         float32
	gradOpacity     float32
	hue, sat, value float32
	color           Color

	// set by the scene around each tick
	err    error
	failed bool
}

// NewLevelObject creates an inactive object whose chain holds only its own
// default link.
func NewLevelObject(id, name string) *LevelObject {
	o := &LevelObject{
		ID:           id,
		Name:         name,
		PrefabOffset: IdentityTransform,
		world:        identityAffine,
		baseColor:    ColorWhite,
		gradColor:    ColorWhite,
		opacity:      1,
		gradOpacity:  1,
		color:        ColorWhite,
	}
	o.chain = []*ParentLink{NewParentLink(id)}
	return o
}

// Link returns the object's own link (chain index 0), or nil after Destroy.
func (o *LevelObject) Link() *ParentLink {
	if len(o.chain) == 0 {
		return nil
	}
	return o.chain[0]
}

// Links returns the chain, own link first. The returned slice MUST NOT be
// mutated.
func (o *LevelObject) Links() []*ParentLink {
	return o.chain
}

// SetChain replaces the chain. links[0] must be the object's own link and
// each following entry its next ancestor. The desync capture is re-armed.
func (o *LevelObject) SetChain(links []*ParentLink) {
	o.chain = links
	o.spawned = false
	o.desyncParentIndex = 0
	o.syncParentIndex = 0
}

// SetCamera sets the camera a camera-parented chain follows.
func (o *LevelObject) SetCamera(c *Camera) {
	o.camera = c
}

// SetStartTime moves the object's start time. Its own link follows, which
// re-arms the desync capture on the next tick.
func (o *LevelObject) SetStartTime(t float32) {
	o.StartTime = t
	if len(o.chain) > 0 {
		o.chain[0].TimeOffset = t
	}
}

// AliveAt reports whether t falls inside the object's lifetime window.
func (o *LevelObject) AliveAt(t float32) bool {
	if t < o.StartTime {
		return false
	}
	return o.KillTime <= o.StartTime || t < o.KillTime
}

// Interpolate computes the object's color and world transform for the given
// level time and pushes them to the Visual. Channels that fail to sample hold
// their previous value; the failures are returned joined.
func (o *LevelObject) Interpolate(globalTime float32) error {
	if o.chain == nil {
		return nil
	}
	colorErr := o.interpolateColor(globalTime - o.StartTime)
	chainErr := o.walkChain(globalTime)
	o.compose()
	if o.Visual != nil {
		o.Visual.SetTransform(o.world, o.z)
	}
	return errors.Join(colorErr, chainErr)
}

func (o *LevelObject) interpolateColor(t float32) error {
	err := errors.Join(
		sampleInto(o.Color, t, &o.baseColor),
		sampleInto(o.Opacity, t, &o.opacity),
		sampleInto(o.Hue, t, &o.hue),
		sampleInto(o.Saturation, t, &o.sat),
		sampleInto(o.Value, t, &o.value),
	)

	o.color = o.shade(o.baseColor, o.opacity)
	if o.Visual == nil {
		return err
	}

	if o.GradientColor != nil {
		if gv, ok := o.Visual.(GradientVisual); ok {
			err = errors.Join(err,
				sampleInto(o.GradientColor, t, &o.gradColor),
				sampleInto(o.GradientOpacity, t, &o.gradOpacity),
			)
			gv.SetGradient(o.color, o.shade(o.gradColor, o.gradOpacity))
			return err
		}
	}
	o.Visual.SetColor(o.color)
	return err
}

// shade applies the HSV shift and the opacity factor to c.
func (o *LevelObject) shade(c Color, opacity float32) Color {
	c = ShiftHSV(c, float64(o.hue), float64(o.sat), float64(o.value))
	c.A *= OpacityFactor(opacity)
	return c
}

// sampleInto samples s at t into dst. A nil Sequence is an unused channel
// and leaves dst alone; a failed sample also leaves dst alone.
func sampleInto[T any](s *Sequence[T], t float32, dst *T) error {
	if s == nil {
		return nil
	}
	v, err := s.Interpolate(t)
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

// SetActive shows or hides the object. Deactivation re-arms every Start hook
// so a later reactivation does not resume a transition midway; either way
// the desync capture is re-armed.
func (o *LevelObject) SetActive(active bool) {
	if o.active == active {
		return
	}
	o.active = active
	o.spawned = false
	if !active {
		o.rearm()
	}
	if o.Visual != nil {
		o.Visual.SetVisible(active)
	}
}

func (o *LevelObject) rearm() {
	for _, l := range o.chain {
		l.rearm()
	}
	rearmSequence(o.Color)
	rearmSequence(o.GradientColor)
	rearmSequence(o.Opacity)
	rearmSequence(o.Hue)
	rearmSequence(o.Saturation)
	rearmSequence(o.Value)
	rearmSequence(o.GradientOpacity)
}

func rearmSequence[T any](s *Sequence[T]) {
	if s != nil {
		s.Rearm()
	}
}

// Destroy tears down the chain and color sequences. A destroyed object
// ignores Interpolate.
func (o *LevelObject) Destroy() {
	for _, l := range o.chain {
		l.clear()
	}
	clear(o.chain)
	o.chain = nil
	o.Color, o.GradientColor = nil, nil
	o.Opacity, o.Hue, o.Saturation, o.Value, o.GradientOpacity = nil, nil, nil, nil, nil
	o.Visual = nil
}

// Active reports whether the object is inside its lifetime window.
func (o *LevelObject) Active() bool { return o.active }

// Spawned reports whether a desync link has captured the chain.
func (o *LevelObject) Spawned() bool { return o.spawned }

// DesyncParentIndex is the end of the live window once spawned.
func (o *LevelObject) DesyncParentIndex() int { return o.desyncParentIndex }

// SyncParentIndex is the outermost link considered on the last walk.
func (o *LevelObject) SyncParentIndex() int { return o.syncParentIndex }

// WorldTransform returns the world matrix from the last Interpolate.
func (o *LevelObject) WorldTransform() [6]float64 { return o.world }

// Z returns the accumulated depth from the last Interpolate.
func (o *LevelObject) Z() float32 { return o.z }

// CurrentColor returns the shaded base color from the last Interpolate.
func (o *LevelObject) CurrentColor() Color { return o.color }

// Err returns the failure recorded on the object's last tick, if any.
func (o *LevelObject) Err() error { return o.err }
