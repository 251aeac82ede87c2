package cadence

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// chainCarry holds what a link hands to the next link outward: its declared
// animate flags, parallax and offsets, plus the additive offsets summed over
// every additive link visited so far.
type chainCarry struct {
	animate  [channelCount]bool
	parallax [channelCount]float32
	offset   [channelCount]float32
	added    [channelCount]float32
}

func newChainCarry() chainCarry {
	return chainCarry{
		animate:  [channelCount]bool{true, true, true},
		parallax: [channelCount]float32{1, 1, 1},
	}
}

// take folds link l's declared settings into the carry for l's parent.
func (c *chainCarry) take(l *ParentLink) {
	for ch := range channelCount {
		c.animate[ch] = l.Animate[ch]
		c.parallax[ch] = l.Parallax[ch]
		if l.Additive[ch] {
			c.added[ch] += l.Offset[ch]
		} else {
			c.offset[ch] = l.Offset[ch]
		}
	}
}

// sampleTime is the time a channel of l is sampled at.
func (c *chainCarry) sampleTime(l *ParentLink, globalTime float32, ch Channel) float32 {
	return globalTime - l.TimeOffset - (c.offset[ch] + c.added[ch])
}

// sample writes l's local transform for globalTime. A channel that fails to
// sample keeps its previous value; the first failure is returned.
func (l *ParentLink) sample(globalTime float32, c *chainCarry) error {
	var firstErr error
	fail := func(ch string, err error) {
		if firstErr == nil {
			firstErr = fmt.Errorf("link %q %s: %w", l.ID, ch, err)
		}
	}

	if c.animate[ChannelPosition] {
		p, err := sampleSequence(l.Position, c.sampleTime(l, globalTime, ChannelPosition))
		if err != nil {
			fail("position", err)
		} else {
			k := c.parallax[ChannelPosition]
			l.Local.Position = mgl32.Vec3{p[0] * k, p[1] * k, p[2]}
		}
	} else {
		l.Local.Position = mgl32.Vec3{}
	}

	if c.animate[ChannelScale] {
		s, err := sampleSequence(l.Scale, c.sampleTime(l, globalTime, ChannelScale))
		if err != nil {
			fail("scale", err)
		} else {
			l.Local.Scale = s.Mul(c.parallax[ChannelScale])
		}
	} else {
		l.Local.Scale = mgl32.Vec2{1, 1}
	}

	if c.animate[ChannelRotation] {
		r, err := sampleSequence(l.Rotation, c.sampleTime(l, globalTime, ChannelRotation))
		if err != nil {
			fail("rotation", err)
		} else {
			l.Local.Rotation = r * c.parallax[ChannelRotation]
		}
	} else {
		l.Local.Rotation = 0
	}
	return firstErr
}

// sampleSequence is Sequence.Interpolate that treats a nil Sequence as empty.
func sampleSequence[T any](s *Sequence[T], t float32) (T, error) {
	if s == nil {
		var zero T
		return zero, ErrEmptySequence
	}
	return s.Interpolate(t)
}

// walkChain recomputes the local transforms of the links in the live window,
// walking from the object's own link outward. Each link's declared settings
// govern how its parent is sampled. Once a desync link spawns, the window
// shrinks to [0, desyncParentIndex) and ancestors beyond it hold their last
// transform until some link's start time changes.
func (o *LevelObject) walkChain(globalTime float32) error {
	n := len(o.chain)
	if n == 0 {
		return nil
	}
	for _, l := range o.chain {
		if l.timeOffsetChanged() {
			o.spawned = false
		}
	}

	limit := n
	if o.spawned {
		limit = min(o.desyncParentIndex, n)
	}
	o.syncParentIndex = limit - 1

	var firstErr error
	carry := newChainCarry()
	for i := range limit {
		l := o.chain[i]
		if err := l.sample(globalTime, &carry); err != nil && firstErr == nil {
			firstErr = err
		}
		if l.Desync && !o.spawned {
			o.spawned = true
			o.desyncParentIndex = i + 1
			o.syncParentIndex = i
		}
		carry.take(l)
	}
	return firstErr
}

// topTransform is the pivot the whole chain hangs from. Camera-parented
// chains follow the live camera, scaled by the outermost link's camera
// parallax; everything else hangs from the static prefab offset.
func (o *LevelObject) topTransform() Transform {
	top := o.PrefabOffset
	if len(o.chain) == 0 || o.camera == nil {
		return top
	}
	outer := o.chain[len(o.chain)-1]
	if !outer.CameraParent {
		return top
	}
	cam := o.camera
	pp := outer.CameraParallax[ChannelPosition]
	top.Position[0] += float32(cam.X) * pp
	top.Position[1] += float32(cam.Y) * pp
	if cam.Zoom != 0 {
		k := 1 + (float32(1/cam.Zoom)-1)*outer.CameraParallax[ChannelScale]
		top.Scale = top.Scale.Mul(k)
	}
	top.Rotation += float32(cam.Rotation) * outer.CameraParallax[ChannelRotation]
	return top
}

// compose multiplies top ∘ link[n-1] ∘ ... ∘ link[0] into the world matrix and
// sums depth down the chain.
func (o *LevelObject) compose() {
	top := o.topTransform()
	m := top.Affine()
	z := top.Position[2]
	for i := len(o.chain) - 1; i >= 0; i-- {
		local := &o.chain[i].Local
		m = multiplyAffine(m, local.Affine())
		z += local.Position[2]
	}
	o.world = m
	o.z = z + o.Depth
}

// fallback places the object at its own local transform, ignoring every
// ancestor. Used when a tick fails.
func (o *LevelObject) fallback() {
	if len(o.chain) == 0 {
		o.world = identityAffine
		o.z = o.Depth
	} else {
		local := o.chain[0].Local
		o.world = local.Affine()
		o.z = local.Position[2] + o.Depth
	}
	if o.Visual != nil {
		o.Visual.SetTransform(o.world, o.z)
	}
}
