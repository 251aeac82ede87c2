package cadence

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeVisual struct {
	color     Color
	world     [6]float64
	z         float32
	visible   bool
	colorSets int
}

func (v *fakeVisual) SetColor(c Color) {
	v.color = c
	v.colorSets++
}

func (v *fakeVisual) SetTransform(world [6]float64, z float32) {
	v.world = world
	v.z = z
}

func (v *fakeVisual) SetVisible(visible bool) { v.visible = visible }

type fakeGradientVisual struct {
	fakeVisual
	a, b Color
}

func (v *fakeGradientVisual) SetGradient(a, b Color) {
	v.a, v.b = a, b
}

func posSeq(kfs ...float32) *Sequence[mgl32.Vec3] {
	out := make([]Keyframe[mgl32.Vec3], 0, len(kfs)/3)
	for i := 0; i+2 < len(kfs); i += 3 {
		out = append(out, Keyframe[mgl32.Vec3]{Time: kfs[i], Value: mgl32.Vec3{kfs[i+1], kfs[i+2], 0}})
	}
	return NewVec3Sequence(out...)
}

// chainOf builds an object whose chain is the object's own link followed by
// the given ancestors, innermost first.
func chainOf(id string, ancestors ...*ParentLink) *LevelObject {
	o := NewLevelObject(id, id)
	o.SetChain(append([]*ParentLink{o.Link()}, ancestors...))
	return o
}

func worldPos(o *LevelObject) (float64, float64) {
	return AffinePosition(o.WorldTransform())
}

func TestObjectEndToEnd(t *testing.T) {
	o := NewLevelObject("obj", "obj")
	o.Link().Position = posSeq(0, 0, 0, 2, 10, 0)
	o.SetStartTime(5)
	v := &fakeVisual{}
	o.Visual = v

	require.NoError(t, o.Interpolate(6))
	x, y := worldPos(o)
	assert.InDelta(t, 5, x, 1e-6)
	assert.InDelta(t, 0, y, 1e-6)
	assert.Equal(t, mgl32.Vec3{5, 0, 0}, o.Link().Local.Position)
	assert.Equal(t, o.WorldTransform(), v.world, "world pushed to the visual")
}

func TestObjectComposesParentChain(t *testing.T) {
	parent := NewParentLink("parent")
	parent.Position = posSeq(0, 10, 0)
	parent.Rotation = NewFloatSequence(Keyframe[float32]{Value: 90})
	parent.Scale = NewVec2Sequence(Keyframe[mgl32.Vec2]{Value: mgl32.Vec2{2, 2}})
	o := chainOf("child", parent)
	o.Link().Position = posSeq(0, 1, 0)

	require.NoError(t, o.Interpolate(0))
	// child (1,0) scaled by 2, rotated 90° to (0,2), then moved by (10,0).
	x, y := worldPos(o)
	assert.InDelta(t, 10, x, 1e-6)
	assert.InDelta(t, 2, y, 1e-6)
	assert.InDelta(t, 90, AffineRotation(o.WorldTransform()), 1e-6)
}

func TestObjectDepthAccumulates(t *testing.T) {
	parent := NewParentLink("parent")
	parent.Position = NewVec3Sequence(Keyframe[mgl32.Vec3]{Value: mgl32.Vec3{0, 0, 3}})
	o := chainOf("child", parent)
	o.Link().Position = NewVec3Sequence(Keyframe[mgl32.Vec3]{Value: mgl32.Vec3{0, 0, 2}})
	o.Depth = 0.5
	o.PrefabOffset.Position[2] = 1

	require.NoError(t, o.Interpolate(0))
	assert.InDelta(t, 6.5, o.Z(), 1e-6)
}

func TestObjectDesyncHoldsAncestor(t *testing.T) {
	ancestor := NewParentLink("a")
	ancestor.Position = posSeq(0, 0, 0, 10, 100, 0)
	o := chainOf("b", ancestor)
	o.Link().Desync = true

	require.NoError(t, o.Interpolate(1))
	x, _ := worldPos(o)
	assert.InDelta(t, 10, x, 1e-5)
	assert.True(t, o.Spawned())
	assert.Equal(t, 1, o.DesyncParentIndex())
	assert.Equal(t, 0, o.SyncParentIndex())

	require.NoError(t, o.Interpolate(5))
	x, _ = worldPos(o)
	assert.InDelta(t, 10, x, 1e-5, "ancestor must hold its spawn transform")
	assert.Equal(t, 0, o.SyncParentIndex())

	o.SetStartTime(2)
	require.NoError(t, o.Interpolate(5))
	x, _ = worldPos(o)
	assert.InDelta(t, 50, x, 1e-5, "start time change re-arms the chain")
	assert.True(t, o.Spawned())
}

func TestObjectDesyncKeepsOwnLinkLive(t *testing.T) {
	ancestor := NewParentLink("a")
	ancestor.Position = posSeq(0, 0, 0, 10, 100, 0)
	o := chainOf("b", ancestor)
	o.Link().Desync = true
	o.Link().Position = posSeq(0, 0, 0, 10, 0, 10)

	require.NoError(t, o.Interpolate(1))
	require.NoError(t, o.Interpolate(4))
	x, y := worldPos(o)
	assert.InDelta(t, 10, x, 1e-5)
	assert.InDelta(t, 4, y, 1e-5)
}

func TestObjectWithoutDesyncFollowsAncestor(t *testing.T) {
	ancestor := NewParentLink("a")
	ancestor.Position = posSeq(0, 0, 0, 10, 100, 0)
	o := chainOf("b", ancestor)

	require.NoError(t, o.Interpolate(1))
	require.NoError(t, o.Interpolate(5))
	x, _ := worldPos(o)
	assert.InDelta(t, 50, x, 1e-5)
	assert.False(t, o.Spawned())
	assert.Equal(t, 1, o.SyncParentIndex())
}

func TestObjectParentTimeOffset(t *testing.T) {
	ancestor := NewParentLink("a")
	ancestor.Position = posSeq(0, 0, 0, 10, 100, 0)
	ancestor.TimeOffset = 4
	o := chainOf("b", ancestor)

	require.NoError(t, o.Interpolate(5))
	x, _ := worldPos(o)
	assert.InDelta(t, 10, x, 1e-5)
}

func TestObjectOffsetsReplaceAndAdd(t *testing.T) {
	grand := NewParentLink("g")
	grand.Position = posSeq(0, 0, 0, 10, 10, 0)
	parent := NewParentLink("p")
	parent.Offset[ChannelPosition] = 0.5
	parent.Additive[ChannelPosition] = true
	o := chainOf("c", parent, grand)
	own := o.Link()
	own.Offset[ChannelPosition] = 1
	own.Additive[ChannelPosition] = true

	require.NoError(t, o.Interpolate(5))
	assert.InDelta(t, 3.5, grand.Local.Position[0], 1e-5, "additive offsets sum")

	parent.Additive[ChannelPosition] = false
	require.NoError(t, o.Interpolate(5))
	// The non-additive offset replaces the carried offset; the added sum
	// keeps the child's second.
	assert.InDelta(t, 3.5, grand.Local.Position[0], 1e-5)

	own.Additive[ChannelPosition] = false
	require.NoError(t, o.Interpolate(5))
	assert.InDelta(t, 4.5, grand.Local.Position[0], 1e-5, "nearest non-additive offset wins")
	assert.Zero(t, own.Local.Position[0], "own link is sampled without offsets")
}

func TestObjectParallax(t *testing.T) {
	parent := NewParentLink("p")
	parent.Position = NewVec3Sequence(Keyframe[mgl32.Vec3]{Value: mgl32.Vec3{4, 8, 3}})
	parent.Scale = NewVec2Sequence(Keyframe[mgl32.Vec2]{Value: mgl32.Vec2{1, 3}})
	parent.Rotation = NewFloatSequence(Keyframe[float32]{Value: 40})
	o := chainOf("c", parent)
	own := o.Link()
	own.Parallax = [channelCount]float32{0.5, 2, 0.25}
	own.Position = posSeq(0, 1, 0)

	require.NoError(t, o.Interpolate(0))
	assert.Equal(t, mgl32.Vec3{2, 4, 3}, parent.Local.Position, "depth is not scaled")
	assert.Equal(t, mgl32.Vec2{2, 6}, parent.Local.Scale)
	assert.InDelta(t, 10, parent.Local.Rotation, 1e-6)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, own.Local.Position, "own link is not scaled")
}

func TestObjectParallaxWeakensParentMotion(t *testing.T) {
	parent := NewParentLink("p")
	parent.Position = posSeq(0, 0, 0, 1, 10, 0)
	o := chainOf("c", parent)
	o.Link().Parallax[ChannelPosition] = 0.5

	require.NoError(t, o.Interpolate(1))
	x, _ := worldPos(o)
	assert.InDelta(t, 5, x, 1e-5)
}

func TestObjectParallaxOnlyReachesOwnParent(t *testing.T) {
	parent := NewParentLink("p")
	parent.Position = posSeq(0, 0, 0, 1, 10, 0)
	parent.Parallax[ChannelPosition] = 0.5
	o := chainOf("c", parent)

	require.NoError(t, o.Interpolate(1))
	x, _ := worldPos(o)
	assert.InDelta(t, 10, x, 1e-5, "a parent's parallax governs its own parent")
}

func TestObjectAnimateDisabled(t *testing.T) {
	parent := NewParentLink("p")
	parent.Position = posSeq(0, 100, 0)
	parent.Scale = NewVec2Sequence(Keyframe[mgl32.Vec2]{Value: mgl32.Vec2{5, 5}})
	parent.Rotation = NewFloatSequence(Keyframe[float32]{Value: 30})
	o := chainOf("c", parent)
	own := o.Link()
	own.Animate[ChannelPosition] = false
	own.Animate[ChannelRotation] = false
	own.Position = posSeq(0, 3, 0)
	own.Rotation = NewFloatSequence(Keyframe[float32]{Value: 10})

	require.NoError(t, o.Interpolate(0))
	assert.Equal(t, mgl32.Vec3{3, 0, 0}, own.Local.Position, "own keyframes still apply")
	assert.InDelta(t, 10, own.Local.Rotation, 1e-6)
	assert.Equal(t, mgl32.Vec3{}, parent.Local.Position)
	assert.Zero(t, parent.Local.Rotation)
	assert.Equal(t, mgl32.Vec2{5, 5}, parent.Local.Scale, "scale still inherited")

	x, y := worldPos(o)
	assert.InDelta(t, 15, x, 1e-5, "child stays at its local x, scaled by the parent")
	assert.InDelta(t, 0, y, 1e-5)
	assert.InDelta(t, 10, AffineRotation(o.WorldTransform()), 1e-4)
}

func TestObjectCameraParent(t *testing.T) {
	anchor := NewParentLink("hud")
	anchor.CameraParent = true
	o := chainOf("c", anchor)
	cam := NewCamera(Rect{Width: 800, Height: 600})
	cam.X, cam.Y, cam.Zoom = 10, -4, 2
	o.SetCamera(cam)

	require.NoError(t, o.Interpolate(0))
	x, y := worldPos(o)
	assert.InDelta(t, 10, x, 1e-6)
	assert.InDelta(t, -4, y, 1e-6)
	sx, _ := AffineScale(o.WorldTransform())
	assert.InDelta(t, 0.5, sx, 1e-6, "zoom in shrinks the anchor")

	cam.X, cam.Rotation = 20, 30
	require.NoError(t, o.Interpolate(0))
	x, _ = worldPos(o)
	assert.InDelta(t, 20, x, 1e-6, "camera pan reflows immediately")
	assert.InDelta(t, 30, AffineRotation(o.WorldTransform()), 1e-4)

	anchor.CameraParallax = [channelCount]float32{0.5, 0, 0}
	require.NoError(t, o.Interpolate(0))
	x, _ = worldPos(o)
	assert.InDelta(t, 10, x, 1e-6)
	sx, _ = AffineScale(o.WorldTransform())
	assert.InDelta(t, 1, sx, 1e-6)
}

func TestObjectCameraIgnoredWithoutFlag(t *testing.T) {
	o := chainOf("c", NewParentLink("p"))
	cam := NewCamera(Rect{})
	cam.X = 50
	o.SetCamera(cam)
	o.PrefabOffset.Position = mgl32.Vec3{1, 2, 0}

	require.NoError(t, o.Interpolate(0))
	x, y := worldPos(o)
	assert.InDelta(t, 1, x, 1e-6)
	assert.InDelta(t, 2, y, 1e-6)
}

func TestObjectColor(t *testing.T) {
	o := NewLevelObject("c", "c")
	v := &fakeVisual{}
	o.Visual = v
	o.Color = NewColorSequence(Keyframe[Color]{Value: Color{1, 0, 0, 1}})
	o.Opacity = NewFloatSequence(Keyframe[float32]{Value: 1.5})

	require.NoError(t, o.Interpolate(0))
	assert.Equal(t, Color{1, 0, 0, 0.5}, v.color)
	assert.Equal(t, v.color, o.CurrentColor())

	o.Hue = NewFloatSequence(Keyframe[float32]{Value: 120})
	require.NoError(t, o.Interpolate(0))
	assert.InDelta(t, 0, v.color.R, 1e-6)
	assert.InDelta(t, 1, v.color.G, 1e-6)
	assert.InDelta(t, 0.5, v.color.A, 1e-6)
}

func TestObjectOpacityEncoding(t *testing.T) {
	o := NewLevelObject("c", "c")
	v := &fakeVisual{}
	o.Visual = v
	o.Color = NewColorSequence(Keyframe[Color]{Value: ColorWhite})

	for _, c := range []struct {
		stored, alpha float32
	}{{0, 1}, {0.5, 1}, {1, 1}, {1.5, 0.5}, {2, 0}} {
		o.Opacity = NewFloatSequence(Keyframe[float32]{Value: c.stored})
		require.NoError(t, o.Interpolate(0))
		assert.InDelta(t, c.alpha, v.color.A, 1e-6, "stored opacity %v", c.stored)
	}
}

func TestObjectColorSampledFromStartTime(t *testing.T) {
	o := NewLevelObject("c", "c")
	o.Opacity = NewFloatSequence(Keyframe[float32]{Time: 0, Value: 1}, Keyframe[float32]{Time: 2, Value: 2})
	o.SetStartTime(10)

	require.NoError(t, o.Interpolate(11))
	assert.InDelta(t, 0.5, o.CurrentColor().A, 1e-6)
}

func TestObjectGradient(t *testing.T) {
	o := NewLevelObject("g", "g")
	v := &fakeGradientVisual{}
	o.Visual = v
	o.Color = NewColorSequence(Keyframe[Color]{Value: Color{1, 0, 0, 1}})
	o.GradientColor = NewColorSequence(Keyframe[Color]{Value: Color{0, 0, 1, 1}})
	o.GradientOpacity = NewFloatSequence(Keyframe[float32]{Value: 2})

	require.NoError(t, o.Interpolate(0))
	assert.Equal(t, Color{1, 0, 0, 1}, v.a)
	assert.Equal(t, Color{0, 0, 1, 0}, v.b)
	assert.Zero(t, v.colorSets, "gradient visuals receive SetGradient only")
}

func TestObjectGradientFallsBackToSetColor(t *testing.T) {
	o := NewLevelObject("g", "g")
	v := &fakeVisual{}
	o.Visual = v
	o.GradientColor = NewColorSequence(Keyframe[Color]{Value: Color{0, 0, 1, 1}})

	require.NoError(t, o.Interpolate(0))
	assert.Equal(t, 1, v.colorSets)
}

func TestObjectFailedChannelHoldsValue(t *testing.T) {
	parent := NewParentLink("p")
	parent.Rotation = NewFloatSequence()
	o := chainOf("c", parent)
	o.Link().Position = posSeq(0, 4, 0)

	err := o.Interpolate(0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptySequence))
	assert.Contains(t, err.Error(), `link "p" rotation`)
	x, _ := worldPos(o)
	assert.InDelta(t, 4, x, 1e-6, "other channels still composed")
}

func TestObjectFallback(t *testing.T) {
	parent := NewParentLink("p")
	parent.Position = posSeq(0, 100, 0)
	o := chainOf("c", parent)
	o.Link().Position = posSeq(0, 3, 0)
	v := &fakeVisual{}
	o.Visual = v
	require.NoError(t, o.Interpolate(0))

	o.fallback()
	x, _ := worldPos(o)
	assert.InDelta(t, 3, x, 1e-6)
	assert.Equal(t, o.WorldTransform(), v.world)
}

func TestObjectSetActiveRearmsHooks(t *testing.T) {
	var starts int
	o := NewLevelObject("c", "c")
	o.Link().Position = NewVec3Sequence(
		Keyframe[mgl32.Vec3]{Time: 0},
		Keyframe[mgl32.Vec3]{Time: 1, Value: mgl32.Vec3{1, 0, 0}, Start: func(Keyframe[mgl32.Vec3], mgl32.Vec3, float32) {
			starts++
		}},
	)
	v := &fakeVisual{}
	o.Visual = v

	o.SetActive(true)
	assert.True(t, v.visible)
	require.NoError(t, o.Interpolate(0.2))
	require.NoError(t, o.Interpolate(0.4))
	assert.Equal(t, 1, starts)

	o.SetActive(false)
	assert.False(t, v.visible)
	assert.False(t, o.Active())
	o.SetActive(true)
	require.NoError(t, o.Interpolate(0.6))
	assert.Equal(t, 2, starts)
}

func TestObjectSetActiveResetsSpawn(t *testing.T) {
	o := chainOf("c", NewParentLink("p"))
	o.Link().Desync = true
	o.SetActive(true)
	require.NoError(t, o.Interpolate(0))
	require.True(t, o.Spawned())

	o.SetActive(false)
	assert.False(t, o.Spawned())
}

func TestObjectAliveAt(t *testing.T) {
	o := NewLevelObject("c", "c")
	o.SetStartTime(2)
	o.KillTime = 5
	assert.False(t, o.AliveAt(1.9))
	assert.True(t, o.AliveAt(2))
	assert.True(t, o.AliveAt(4.9))
	assert.False(t, o.AliveAt(5))

	o.KillTime = 0
	assert.True(t, o.AliveAt(1000), "kill time before start never dies")
}

func TestObjectDestroy(t *testing.T) {
	parent := NewParentLink("p")
	o := chainOf("c", parent)
	o.Visual = &fakeVisual{}
	o.Color = NewColorSequence(Keyframe[Color]{Value: ColorWhite})

	o.Destroy()
	assert.Nil(t, o.Link())
	assert.Nil(t, o.Links())
	assert.Nil(t, parent.Position)
	assert.Nil(t, o.Color)
	assert.Nil(t, o.Visual)
	assert.NoError(t, o.Interpolate(1))
}
