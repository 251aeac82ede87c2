package cadence

import (
	"cmp"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteVisual is a solid quad centered on its object's origin. It is the
// Visual the bundled Ebitengine host draws; real games supply their own.
type SpriteVisual struct {
	// Width and Height are in world units.
	Width, Height float64

	color    Color
	gradient Color
	hasGrad  bool
	world    [6]float64
	z        float32
	visible  bool
}

var _ GradientVisual = (*SpriteVisual)(nil)

// SetColor implements Visual.
func (v *SpriteVisual) SetColor(c Color) {
	v.color = c
	v.hasGrad = false
}

// SetGradient implements GradientVisual. a is the left edge color and b the
// right edge color.
func (v *SpriteVisual) SetGradient(a, b Color) {
	v.color = a
	v.gradient = b
	v.hasGrad = true
}

// SetTransform implements Visual.
func (v *SpriteVisual) SetTransform(world [6]float64, z float32) {
	v.world = world
	v.z = z
}

// SetVisible implements Visual.
func (v *SpriteVisual) SetVisible(visible bool) {
	v.visible = visible
}

// Z returns the depth pushed by the last SetTransform.
func (v *SpriteVisual) Z() float32 {
	return v.z
}

// whitePixel is a 1x1 white image every sprite quad samples from.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.toRGBA())
	}
	return whitePixel
}

// Renderer draws SpriteVisuals back to front (highest z first) in a single
// DrawTriangles32 call.
type Renderer struct {
	sprites []*SpriteVisual
	sortBuf []*SpriteVisual
	verts   []ebiten.Vertex
	inds    []uint32
}

// NewRenderer creates an empty Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// NewSprite creates a sprite of the given world size and registers it.
func (r *Renderer) NewSprite(w, h float64) *SpriteVisual {
	v := &SpriteVisual{Width: w, Height: h, color: ColorWhite}
	r.sprites = append(r.sprites, v)
	return v
}

// Remove unregisters v.
func (r *Renderer) Remove(v *SpriteVisual) {
	r.sprites = slices.DeleteFunc(r.sprites, func(x *SpriteVisual) bool { return x == v })
}

// Len returns the number of registered sprites.
func (r *Renderer) Len() int {
	return len(r.sprites)
}

// Draw renders every visible sprite through the camera's view matrix.
func (r *Renderer) Draw(target *ebiten.Image, cam *Camera) {
	r.sortBuf = r.sortBuf[:0]
	for _, v := range r.sprites {
		if v.visible && v.color.A > 0 {
			r.sortBuf = append(r.sortBuf, v)
		}
	}
	if len(r.sortBuf) == 0 {
		return
	}
	slices.SortStableFunc(r.sortBuf, func(a, b *SpriteVisual) int {
		return cmp.Compare(b.z, a.z)
	})

	view := cam.ViewMatrix()
	r.verts = r.verts[:0]
	r.inds = r.inds[:0]
	for _, v := range r.sortBuf {
		r.appendQuad(multiplyAffine(view, v.world), v)
	}

	var triOp ebiten.DrawTrianglesOptions
	triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	target.DrawTriangles32(r.verts, r.inds, ensureWhitePixel(), &triOp)
}

// appendQuad appends 4 vertices and 6 indices for one sprite.
func (r *Renderer) appendQuad(t [6]float64, v *SpriteVisual) {
	hw, hh := v.Width/2, v.Height/2

	// 4 local positions: TL, TR, BL, BR
	lx := [4]float64{-hw, hw, -hw, hw}
	ly := [4]float64{-hh, -hh, hh, hh}

	left := premultiplied(v.color)
	right := left
	if v.hasGrad {
		right = premultiplied(v.gradient)
	}
	cols := [4][4]float32{left, right, left, right}

	a, b, c, d, tx, ty := t[0], t[1], t[2], t[3], t[4], t[5]
	base := uint32(len(r.verts))
	for i := 0; i < 4; i++ {
		r.verts = append(r.verts, ebiten.Vertex{
			DstX:   float32(a*lx[i] + c*ly[i] + tx),
			DstY:   float32(b*lx[i] + d*ly[i] + ty),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: cols[i][0],
			ColorG: cols[i][1],
			ColorB: cols[i][2],
			ColorA: cols[i][3],
		})
	}

	// Two triangles: TL-TR-BL, TR-BR-BL
	r.inds = append(r.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}

func premultiplied(c Color) [4]float32 {
	a := float32(clamp01(c.A))
	return [4]float32{
		float32(clamp01(c.R)) * a,
		float32(clamp01(c.G)) * a,
		float32(clamp01(c.B)) * a,
		a,
	}
}
