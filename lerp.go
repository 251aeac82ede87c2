package cadence

import "github.com/go-gl/mathgl/mgl32"

// Lerp interpolates between a and b by the (already eased) progress t.
// A Sequence is generic over its value type and carries one Lerp for it.
type Lerp[T any] func(a, b T, t float32) T

// LerpFloat is the scalar strategy, also used for rotation in degrees.
// Angles are not wrapped so authored multi-turn spins survive.
func LerpFloat(a, b, t float32) float32 {
	return a + (b-a)*t
}

// LerpVec2 interpolates component-wise.
func LerpVec2(a, b mgl32.Vec2, t float32) mgl32.Vec2 {
	return mgl32.Vec2{a[0] + (b[0]-a[0])*t, a[1] + (b[1]-a[1])*t}
}

// LerpVec3 interpolates component-wise.
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
	}
}

// LerpColor interpolates all four channels in RGB space.
func LerpColor(a, b Color, t float32) Color {
	f := float64(t)
	return Color{
		R: a.R + (b.R-a.R)*f,
		G: a.G + (b.G-a.G)*f,
		B: a.B + (b.B-a.B)*f,
		A: a.A + (b.A-a.A)*f,
	}
}

// LerpQuat spherically interpolates orientations.
func LerpQuat(a, b mgl32.Quat, t float32) mgl32.Quat {
	return mgl32.QuatSlerp(a, b, t)
}
