package cadence

import (
	"errors"
	"math"
	"testing"
)

func near32(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) < eps
}

func TestEaseEndpoints(t *testing.T) {
	for _, name := range EaseNames() {
		fn := MustEase(name)
		// Expo variants are offset by a thousandth at the ends.
		if got := fn(1); !near32(got, 1, 1e-2) {
			t.Errorf("%s(1) = %f, want 1", name, got)
		}
		if name == "Instant" {
			continue
		}
		if got := fn(0); !near32(got, 0, 1e-2) {
			t.Errorf("%s(0) = %f, want 0", name, got)
		}
	}
}

func TestEaseLinearMidpoint(t *testing.T) {
	v, err := Evaluate("Linear", 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0.5 {
		t.Errorf("Linear(0.5) = %f, want 0.5", v)
	}
}

func TestEaseInQuadMidpoint(t *testing.T) {
	v, err := Evaluate("InQuad", 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if !near32(v, 0.25, 1e-6) {
		t.Errorf("InQuad(0.5) = %f, want 0.25", v)
	}
}

func TestEaseInstantHoldsUntilEnd(t *testing.T) {
	if Instant(0.999) != 0 {
		t.Errorf("Instant(0.999) = %f, want 0", Instant(0.999))
	}
	if Instant(1) != 1 {
		t.Errorf("Instant(1) = %f, want 1", Instant(1))
	}
}

func TestEaseUnknownName(t *testing.T) {
	_, err := Ease("NotAnEase")
	var uerr *UnknownEaseError
	if !errors.As(err, &uerr) {
		t.Fatalf("Ease(unknown) error = %v, want *UnknownEaseError", err)
	}
	if uerr.Name != "NotAnEase" {
		t.Errorf("Name = %q, want %q", uerr.Name, "NotAnEase")
	}

	if _, err := Evaluate("NotAnEase", 0.5); !errors.As(err, &uerr) {
		t.Errorf("Evaluate(unknown) error = %v, want *UnknownEaseError", err)
	}
}

func TestMustEasePanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustEase(unknown) did not panic")
		}
	}()
	MustEase("NotAnEase")
}

func TestRegisterEase(t *testing.T) {
	RegisterEase("testHalf", func(t float32) float32 { return t / 2 })
	t.Cleanup(func() { delete(eases, "testHalf") })

	v, err := Evaluate("testHalf", 1)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0.5 {
		t.Errorf("testHalf(1) = %f, want 0.5", v)
	}
}

func TestBlendFamiliesIntegerStrengths(t *testing.T) {
	names := []string{"Linear", "InQuad", "InCubic", "InQuart", "InQuint"}
	for s, name := range names {
		want := MustEase(name)(0.3)
		if got := BlendFamilies(EaseIn, 0.3, float32(s)); !near32(got, want, 1e-6) {
			t.Errorf("strength %d = %f, want %s = %f", s, got, name, want)
		}
	}
}

func TestBlendFamiliesFractional(t *testing.T) {
	quad := MustEase("OutQuad")(0.4)
	cubic := MustEase("OutCubic")(0.4)
	want := quad + (cubic-quad)*0.25
	if got := BlendFamilies(EaseOut, 0.4, 1.25); !near32(got, want, 1e-6) {
		t.Errorf("BlendFamilies(out, 0.4, 1.25) = %f, want %f", got, want)
	}
}

func TestBlendFamiliesClamps(t *testing.T) {
	if got := BlendFamilies(EaseInOut, 0.3, -2); got != 0.3 {
		t.Errorf("negative strength = %f, want linear 0.3", got)
	}
	want := MustEase("InOutQuint")(0.3)
	if got := BlendFamilies(EaseInOut, 0.3, 9); !near32(got, want, 1e-6) {
		t.Errorf("strength 9 = %f, want InOutQuint %f", got, want)
	}
}
