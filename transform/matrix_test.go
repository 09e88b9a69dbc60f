package transform

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func TestComposeAppliesInnerFirst(t *testing.T) {
	// rotate a quarter turn, then translate
	m := Compose(Translate(10, 0), Rotate(math.Pi/2))
	got := m.Transform(Pt(1, 0))
	if !got.Near(Pt(10, 1), eps) {
		t.Errorf("Transform = %v, want (10, 1)", got)
	}

	// the other order translates first
	m = Compose(Rotate(math.Pi/2), Translate(10, 0))
	got = m.Transform(Pt(1, 0))
	if !got.Near(Pt(0, 11), eps) {
		t.Errorf("Transform = %v, want (0, 11)", got)
	}
}

func TestChainMatchesNestedCompose(t *testing.T) {
	a := Translate(3, -2)
	b := Scale(2, 0.5)
	c := Rotate(0.7)

	chained := Chain(a, b, c)
	nested := Compose(a, Compose(b, c))
	if !chained.ApproxEqual(nested, eps) {
		t.Errorf("Chain = %v, want %v", chained, nested)
	}
	if !Chain().ApproxEqual(Identity(), eps) {
		t.Errorf("empty Chain should be identity")
	}
}

func TestInvertRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
	}{
		{"identity", Identity()},
		{"translate", Translate(-4, 7.5)},
		{"scale", Scale(64, -48)},
		{"rotate", Rotate(2.1)},
		{"chain", Chain(Translate(320, 240), Scale(64, -64), Rotate(-0.3), Translate(-1, 2))},
	}

	points := []Point{Pt(0, 0), Pt(1, 0), Pt(-3.5, 12), Pt(1e3, -1e3)}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := tt.m.Invert()
			if err != nil {
				t.Fatalf("Invert: %v", err)
			}
			if !Compose(tt.m, inv).ApproxEqual(Identity(), 1e-9) {
				t.Errorf("m * inv(m) = %v, want identity", Compose(tt.m, inv))
			}
			for _, p := range points {
				back := tt.m.Transform(inv.Transform(p))
				if !back.Near(p, 1e-6) {
					t.Errorf("round trip of %v = %v", p, back)
				}
			}
		})
	}
}

func TestInvertDegenerate(t *testing.T) {
	for _, m := range []Matrix{Scale(0, 1), Scale(1, 0), {1, 2, 2, 4, 0, 0}, {math.NaN(), 0, 0, 1, 0, 0}} {
		_, err := m.Invert()
		var degenerate *DegenerateTransformError
		if !errors.As(err, &degenerate) {
			t.Errorf("Invert(%v) err = %v, want DegenerateTransformError", m, err)
		}
	}
}

func TestBasis(t *testing.T) {
	m := Compose(Translate(2, 3), Rotate(math.Pi/2))
	o, ox, oy := m.Basis()
	if !o.Near(Pt(2, 3), eps) {
		t.Errorf("origin = %v", o)
	}
	if !ox.Near(Pt(0, 1), eps) {
		t.Errorf("ox = %v", ox)
	}
	if !oy.Near(Pt(-1, 0), eps) {
		t.Errorf("oy = %v", oy)
	}
}

func TestPointHelpers(t *testing.T) {
	v := Pt(3, 4)
	if v.Len() != 5 {
		t.Errorf("Len = %v", v.Len())
	}
	if n := v.Normalize(); !n.Near(Pt(0.6, 0.8), eps) {
		t.Errorf("Normalize = %v", n)
	}
	if z := (Point{}).Normalize(); z != (Point{}) {
		t.Errorf("Normalize of zero = %v", z)
	}
	if r := Pt(1, 0).Rotate(math.Pi / 2); !r.Near(Pt(0, 1), eps) {
		t.Errorf("Rotate = %v", r)
	}
}
