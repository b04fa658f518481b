package form2

import (
	"math"
	"testing"

	"github.com/filabank/filabank/sdf/form2/must2"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestShapeErrors(t *testing.T) {
	if _, err := Circle(-1); err == nil {
		t.Error("expected error for negative circle radius")
	}
	if _, err := Box(r2.Vec{X: 1, Y: 1}, 0.8); err == nil {
		t.Error("expected error for rounding larger than box")
	}
	if _, err := Polygon([]r2.Vec{{X: 0}, {X: 1}}); err == nil {
		t.Error("expected error for two vertex polygon")
	}
	if _, err := Slot(1, 2); err == nil {
		t.Error("expected error for slot shorter than wide")
	}
	if _, err := Box(r2.Vec{X: 2, Y: 1}, 0.2); err != nil {
		t.Errorf("valid box returned error: %v", err)
	}
}

func TestBoxDistance(t *testing.T) {
	b, err := Box(r2.Vec{X: 4, Y: 2}, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range []struct {
		p    r2.Vec
		want float64
	}{
		{r2.Vec{}, -1},
		{r2.Vec{X: 3}, 1},
		{r2.Vec{X: 5, Y: 4}, math.Hypot(3, 3)},
		{r2.Vec{X: 1.5}, -0.5},
	} {
		if got := b.Evaluate(test.p); math.Abs(got-test.want) > 1e-12 {
			t.Errorf("Evaluate(%v) = %v, want %v", test.p, got, test.want)
		}
	}
}

func TestPolygonWinding(t *testing.T) {
	square := []r2.Vec{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	reversed := []r2.Vec{square[3], square[2], square[1], square[0]}
	for _, verts := range [][]r2.Vec{square, reversed} {
		s, err := Polygon(verts)
		if err != nil {
			t.Fatal(err)
		}
		if d := s.Evaluate(r2.Vec{X: 1, Y: 1}); math.Abs(d+1) > 1e-12 {
			t.Errorf("center distance %v, want -1", d)
		}
		if d := s.Evaluate(r2.Vec{X: 3, Y: 1}); math.Abs(d-1) > 1e-12 {
			t.Errorf("outside distance %v, want 1", d)
		}
	}
}

func TestPolygonBuilderChamfer(t *testing.T) {
	b := must2.NewPolygon()
	b.Add(0, 0).Chamfer(0.5)
	b.Add(2, 0)
	b.Add(0, 2).Rel()
	b.Add(-2, 0).Rel()
	verts := b.Vertices()
	if len(verts) != 5 {
		t.Fatalf("chamfered square should have 5 vertices, got %d", len(verts))
	}
	s, err := BuildPolygon(b)
	if err != nil {
		t.Fatal(err)
	}
	// Corner is cut away, point just inside the old corner is now outside.
	if d := s.Evaluate(r2.Vec{X: 0.1, Y: 0.1}); d <= 0 {
		t.Errorf("chamfered corner point should be outside, got %v", d)
	}
	if d := s.Evaluate(r2.Vec{X: 1, Y: 1}); d >= 0 {
		t.Errorf("center should be inside, got %v", d)
	}
}

func TestPolygonBuilderSmooth(t *testing.T) {
	b := must2.NewPolygon()
	b.Add(0, 0)
	b.Add(4, 0).Smooth(1, 8)
	b.Add(4, 4)
	b.Add(0, 4)
	s, err := BuildPolygon(b)
	if err != nil {
		t.Fatal(err)
	}
	// Arc centre sits at (3, 1). The old corner is outside by about sqrt(2)-1.
	d := s.Evaluate(r2.Vec{X: 4, Y: 0})
	if math.Abs(d-(math.Sqrt2-1)) > 0.05 {
		t.Errorf("smoothed corner distance %v, want about %v", d, math.Sqrt2-1)
	}
}

func TestNagon(t *testing.T) {
	hex := must2.Nagon(6, 2)
	if len(hex) != 6 {
		t.Fatalf("got %d vertices", len(hex))
	}
	for _, v := range hex {
		if math.Abs(r2.Norm(v)-2) > 1e-12 {
			t.Errorf("vertex %v not on circumscribed circle", v)
		}
	}
}
