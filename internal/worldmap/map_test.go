package worldmap

import (
	"testing"

	"github.com/l1jgo/hexcore/internal/hex"
)

func TestConvertRoundTrip(t *testing.T) {
	m := NewMap(1.0, 2.4, 42)
	cases := []hex.Qrz{
		{Q: 0, R: 0, Z: 0},
		{Q: 12, R: -7, Z: 3},
		{Q: -50, R: 50, Z: -10},
		{Q: 1000, R: -1000, Z: 1000},
	}
	for _, c := range cases {
		got := m.ConvertToHex(m.Convert(c))
		if !got.Equal(c) {
			t.Fatalf("round trip for %v produced %v", c, got)
		}
	}
}

func TestLineIncludesEndpoints(t *testing.T) {
	m := NewMap(1.0, 2.4, 1)
	a := hex.Qrz{Q: 0, R: 0, Z: 0}
	b := hex.Qrz{Q: 5, R: -2, Z: 0}
	path := m.Line(a, b)
	if !path[0].Equal(a) {
		t.Fatalf("line should start at a, got %v", path[0])
	}
	if !path[len(path)-1].Equal(b) {
		t.Fatalf("line should end at b, got %v", path[len(path)-1])
	}
}

func TestLineSameHex(t *testing.T) {
	m := NewMap(1.0, 2.4, 1)
	a := hex.Qrz{Q: 3, R: 3, Z: 0}
	path := m.Line(a, a)
	if len(path) != 1 || !path[0].Equal(a) {
		t.Fatalf("line from a hex to itself should be [a], got %v", path)
	}
}

func TestFindReturnsPopulatedTile(t *testing.T) {
	m := NewMap(1.0, 2.4, 7)
	q := hex.Qrz{Q: 2, R: 2, Z: 4}
	m.Insert(q, &Tile{})
	got := m.Find(hex.Qrz{Q: 2, R: 2, Z: 6}, -5)
	if !got.Equal(q) {
		t.Fatalf("Find should locate populated tile at %v, got %v", q, got)
	}
}

func TestFindFallsBackToNoise(t *testing.T) {
	m := NewMap(1.0, 2.4, 7)
	start := hex.Qrz{Q: 10, R: -3, Z: 20}
	got := m.Find(start, -5)
	want := m.noise.elevation(10, -3)
	if got.Z != want {
		t.Fatalf("Find fallback z = %d, want noise elevation %d", got.Z, want)
	}
}

func TestNoiseDeterministic(t *testing.T) {
	n1 := newValueNoise(99)
	n2 := newValueNoise(99)
	if n1.elevation(3.5, -1.2) != n2.elevation(3.5, -1.2) {
		t.Fatalf("same seed should produce same elevation")
	}
}

func TestNoiseBounded(t *testing.T) {
	n := newValueNoise(5)
	for q := -20.0; q <= 20.0; q += 3.7 {
		for r := -20.0; r <= 20.0; r += 3.7 {
			e := n.elevation(q, r)
			if e < -10 || e > 10 {
				t.Fatalf("elevation out of ±10 range: %d at (%v,%v)", e, q, r)
			}
		}
	}
}

func TestTraversableRespectsStackCap(t *testing.T) {
	m := NewMap(1.0, 2.4, 1)
	q := hex.Qrz{Q: 0, R: 0, Z: 0}
	m.Insert(q, &Tile{Occupants: 7})
	if m.Traversable(q) {
		t.Fatalf("tile at stacking cap should not be traversable")
	}
	m.Insert(q, &Tile{Occupants: 6})
	if !m.Traversable(q) {
		t.Fatalf("tile under stacking cap should be traversable")
	}
}
