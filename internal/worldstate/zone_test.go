package worldstate

import (
	"testing"

	"github.com/l1jgo/hexcore/internal/hex"
)

func TestZoneFromBoundaries(t *testing.T) {
	cases := []struct {
		q, r int16
		want ZoneId
	}{
		{239, 0, ZoneId{0, 0}},
		{240, 0, ZoneId{1, 0}},
		{-240, 0, ZoneId{-1, 0}},
		{-1, 0, ZoneId{-1, 0}},
	}
	for _, c := range cases {
		got := ZoneFrom(hex.Qrz{Q: c.q, R: c.r})
		if got != c.want {
			t.Fatalf("ZoneFrom(%d,%d) = %v, want %v", c.q, c.r, got, c.want)
		}
	}
}
