package worldmap

import (
	"github.com/l1jgo/hexcore/internal/hex"
)

// Tile is the payload attached to a populated Qrz. Tiles are sparse: most
// of the world is never explicitly inserted and is read back through the
// deterministic terrain generator instead.
type Tile struct {
	Occupants int
	Blocked   bool
}

// Map owns the hex-to-world conversion for one world and a sparse set of
// populated tiles layered over deterministic, seeded terrain.
type Map struct {
	radius float64 // tile half-width, in world units
	rise   float64 // world-space height of one elevation unit

	tiles map[hex.Qrz]*Tile
	noise valueNoise
}

func NewMap(radius, rise float64, seed int64) *Map {
	return &Map{
		radius: radius,
		rise:   rise,
		tiles:  make(map[hex.Qrz]*Tile),
		noise:  newValueNoise(seed),
	}
}

func (m *Map) Radius() float64 { return m.radius }
func (m *Map) Rise() float64   { return m.rise }

// Convert maps a hex coordinate to its world-space center.
func (m *Map) Convert(q hex.Qrz) Vec3 {
	x, z := hexToWorld(float64(q.Q), float64(q.R), m.radius)
	return Vec3{X: x, Y: float64(q.Z) * m.rise, Z: z}
}

// ConvertDir maps a hex direction (as used by Heading) to a world-space
// unit vector. The underlying basis is linear, so this is just Convert
// with the elevation axis dropped and the result normalized.
func (m *Map) ConvertDir(dir hex.Qrz) Vec3 {
	x, z := hexToWorld(float64(dir.Q), float64(dir.R), m.radius)
	return Vec3{X: x, Z: z}.Normalize()
}

// ConvertToHex maps a world-space position back to its hex coordinate,
// rounding to the nearest valid Qrz.
func (m *Map) ConvertToHex(v Vec3) hex.Qrz {
	fq, fr := worldToHex(v.X, v.Z, m.radius)
	return hex.Round(fq, fr, v.Y/m.rise)
}

// Line rasterizes the straight hex path from a to b, including both
// endpoints, by lerping in world space and rounding back to hex at each
// of the n+1 sample steps (n = flat distance).
func (m *Map) Line(a, b hex.Qrz) []hex.Qrz {
	n := hex.FlatDistance(a, b)
	if n == 0 {
		return []hex.Qrz{a}
	}
	wa := m.Convert(a)
	wb := m.Convert(b)
	out := make([]hex.Qrz, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		out = append(out, m.ConvertToHex(Lerp(wa, wb, t)))
	}
	return out
}

// Find scans vertically from q over [0, dist] for the nearest populated
// tile; the sign of dist is the scan direction. Falls back to the
// terrain generator's elevation when nothing is populated along the scan.
func (m *Map) Find(q hex.Qrz, dist int) hex.Qrz {
	step := int16(1)
	if dist < 0 {
		step = -1
	}
	n := dist
	if n < 0 {
		n = -n
	}
	cur := q
	for i := 0; i <= n; i++ {
		if _, ok := m.tiles[cur]; ok {
			return cur
		}
		cur.Z += step
	}
	return hex.Qrz{Q: q.Q, R: q.R, Z: m.noise.elevation(float64(q.Q), float64(q.R))}
}

func (m *Map) Get(q hex.Qrz) (*Tile, bool) {
	t, ok := m.tiles[q]
	return t, ok
}

func (m *Map) Insert(q hex.Qrz, t *Tile) {
	m.tiles[q] = t
}

func (m *Map) Remove(q hex.Qrz) {
	delete(m.tiles, q)
}

// Occupants returns the occupant count for q, 0 if the tile is
// unpopulated or has no payload yet.
func (m *Map) Occupants(q hex.Qrz) int {
	if t, ok := m.tiles[q]; ok {
		return t.Occupants
	}
	return 0
}

// Traversable reports whether q can be entered: not blocked, and under
// the stacking cap of 7 occupants.
func (m *Map) Traversable(q hex.Qrz) bool {
	t, ok := m.tiles[q]
	if !ok {
		return true
	}
	return !t.Blocked && t.Occupants < 7
}
