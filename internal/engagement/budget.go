package engagement

import "github.com/l1jgo/hexcore/internal/worldstate"

// MaxEngagementsPerZone bounds encounter density per 240-tile zone.
const MaxEngagementsPerZone = 8

// Budget tracks active engagement counts per zone, grounded on the
// original implementation's EngagementBudget resource (zone_id -> count,
// register/unregister/can_spawn).
type Budget struct {
	counts map[worldstate.ZoneId]int
}

func NewBudget() *Budget {
	return &Budget{counts: make(map[worldstate.ZoneId]int)}
}

// CanSpawn reports whether zone has room for another engagement.
func (b *Budget) CanSpawn(zone worldstate.ZoneId) bool {
	return b.counts[zone] < MaxEngagementsPerZone
}

// Register increments zone's active engagement count.
func (b *Budget) Register(zone worldstate.ZoneId) {
	b.counts[zone]++
}

// Unregister decrements zone's count, removing the entry once it hits
// zero so Count/Total don't accumulate stale zero-valued zones.
func (b *Budget) Unregister(zone worldstate.ZoneId) {
	c, ok := b.counts[zone]
	if !ok {
		return
	}
	if c <= 1 {
		delete(b.counts, zone)
		return
	}
	b.counts[zone] = c - 1
}

func (b *Budget) Count(zone worldstate.ZoneId) int {
	return b.counts[zone]
}

func (b *Budget) Total() int {
	total := 0
	for _, c := range b.counts {
		total += c
	}
	return total
}
