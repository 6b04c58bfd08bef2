package archetype

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/l1jgo/hexcore/internal/worldstate"
)

func writeTestTable(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "archetypes.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadReadsKnownArchetypes(t *testing.T) {
	path := writeTestTable(t, `
archetypes:
  berserker:
    name: Berserker
    stamina_floor: 20
    spawn_weight: 60
  kiter:
    name: Kiter
    stamina_floor: 25
    spawn_weight: 40
`)
	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def, ok := table.Get(worldstate.ArchetypeBerserker)
	if !ok || def.Name != "Berserker" {
		t.Fatalf("expected Berserker def, got %+v ok=%v", def, ok)
	}
	if _, ok := table.Get(worldstate.ArchetypeDefender); ok {
		t.Fatalf("expected Defender to be absent from this fixture")
	}
}

func TestLoadRejectsUnknownArchetypeName(t *testing.T) {
	path := writeTestTable(t, `
archetypes:
  dragon:
    name: Dragon
    spawn_weight: 10
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected Load to reject an unknown archetype name")
	}
}

func TestLoadRejectsNonPositiveWeight(t *testing.T) {
	path := writeTestTable(t, `
archetypes:
  berserker:
    name: Berserker
    spawn_weight: 0
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected Load to reject a non-positive spawn_weight")
	}
}

func TestPickWeightedRespectsBuckets(t *testing.T) {
	path := writeTestTable(t, `
archetypes:
  berserker:
    name: Berserker
    spawn_weight: 1
  kiter:
    name: Kiter
    spawn_weight: 1
`)
	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	counts := map[worldstate.Archetype]int{}
	for roll := 0; roll < 100; roll++ {
		counts[table.PickWeighted(roll)]++
	}
	if counts[worldstate.ArchetypeBerserker] == 0 || counts[worldstate.ArchetypeKiter] == 0 {
		t.Fatalf("expected both archetypes to be reachable across a roll sweep, got %+v", counts)
	}
}

func TestPickWeightedNormalizesNegativeRoll(t *testing.T) {
	path := writeTestTable(t, `
archetypes:
  berserker:
    name: Berserker
    spawn_weight: 5
`)
	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := table.PickWeighted(-3); got != worldstate.ArchetypeBerserker {
		t.Fatalf("expected a negative roll to normalize into range, got %v", got)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
