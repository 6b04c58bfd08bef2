// Package archetype loads the per-archetype NPC stat and ability-policy
// table from YAML, in the teacher's internal/data.Load*Table style.
package archetype

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/l1jgo/hexcore/internal/combat"
	"github.com/l1jgo/hexcore/internal/worldstate"
)

// Def is the static profile for one archetype: resource pools, contested
// attributes, recovery timing, and ability-usage policy thresholds.
// RunAbilityPolicy does not read the threshold fields (SignatureAbility,
// StaminaFloor, MinRange, MaxRange); it uses its own per-archetype
// constants. Spawn reads MaxRange for the NPC's target-search radius.
type Def struct {
	Name string `yaml:"name"`

	Health  float64 `yaml:"health"`
	Stamina float64 `yaml:"stamina"`
	Mana    float64 `yaml:"mana"`

	Toughness float64 `yaml:"toughness"`
	Composure float64 `yaml:"composure"`
	Dominance float64 `yaml:"dominance"`
	Impact    float64 `yaml:"impact"`
	Cunning   float64 `yaml:"cunning"`
	Finesse   float64 `yaml:"finesse"`
	Vitality  float64 `yaml:"vitality"`
	Focus     float64 `yaml:"focus"`

	RecoveryMinMs int64 `yaml:"recovery_min_ms"`
	RecoveryMaxMs int64 `yaml:"recovery_max_ms"`

	SignatureAbility uint8   `yaml:"signature_ability"`
	StaminaFloor     float64 `yaml:"stamina_floor"`
	MinRange         int     `yaml:"min_range"`
	MaxRange         int     `yaml:"max_range"`

	// SpawnWeight is this archetype's share of engagement spawns,
	// relative to the other loaded archetypes (teacher's
	// NpcTemplate.random_mixed 40/60 split, generalized to N entries).
	SpawnWeight int `yaml:"spawn_weight"`
}

// Ability returns Def's signature ability as a combat.AbilityKind.
func (d Def) Ability() combat.AbilityKind {
	return combat.AbilityKind(d.SignatureAbility)
}

type tableFile struct {
	Archetypes map[string]Def `yaml:"archetypes"`
}

// Table indexes Def by worldstate.Archetype, resolved from the YAML file's
// string keys at load time.
type Table struct {
	defs    map[worldstate.Archetype]Def
	order   []worldstate.Archetype // stable iteration order for weighted pick
	weights []int
	total   int
}

var nameToArchetype = map[string]worldstate.Archetype{
	"berserker":  worldstate.ArchetypeBerserker,
	"juggernaut": worldstate.ArchetypeJuggernaut,
	"defender":   worldstate.ArchetypeDefender,
	"kiter":      worldstate.ArchetypeKiter,
}

// Load reads and validates an archetype table from a YAML file.
func Load(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read archetype table: %w", err)
	}
	var f tableFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse archetype table: %w", err)
	}

	t := &Table{defs: make(map[worldstate.Archetype]Def, len(f.Archetypes))}
	for name, def := range f.Archetypes {
		a, ok := nameToArchetype[name]
		if !ok {
			return nil, fmt.Errorf("archetype table: unknown archetype name %q", name)
		}
		if def.SpawnWeight <= 0 {
			return nil, fmt.Errorf("archetype table: %q must have a positive spawn_weight", name)
		}
		t.defs[a] = def
		t.order = append(t.order, a)
		t.weights = append(t.weights, def.SpawnWeight)
		t.total += def.SpawnWeight
	}
	if len(t.defs) == 0 {
		return nil, fmt.Errorf("archetype table: no archetypes loaded from %s", path)
	}
	return t, nil
}

// Get returns the Def for an archetype, or false if the table doesn't
// carry one.
func (t *Table) Get(a worldstate.Archetype) (Def, bool) {
	d, ok := t.defs[a]
	return d, ok
}

// PickWeighted draws an archetype from the table using roll (expected in
// [0, total weight)), in the same weighted-bucket style as the teacher's
// NpcTemplate.random_mixed.
func (t *Table) PickWeighted(roll int) worldstate.Archetype {
	roll = ((roll % t.total) + t.total) % t.total
	for i, a := range t.order {
		if roll < t.weights[i] {
			return a
		}
		roll -= t.weights[i]
	}
	return t.order[len(t.order)-1]
}
