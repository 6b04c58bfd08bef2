package engagement

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/l1jgo/hexcore/internal/hex"
)

// Haven is a fixed tile that anchors the spatial difficulty curve: spawn
// level scales with hex distance from the nearest one.
type Haven struct {
	Name string  `yaml:"name"`
	Q    int16   `yaml:"q"`
	R    int16   `yaml:"r"`
}

func (h Haven) Loc() hex.Qrz { return hex.Qrz{Q: h.Q, R: h.R} }

type havenTableFile struct {
	Havens []Haven `yaml:"havens"`
}

// HavenTable holds every loaded haven for nearest-haven distance lookups.
type HavenTable struct {
	havens []Haven
}

// LoadHavenTable reads a haven table from a YAML file, in the teacher's
// internal/data.Load*Table style.
func LoadHavenTable(path string) (*HavenTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read haven table: %w", err)
	}
	var f havenTableFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse haven table: %w", err)
	}
	if len(f.Havens) == 0 {
		return nil, fmt.Errorf("haven table: no havens loaded from %s", path)
	}
	return &HavenTable{havens: f.Havens}, nil
}

// NearestDistance returns the hex distance from loc to its closest haven.
func (t *HavenTable) NearestDistance(loc hex.Qrz) int {
	best := -1
	for _, h := range t.havens {
		if d := hex.FlatDistance(loc, h.Loc()); best < 0 || d < best {
			best = d
		}
	}
	return best
}

// bandWidth is how many tiles of haven distance correspond to one level
// step; level caps at 10 regardless of how far past the last band a spawn
// falls, per spec.md's "level (0-10) based on distance from haven".
const bandWidth = 30

// LevelForDistance maps a haven distance to a spawn level in [0, 10].
func LevelForDistance(distance int) int {
	level := distance / bandWidth
	if level > 10 {
		level = 10
	}
	if level < 0 {
		level = 0
	}
	return level
}
