package worldstate

import "github.com/l1jgo/hexcore/internal/hex"

// FindOrKeepTarget scans for a player within Radius when no valid
// TargetLock exists, and breaks the lock once the target leaves Leash.
type FindOrKeepTarget struct {
	Radius int
	Leash  int
}

// FaceTarget has no fields: it reads Target/TargetLock and writes Heading.
type FaceTarget struct{}

// PathLimit bounds how far a PathTo node advances a computed path.
type PathLimit struct {
	Kind  PathLimitKind
	Steps int // meaningful for By and Until
}

type PathLimitKind uint8

const (
	PathLimitComplete PathLimitKind = iota // cap at 20
	PathLimitBy                            // cap to Steps
	PathLimitUntil                         // stop Steps short of Dest
)

// PathTo drives A* pathing toward Dest. Path is stored reversed so
// popping from the back advances one tile at a time.
type PathTo struct {
	Dest  hex.Qrz
	Path  []hex.Qrz
	Limit PathLimit
}

// UseAbilityIfAdjacent fires Ability once distance == 1, in-cone, and Gcd
// is clear.
type UseAbilityIfAdjacent struct {
	Ability uint8
}

// Nearby succeeds when the owning entity is within [Min, Max] hexes of
// Origin; used by Kite to pick its stand-off band.
type Nearby struct {
	Origin   hex.Qrz
	Min, Max int
}
