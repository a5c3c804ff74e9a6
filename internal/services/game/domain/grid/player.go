package grid

import (
	"fmt"
	"strings"
)

// Player identifies one side of a match.
type Player int

const (
	Red Player = iota
	Blue
)

// Players lists both sides in seating order.
var Players = []Player{Red, Blue}

// Home and spawn geometry. Red's rectangles are anchored near the top-left
// corner; Blue's are their reflection through the grid centre.
const (
	homeOffset       = 2
	homeWidth        = 3
	homeHeight       = 4
	spawnMargin      = 1
	homeCenterOffset = 3
)

var (
	redHomeBounds = Bounds{
		TopLeft:     Coords{X: homeOffset, Y: homeOffset},
		BottomRight: Coords{X: homeOffset + homeWidth, Y: homeOffset + homeHeight},
	}
	redSpawnBounds = redHomeBounds.Grow(spawnMargin)

	blueHomeBounds  = MirrorBounds(redHomeBounds)
	blueSpawnBounds = MirrorBounds(redSpawnBounds)

	redHome   = Within(redHomeBounds)
	blueHome  = Within(blueHomeBounds)
	redSpawn  = Within(redSpawnBounds).Minus(redHome)
	blueSpawn = Within(blueSpawnBounds).Minus(blueHome)
)

// Home centres, the canonical origin cell inside each home.
var (
	RedHomeCenter  = CoordsToIndex(Coords{X: homeCenterOffset, Y: homeCenterOffset})
	BlueHomeCenter = CoordsToIndex(Mirror(Coords{X: homeCenterOffset, Y: homeCenterOffset}))
)

// IsRedHome reports whether i is inside the red home.
func IsRedHome(i Index) bool { return redHome.Contains(i) }

// IsBlueHome reports whether i is inside the blue home.
func IsBlueHome(i Index) bool { return blueHome.Contains(i) }

// IsRedSpawn reports whether i is on the ring surrounding the red home.
func IsRedSpawn(i Index) bool { return redSpawn.Contains(i) }

// IsBlueSpawn reports whether i is on the ring surrounding the blue home.
func IsBlueSpawn(i Index) bool { return blueSpawn.Contains(i) }

// Valid reports whether p is a known side.
func (p Player) Valid() bool {
	return p == Red || p == Blue
}

// Opponent returns the other side.
func (p Player) Opponent() Player {
	if p == Red {
		return Blue
	}
	return Red
}

// HomeBounds returns the rectangle of p's home.
func (p Player) HomeBounds() Bounds {
	switch p {
	case Red:
		return redHomeBounds
	case Blue:
		return blueHomeBounds
	}
	return Bounds{}
}

// SpawnBounds returns the rectangle enclosing p's spawn ring and home.
func (p Player) SpawnBounds() Bounds {
	switch p {
	case Red:
		return redSpawnBounds
	case Blue:
		return blueSpawnBounds
	}
	return Bounds{}
}

// Home returns the membership predicate of p's home. Unknown players own
// no cells.
func (p Player) Home() Region {
	switch p {
	case Red:
		return redHome
	case Blue:
		return blueHome
	}
	return nil
}

// Spawn returns the membership predicate of p's spawn ring.
func (p Player) Spawn() Region {
	switch p {
	case Red:
		return redSpawn
	case Blue:
		return blueSpawn
	}
	return nil
}

// HomeCenter returns the centre cell of p's home, or -1 for an unknown
// player.
func (p Player) HomeCenter() Index {
	switch p {
	case Red:
		return RedHomeCenter
	case Blue:
		return BlueHomeCenter
	}
	return -1
}

func (p Player) String() string {
	switch p {
	case Red:
		return "red"
	case Blue:
		return "blue"
	}
	return fmt.Sprintf("player(%d)", int(p))
}

// ParsePlayer validates and normalizes a player name.
func ParsePlayer(value string) (Player, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("player must not be empty")
	}
	switch strings.ToLower(trimmed) {
	case "red":
		return Red, nil
	case "blue":
		return Blue, nil
	}
	return 0, fmt.Errorf("player %q is not supported", trimmed)
}
