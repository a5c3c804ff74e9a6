package grid

import "testing"

func TestHomeRegionsAreThreeByFourBlocks(t *testing.T) {
	tests := []struct {
		name    string
		isHome  func(Index) bool
		topLeft Coords
	}{
		{name: "red", isHome: IsRedHome, topLeft: Coords{X: 2, Y: 2}},
		{name: "blue", isHome: IsBlueHome, topLeft: Coords{X: 10, Y: 12}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			count := 0
			for i := Index(0); i < NumCells; i++ {
				c := IndexToCoords(i)
				inBlock := c.X >= tc.topLeft.X && c.X < tc.topLeft.X+3 &&
					c.Y >= tc.topLeft.Y && c.Y < tc.topLeft.Y+4
				if tc.isHome(i) != inBlock {
					t.Fatalf("home membership of %+v = %v, want %v", c, tc.isHome(i), inBlock)
				}
				if inBlock {
					count++
				}
			}
			if count != 12 {
				t.Fatalf("home cells = %d, want 12", count)
			}
		})
	}
}

func TestSpawnIsRingAroundHome(t *testing.T) {
	for _, p := range Players {
		superset := Within(p.SpawnBounds())
		home := p.Home()
		spawn := p.Spawn()
		for i := Index(0); i < NumCells; i++ {
			if home.Contains(i) && spawn.Contains(i) {
				t.Fatalf("%s: index %d is both home and spawn", p, i)
			}
			if superset.Contains(i) != (home.Contains(i) || spawn.Contains(i)) {
				t.Fatalf("%s: index %d breaks spawn = superset minus home", p, i)
			}
		}
		if got, want := spawn.Cells().Len(), p.SpawnBounds().Area()-p.HomeBounds().Area(); got != want {
			t.Fatalf("%s spawn cells = %d, want %d", p, got, want)
		}
	}
}

func TestSpawnPredicatesMatchPlayerRegions(t *testing.T) {
	for i := Index(0); i < NumCells; i++ {
		if IsRedSpawn(i) != Red.Spawn().Contains(i) || IsBlueSpawn(i) != Blue.Spawn().Contains(i) {
			t.Fatalf("spawn predicate mismatch at %d", i)
		}
		if IsRedSpawn(i) && IsBlueSpawn(i) {
			t.Fatalf("index %d is in both spawns", i)
		}
	}
}

func TestBlueGeometryMirrorsRed(t *testing.T) {
	for i := Index(0); i < NumCells; i++ {
		mirrored := CoordsToIndex(Mirror(IndexToCoords(i)))
		if IsRedHome(i) != IsBlueHome(mirrored) {
			t.Fatalf("home symmetry broken at %d", i)
		}
		if IsRedSpawn(i) != IsBlueSpawn(mirrored) {
			t.Fatalf("spawn symmetry broken at %d", i)
		}
	}
}

func TestHomeCenters(t *testing.T) {
	if got := IndexToCoords(RedHomeCenter); got != (Coords{X: 3, Y: 3}) {
		t.Fatalf("red home center = %+v", got)
	}
	if got := IndexToCoords(BlueHomeCenter); got != (Coords{X: 11, Y: 14}) {
		t.Fatalf("blue home center = %+v", got)
	}
	if !IsRedHome(RedHomeCenter) || !IsBlueHome(BlueHomeCenter) {
		t.Fatal("expected home centers inside their homes")
	}
	if Player(7).HomeCenter() != -1 {
		t.Fatal("expected unknown player to have no home center")
	}
}

func TestRegionPredicatesRejectInvalidIndices(t *testing.T) {
	for _, i := range []Index{-1, NumCells, NumCells + 2*NumCols + 2} {
		if IsRedHome(i) || IsBlueHome(i) || IsRedSpawn(i) || IsBlueSpawn(i) {
			t.Fatalf("expected index %d to belong to no region", i)
		}
	}
}

func TestUnknownPlayerOwnsNoCells(t *testing.T) {
	p := Player(9)
	if p.Valid() {
		t.Fatal("expected player 9 to be invalid")
	}
	if p.Spawn().Cells().Len() != 0 || p.Home().Cells().Len() != 0 {
		t.Fatal("expected unknown player regions to be empty")
	}
}

func TestParsePlayer(t *testing.T) {
	tests := []struct {
		input   string
		want    Player
		wantErr bool
	}{
		{input: "red", want: Red},
		{input: "  BLUE ", want: Blue},
		{input: "", wantErr: true},
		{input: "green", wantErr: true},
	}
	for _, tc := range tests {
		got, err := ParsePlayer(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParsePlayer(%q) expected error", tc.input)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParsePlayer(%q): %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("ParsePlayer(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestOpponent(t *testing.T) {
	if Red.Opponent() != Blue || Blue.Opponent() != Red {
		t.Fatal("expected red and blue to oppose each other")
	}
}
