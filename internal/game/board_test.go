package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_CanPlace(t *testing.T) {
	b := NewBoard(DefaultSize)

	assert.True(t, b.CanPlace(4, Coord{0, 0}, Horizontal))
	assert.True(t, b.CanPlace(4, Coord{0, 6}, Horizontal))
	assert.False(t, b.CanPlace(4, Coord{0, 7}, Horizontal), "runs off the right edge")
	assert.True(t, b.CanPlace(4, Coord{6, 0}, Vertical))
	assert.False(t, b.CanPlace(4, Coord{7, 0}, Vertical), "runs off the bottom edge")
	assert.False(t, b.CanPlace(1, Coord{-1, 0}, Vertical))
	assert.False(t, b.CanPlace(1, Coord{0, 10}, Horizontal))
	assert.False(t, b.CanPlace(0, Coord{0, 0}, Horizontal))
}

func TestBoard_PlaceOccupiesExactRun(t *testing.T) {
	b := NewBoard(DefaultSize)
	require.True(t, b.CanPlace(3, Coord{2, 3}, Vertical))
	b.Place(OccupiedBy(5), 3, Coord{2, 3}, Vertical)

	for _, c := range []Coord{{2, 3}, {3, 3}, {4, 3}} {
		ref, hit := b.ResolveShot(c)
		assert.True(t, hit, c.String())
		assert.Equal(t, ShipRef(5), ref)
	}
	assert.Equal(t, 3, b.Count(Occupied))
	assert.True(t, b.At(Coord{5, 3}).IsEmpty())
	assert.True(t, b.At(Coord{2, 4}).IsEmpty())
}

func TestBoard_PlaceLeavesOtherCellsAlone(t *testing.T) {
	b := NewBoard(DefaultSize)
	b.Place(OccupiedBy(0), 4, Coord{0, 0}, Horizontal)
	before := append([]Cell(nil), b.cells...)

	require.True(t, b.CanPlace(2, Coord{1, 0}, Horizontal))
	b.Place(OccupiedBy(1), 2, Coord{1, 0}, Horizontal)

	for i, cell := range before {
		if !cell.IsEmpty() {
			assert.Equal(t, cell, b.cells[i], "cell %d changed", i)
		}
	}
	assert.Equal(t, 6, b.Count(Occupied))
}

func TestBoard_NoOverlap(t *testing.T) {
	b := NewBoard(DefaultSize)
	b.Place(OccupiedBy(0), 4, Coord{4, 2}, Horizontal) // E3..E6
	b.Place(OccupiedBy(1), 3, Coord{0, 8}, Vertical)   // A9..C9

	taken := map[Coord]bool{}
	for _, c := range Run(4, Coord{4, 2}, Horizontal) {
		taken[c] = true
	}
	for _, c := range Run(3, Coord{0, 8}, Vertical) {
		taken[c] = true
	}

	for r := 0; r < DefaultSize; r++ {
		for c := 0; c < DefaultSize; c++ {
			for _, o := range []Orientation{Horizontal, Vertical} {
				bow := Coord{r, c}
				overlaps := false
				for _, cell := range Run(3, bow, o) {
					if taken[cell] {
						overlaps = true
					}
				}
				if overlaps {
					assert.False(t, b.CanPlace(3, bow, o), "%s %s overlaps", bow, o)
				}
			}
		}
	}
}

func TestBoard_RecordShot(t *testing.T) {
	b := NewBoard(DefaultSize)
	b.Place(MarkerOf('C'), 3, Coord{0, 0}, Horizontal)

	b.RecordShot(Coord{0, 1}, true)
	b.RecordShot(Coord{5, 5}, false)

	assert.Equal(t, byte('X'), b.At(Coord{0, 1}).Glyph())
	assert.Equal(t, byte('M'), b.At(Coord{5, 5}).Glyph())
	assert.Equal(t, byte('C'), b.At(Coord{0, 0}).Glyph())
	assert.Equal(t, byte('.'), b.At(Coord{9, 9}).Glyph())
}

func TestBoard_ResolveShotDoesNotMutate(t *testing.T) {
	b := NewBoard(DefaultSize)
	b.Place(OccupiedBy(2), 2, Coord{3, 3}, Horizontal)

	ref, hit := b.ResolveShot(Coord{3, 4})
	assert.True(t, hit)
	assert.Equal(t, ShipRef(2), ref)

	_, hit = b.ResolveShot(Coord{3, 4})
	assert.True(t, hit, "resolving twice reads the same occupant")

	_, hit = b.ResolveShot(Coord{0, 0})
	assert.False(t, hit)
	assert.Equal(t, 2, b.Count(Occupied))
}

func TestBoard_TallyCountsOnlySunkShips(t *testing.T) {
	fleet := []*Ship{NewShip("Destroyer", 2), NewShip("Cruiser", 3)}
	b := NewBoard(DefaultSize)
	b.Place(OccupiedBy(0), 2, Coord{0, 0}, Horizontal)
	b.Place(OccupiedBy(1), 3, Coord{2, 0}, Horizontal)

	require.NoError(t, fleet[0].RecordHit())
	require.NoError(t, fleet[0].RecordHit())
	require.NoError(t, fleet[1].RecordHit())
	require.NoError(t, fleet[1].RecordHit())

	tally := b.Tally(fleet)
	assert.InDelta(t, 1.0, tally["Destroyer"], 1e-9)
	assert.Equal(t, 0.0, tally["Cruiser"])
	assert.Len(t, tally, 2)
}

func TestBoard_TallyKeysComeFromFleet(t *testing.T) {
	fleet := BuildFleet([]ShipClass{{Name: "Frigate", Length: 2, Count: 2}, {Name: "Raft", Length: 1, Count: 1}})
	b := NewBoard(DefaultSize)

	tally := b.Tally(fleet)
	assert.Equal(t, map[string]float64{"Frigate": 0, "Raft": 0}, tally)

	b.Place(OccupiedBy(0), 2, Coord{0, 0}, Vertical)
	b.Place(OccupiedBy(1), 2, Coord{0, 1}, Vertical)
	for _, s := range fleet[:2] {
		require.NoError(t, s.RecordHit())
		require.NoError(t, s.RecordHit())
	}
	assert.InDelta(t, 2.0, b.Tally(fleet)["Frigate"], 1e-9)
}

func TestBoard_Occupancy(t *testing.T) {
	b := NewBoard(DefaultSize)
	b.Place(OccupiedBy(0), 2, Coord{0, 8}, Horizontal)

	bits := b.Occupancy()
	require.Len(t, bits, 100)
	assert.Equal(t, uint8(1), bits[8])
	assert.Equal(t, uint8(1), bits[9])
	assert.Equal(t, uint8(0), bits[10])

	sum := 0
	for _, v := range bits {
		sum += int(v)
	}
	assert.Equal(t, 2, sum)
}
