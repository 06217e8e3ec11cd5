package game

const (
	// DefaultSize is the classic 10x10 board.
	DefaultSize = 10
	// MaxSize keeps every row addressable by a single letter.
	MaxSize = 26
)

// Board is a size x size grid stored row-major.
type Board struct {
	size  int
	cells []Cell
}

func NewBoard(size int) *Board {
	return &Board{size: size, cells: make([]Cell, size*size)}
}

func (b *Board) Size() int { return b.size }

func (b *Board) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < b.size && c.Col >= 0 && c.Col < b.size
}

// At returns the cell at c; out-of-bounds reads are Empty.
func (b *Board) At(c Coord) Cell {
	if !b.InBounds(c) {
		return Cell{}
	}
	return b.cells[c.Index(b.size)]
}

func (b *Board) set(c Coord, v Cell) { b.cells[c.Index(b.size)] = v }

// Run lists the cells a ship of the given length covers from its bow.
// Cells may fall outside the board.
func Run(length int, bow Coord, o Orientation) []Coord {
	dr, dc := o.step()
	run := make([]Coord, length)
	for i := range run {
		run[i] = Coord{Row: bow.Row + i*dr, Col: bow.Col + i*dc}
	}
	return run
}

// CanPlace reports whether every cell of the run is on the board and Empty.
func (b *Board) CanPlace(length int, bow Coord, o Orientation) bool {
	if length < 1 {
		return false
	}
	for _, c := range Run(length, bow, o) {
		if !b.InBounds(c) || !b.At(c).IsEmpty() {
			return false
		}
	}
	return true
}

// Place writes v into every cell of the run. Callers check CanPlace first.
func (b *Board) Place(v Cell, length int, bow Coord, o Orientation) {
	for _, c := range Run(length, bow, o) {
		b.set(c, v)
	}
}

// RecordShot marks c as Hit or Miss. Only guesses and display boards get
// shot marks; a layout board keeps its ship references.
func (b *Board) RecordShot(c Coord, hit bool) {
	if hit {
		b.set(c, Cell{Kind: Hit})
	} else {
		b.set(c, Cell{Kind: Miss})
	}
}

// ResolveShot reads which ship, if any, occupies c. It does not record damage.
func (b *Board) ResolveShot(c Coord) (ShipRef, bool) {
	cell := b.At(c)
	if cell.Kind != Occupied {
		return 0, false
	}
	return cell.Ship, true
}

// Tally adds 1/length per cell of every sunk ship, grouped by class name.
// Every class present in the fleet gets an entry.
func (b *Board) Tally(fleet []*Ship) map[string]float64 {
	record := make(map[string]float64, len(fleet))
	for _, s := range fleet {
		record[s.Name] += 0
	}
	for _, cell := range b.cells {
		if cell.Kind != Occupied || int(cell.Ship) >= len(fleet) {
			continue
		}
		s := fleet[cell.Ship]
		if s.IsSunk() {
			record[s.Name] += 1 / float64(s.Length)
		}
	}
	return record
}

// Occupancy flattens the board into row-major bits, 1 for a ship cell.
func (b *Board) Occupancy() []uint8 {
	out := make([]uint8, len(b.cells))
	for i, cell := range b.cells {
		if cell.Kind == Occupied {
			out[i] = 1
		}
	}
	return out
}

// Count returns how many cells hold the given kind.
func (b *Board) Count(kind CellKind) int {
	n := 0
	for _, cell := range b.cells {
		if cell.Kind == kind {
			n++
		}
	}
	return n
}
