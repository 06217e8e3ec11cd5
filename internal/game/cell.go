package game

// ShipRef points into the owning player's fleet.
type ShipRef int

type CellKind uint8

const (
	Empty CellKind = iota
	Occupied
	Hit
	Miss
	Marker
)

// Cell is a tagged value. Ship is meaningful for Occupied cells only,
// Letter for Marker cells only.
type Cell struct {
	Kind   CellKind
	Ship   ShipRef
	Letter byte
}

func OccupiedBy(ref ShipRef) Cell { return Cell{Kind: Occupied, Ship: ref} }

func MarkerOf(letter byte) Cell { return Cell{Kind: Marker, Letter: letter} }

func (c Cell) IsEmpty() bool { return c.Kind == Empty }

// Glyph is the character printed for the cell.
func (c Cell) Glyph() byte {
	switch c.Kind {
	case Hit:
		return 'X'
	case Miss:
		return 'M'
	case Marker:
		return c.Letter
	case Occupied:
		return '#'
	default:
		return '.'
	}
}
