package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidPosition    = errors.New("invalid position")
	ErrInvalidOrientation = errors.New("invalid direction")
)

// Coord addresses a cell; both fields are zero-based.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String renders the coordinate the way a player types it, e.g. "A1".
func (c Coord) String() string {
	return fmt.Sprintf("%c%d", 'A'+rune(c.Row), c.Col+1)
}

// Index is the row-major cell number on a board of the given size.
func (c Coord) Index(size int) int { return c.Row*size + c.Col }

// ParsePosition turns "<letter><1-2 digits>" into a coordinate on a board of
// the given size. Any other text yields an error wrapping ErrInvalidPosition.
func ParsePosition(text string, size int) (Coord, error) {
	s := strings.ToUpper(strings.TrimSpace(text))
	if len(s) < 2 || len(s) > 3 {
		return Coord{}, fmt.Errorf("%w: %q must be a letter followed by a number", ErrInvalidPosition, text)
	}
	letter := s[0]
	if letter < 'A' || letter > 'Z' {
		return Coord{}, fmt.Errorf("%w: %q does not start with a letter", ErrInvalidPosition, text)
	}
	digits := s[1:]
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return Coord{}, fmt.Errorf("%w: %q has a non-numeric column", ErrInvalidPosition, text)
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return Coord{}, fmt.Errorf("%w: %v", ErrInvalidPosition, err)
	}
	c := Coord{Row: int(letter - 'A'), Col: n - 1}
	if c.Row >= size || c.Col < 0 || c.Col >= size {
		return Coord{}, fmt.Errorf("%w: %q is off the %dx%d board", ErrInvalidPosition, text, size, size)
	}
	return c, nil
}

type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "H"
	case Vertical:
		return "V"
	default:
		return "?"
	}
}

// step returns the row/col delta between consecutive cells of a ship.
func (o Orientation) step() (int, int) {
	if o == Vertical {
		return 1, 0
	}
	return 0, 1
}

// ParseOrientation accepts H or V in either case.
func ParseOrientation(text string) (Orientation, error) {
	switch strings.ToUpper(strings.TrimSpace(text)) {
	case "H":
		return Horizontal, nil
	case "V":
		return Vertical, nil
	}
	return 0, fmt.Errorf("%w: %q, use H or V", ErrInvalidOrientation, text)
}
