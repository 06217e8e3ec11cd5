package game

import (
	"errors"
	"fmt"
)

var ErrShipSunk = errors.New("ship already sunk")

// ShipClass describes how many ships of one kind a fleet carries.
type ShipClass struct {
	Name   string `json:"name" mapstructure:"name"`
	Length int    `json:"length" mapstructure:"length"`
	Count  int    `json:"count" mapstructure:"count"`
}

// StandardFleet is ten ships, twenty cells.
var StandardFleet = []ShipClass{
	{Name: "Battleship", Length: 4, Count: 1},
	{Name: "Cruiser", Length: 3, Count: 2},
	{Name: "Destroyer", Length: 2, Count: 3},
	{Name: "Submarine", Length: 1, Count: 4},
}

// ValidateFleet checks that a composition can be built and fits on a board.
func ValidateFleet(classes []ShipClass, size int) error {
	if len(classes) == 0 {
		return errors.New("fleet has no ship classes")
	}
	cells := 0
	seen := make(map[string]bool, len(classes))
	for _, sc := range classes {
		switch {
		case sc.Name == "":
			return errors.New("ship class without a name")
		case seen[sc.Name]:
			return fmt.Errorf("ship class %q listed twice", sc.Name)
		case sc.Length < 1 || sc.Length > size:
			return fmt.Errorf("ship class %q: length %d does not fit a %dx%d board", sc.Name, sc.Length, size, size)
		case sc.Count < 1:
			return fmt.Errorf("ship class %q: count must be positive", sc.Name)
		}
		seen[sc.Name] = true
		cells += sc.Length * sc.Count
	}
	if cells > size*size {
		return fmt.Errorf("fleet needs %d cells, board has %d", cells, size*size)
	}
	return nil
}

type Ship struct {
	Name   string
	Length int
	hits   int
}

func NewShip(name string, length int) *Ship {
	return &Ship{Name: name, Length: length}
}

// BuildFleet creates one ship per slot, in composition order.
func BuildFleet(classes []ShipClass) []*Ship {
	var fleet []*Ship
	for _, sc := range classes {
		for i := 0; i < sc.Count; i++ {
			fleet = append(fleet, NewShip(sc.Name, sc.Length))
		}
	}
	return fleet
}

// RecordHit counts one more hit. The count never exceeds the length.
func (s *Ship) RecordHit() error {
	if s.hits >= s.Length {
		return fmt.Errorf("%s: %w", s.Name, ErrShipSunk)
	}
	s.hits++
	return nil
}

func (s *Ship) Hits() int { return s.hits }

func (s *Ship) IsSunk() bool { return s.hits == s.Length }

// Letter is the display marker of the ship's class.
func (s *Ship) Letter() byte {
	if s.Name == "" {
		return '?'
	}
	return s.Name[0]
}
