package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// maxRandomAttempts bounds rejection sampling per ship before falling back
// to a scan of every legal placement.
const maxRandomAttempts = 1000

var (
	ErrNoRoom        = errors.New("no legal placement left for ship")
	ErrInvalidChoice = errors.New("invalid choice")
	ErrAlreadyPlaced = errors.New("fleet already placed")
)

// Placement is one legal spot for a ship.
type Placement struct {
	Bow         Coord
	Orientation Orientation
}

type Player struct {
	Name string

	fleet   []*Ship
	layout  *Board
	display *Board
	guesses *Board
	placed  bool

	rng *rand.Rand
	ui  UI
	log zerolog.Logger
}

func NewPlayer(name string, size int, classes []ShipClass, rng *rand.Rand, ui UI, log zerolog.Logger) *Player {
	return &Player{
		Name:    name,
		fleet:   BuildFleet(classes),
		layout:  NewBoard(size),
		display: NewBoard(size),
		guesses: NewBoard(size),
		rng:     rng,
		ui:      ui,
		log:     log.With().Str("player", name).Logger(),
	}
}

func (p *Player) Fleet() []*Ship { return p.fleet }

func (p *Player) Ship(ref ShipRef) *Ship { return p.fleet[ref] }

// Layout holds the real ship positions and resolves incoming shots.
func (p *Player) Layout() *Board { return p.layout }

// Display shows the player's own fleet and the opponent's shots at it.
func (p *Player) Display() *Board { return p.display }

// Guesses records the outcome of every shot the player fired.
func (p *Player) Guesses() *Board { return p.guesses }

func (p *Player) size() int { return p.layout.Size() }

func (p *Player) place(ref ShipRef, at Placement) {
	s := p.fleet[ref]
	p.layout.Place(OccupiedBy(ref), s.Length, at.Bow, at.Orientation)
	p.display.Place(MarkerOf(s.Letter()), s.Length, at.Bow, at.Orientation)
	p.log.Debug().Str("ship", s.Name).Str("bow", at.Bow.String()).Str("dir", at.Orientation.String()).Msg("ship placed")
}

// ChoosePlacement asks whether to place the fleet randomly or by hand.
func (p *Player) ChoosePlacement() error {
	for {
		answer, err := p.ui.Prompt("If you want to place ships randomly, input 1.\nIf you want to place ships manually, input 2. Input here: ")
		if err != nil {
			return err
		}
		switch choice, err := parseChoice(answer); {
		case err != nil:
			p.ui.Say("Invalid answer. Please try again")
		case choice == 1:
			return p.PlaceFleetRandomly()
		default:
			return p.PlaceFleetManually()
		}
	}
}

func parseChoice(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || (n != 1 && n != 2) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidChoice, text)
	}
	return n, nil
}

// PlaceFleetRandomly puts every ship on a uniformly sampled legal spot.
func (p *Player) PlaceFleetRandomly() error {
	if p.placed {
		return ErrAlreadyPlaced
	}
	for i, s := range p.fleet {
		at, err := p.randomPlacement(s.Length)
		if err != nil {
			return fmt.Errorf("%s (%d cells): %w", s.Name, s.Length, err)
		}
		p.place(ShipRef(i), at)
	}
	p.placed = true
	return nil
}

func (p *Player) randomPlacement(length int) (Placement, error) {
	n := p.size()
	for attempt := 0; attempt < maxRandomAttempts; attempt++ {
		at := Placement{
			Bow:         Coord{Row: p.rng.IntN(n), Col: p.rng.IntN(n)},
			Orientation: Orientation(p.rng.IntN(2)),
		}
		if p.layout.CanPlace(length, at.Bow, at.Orientation) {
			return at, nil
		}
	}
	legal := p.LegalPlacements(length)
	if len(legal) == 0 {
		return Placement{}, ErrNoRoom
	}
	p.log.Debug().Int("length", length).Int("candidates", len(legal)).Msg("random placement fell back to scan")
	return legal[p.rng.IntN(len(legal))], nil
}

// LegalPlacements scans every (row, col, orientation) triple.
func (p *Player) LegalPlacements(length int) []Placement {
	var out []Placement
	n := p.size()
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			for _, o := range []Orientation{Horizontal, Vertical} {
				bow := Coord{Row: r, Col: c}
				if p.layout.CanPlace(length, bow, o) {
					out = append(out, Placement{Bow: bow, Orientation: o})
				}
			}
		}
	}
	return out
}

// PlaceFleetManually prompts for each ship's bow and direction until the
// placement is legal.
func (p *Player) PlaceFleetManually() error {
	if p.placed {
		return ErrAlreadyPlaced
	}
	for i, s := range p.fleet {
		p.ui.Say("Place your %s (%d cells)", s.Name, s.Length)
		for {
			at, ok, err := p.promptPlacement()
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			if !p.layout.CanPlace(s.Length, at.Bow, at.Orientation) {
				p.ui.Say("Cannot place the ship there. Please try again.")
				continue
			}
			p.place(ShipRef(i), at)
			p.ui.ShowBoards(p)
			break
		}
		p.ui.Say("Ships left to place: %d", len(p.fleet)-i-1)
	}
	p.placed = true
	return nil
}

// promptPlacement reads one position and direction. ok is false when the
// input was malformed and the caller should ask again.
func (p *Player) promptPlacement() (Placement, bool, error) {
	text, err := p.ui.Prompt("Enter the position (e.g. A1): ")
	if err != nil {
		return Placement{}, false, err
	}
	bow, err := ParsePosition(text, p.size())
	if err != nil {
		p.ui.Say("Invalid position. Please try again.")
		return Placement{}, false, nil
	}
	text, err = p.ui.Prompt("Enter the direction (H for horizontal, V for vertical): ")
	if err != nil {
		return Placement{}, false, err
	}
	o, err := ParseOrientation(text)
	if err != nil {
		p.ui.Say("Invalid direction. Please try again.")
		return Placement{}, false, nil
	}
	return Placement{Bow: bow, Orientation: o}, true, nil
}

// MakeGuess prompts until the player names a valid cell they have not
// fired at before.
func (p *Player) MakeGuess() (Coord, error) {
	for {
		text, err := p.ui.Prompt("Enter your guess (e.g. A1): ")
		if err != nil {
			return Coord{}, err
		}
		c, err := ParsePosition(text, p.size())
		if err != nil {
			p.ui.Say("Invalid position. Please try again.")
			continue
		}
		p.ui.Say("You hit %s", c)
		if !p.guesses.At(c).IsEmpty() {
			p.ui.Say("You've hit this cell before. Try again.")
			continue
		}
		return c, nil
	}
}

func (p *Player) HasLost() bool {
	for _, s := range p.fleet {
		if !s.IsSunk() {
			return false
		}
	}
	return true
}
