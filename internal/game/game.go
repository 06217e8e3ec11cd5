package game

import (
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog"
)

// UI is everything the game needs from the terminal.
type UI interface {
	// Prompt shows msg and blocks for one line of input. An error means the
	// input is gone and the game cannot continue.
	Prompt(msg string) (string, error)
	Say(format string, args ...any)
	ShowBoards(p *Player)
	ShowAchievements(a Achievements)
}

// Referee holds the computer to the layout it committed to at setup.
type Referee interface {
	// Commit fixes the layout and returns the announcement for the player.
	Commit(layout *Board) (string, error)
	// Check confirms that the answer to a shot at c matches the commitment.
	Check(c Coord, hit bool) error
	// Reveal opens the whole layout and verifies it against the commitment.
	Reveal(layout *Board) (string, error)
}

// Achievements is a snapshot of sunk progress per side.
type Achievements struct {
	Classes []string
	Rows    []TallyRow
}

type TallyRow struct {
	Label  string
	Scores map[string]float64
}

type State int

const (
	StateSetup State = iota
	StatePlayerTurn
	StateComputerTurn
	StatePlayerWon
	StateComputerWon
)

func (s State) String() string {
	switch s {
	case StateSetup:
		return "Setup"
	case StatePlayerTurn:
		return "PlayerTurn"
	case StateComputerTurn:
		return "ComputerTurn"
	case StatePlayerWon:
		return "PlayerWon"
	case StateComputerWon:
		return "ComputerWon"
	default:
		return "Unknown"
	}
}

func (s State) Terminal() bool { return s == StatePlayerWon || s == StateComputerWon }

type Options struct {
	Size    int
	Fleet   []ShipClass
	Rand    *rand.Rand
	UI      UI
	Logger  zerolog.Logger
	Referee Referee // optional
}

type Game struct {
	human    *Player
	computer *Player
	state    State

	// cells the computer has not fired at yet
	candidates []Coord

	rng     *rand.Rand
	ui      UI
	log     zerolog.Logger
	referee Referee
}

func New(opts Options) (*Game, error) {
	if opts.Size == 0 {
		opts.Size = DefaultSize
	}
	if opts.Size < 1 || opts.Size > MaxSize {
		return nil, fmt.Errorf("board size %d out of range 1..%d", opts.Size, MaxSize)
	}
	if opts.Fleet == nil {
		opts.Fleet = StandardFleet
	}
	if err := ValidateFleet(opts.Fleet, opts.Size); err != nil {
		return nil, err
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.UI == nil {
		return nil, fmt.Errorf("game needs a UI")
	}
	return &Game{
		human:    NewPlayer("Player", opts.Size, opts.Fleet, opts.Rand, opts.UI, opts.Logger),
		computer: NewPlayer("Computer", opts.Size, opts.Fleet, opts.Rand, opts.UI, opts.Logger),
		state:    StateSetup,
		rng:      opts.Rand,
		ui:       opts.UI,
		log:      opts.Logger,
		referee:  opts.Referee,
	}, nil
}

func (g *Game) Human() *Player { return g.human }

func (g *Game) Computer() *Player { return g.computer }

func (g *Game) State() State { return g.state }

// Remaining is the number of cells the computer can still fire at.
func (g *Game) Remaining() int { return len(g.candidates) }

// Setup places both fleets and commits the computer's layout.
func (g *Game) Setup() error {
	if g.state != StateSetup {
		return fmt.Errorf("setup in state %s", g.state)
	}
	g.ui.Say("Welcome to Battleship!")
	if err := g.human.ChoosePlacement(); err != nil {
		return err
	}
	if err := g.computer.PlaceFleetRandomly(); err != nil {
		return err
	}
	if g.referee != nil {
		msg, err := g.referee.Commit(g.computer.Layout())
		if err != nil {
			return err
		}
		g.ui.Say("%s", msg)
	}

	n := g.human.Layout().Size()
	g.candidates = make([]Coord, 0, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			g.candidates = append(g.candidates, Coord{Row: r, Col: c})
		}
	}
	g.state = StatePlayerTurn
	g.log.Info().Int("size", n).Int("ships", len(g.human.Fleet())).Msg("game set up")
	return nil
}

// Play runs the game to a terminal state.
func (g *Game) Play() (State, error) {
	if g.state == StateSetup {
		if err := g.Setup(); err != nil {
			return g.state, err
		}
	}
	for !g.state.Terminal() {
		var err error
		switch g.state {
		case StatePlayerTurn:
			err = g.PlayerTurn()
		case StateComputerTurn:
			err = g.ComputerTurn()
		default:
			err = fmt.Errorf("unexpected state %s", g.state)
		}
		if err != nil {
			return g.state, err
		}
	}
	return g.state, g.finish()
}

// PlayerTurn fires one human shot at the computer's fleet.
func (g *Game) PlayerTurn() error {
	if g.state != StatePlayerTurn {
		return fmt.Errorf("player turn in state %s", g.state)
	}
	g.ui.Say("Player's turn:")
	g.ui.ShowBoards(g.human)
	c, err := g.human.MakeGuess()
	if err != nil {
		return err
	}
	ref, hit := g.computer.Layout().ResolveShot(c)
	if g.referee != nil {
		if err := g.referee.Check(c, hit); err != nil {
			return err
		}
	}
	g.human.Guesses().RecordShot(c, hit)
	g.log.Debug().Str("by", g.human.Name).Str("at", c.String()).Bool("hit", hit).Msg("shot")

	if hit {
		g.ui.Say("Hit!")
		g.damage(g.computer, ref, "You sank the")
	} else {
		g.ui.Say("Miss!")
	}
	g.ui.Say("")

	if g.computer.HasLost() {
		g.state = StatePlayerWon
		return nil
	}
	g.state = StateComputerTurn
	return nil
}

// ComputerTurn fires at a random cell the computer has not tried yet.
func (g *Game) ComputerTurn() error {
	if g.state != StateComputerTurn {
		return fmt.Errorf("computer turn in state %s", g.state)
	}
	if len(g.candidates) == 0 {
		return fmt.Errorf("computer has no cells left to fire at")
	}
	g.ui.Say("Computer's turn:")
	i := g.rng.IntN(len(g.candidates))
	c := g.candidates[i]
	last := len(g.candidates) - 1
	g.candidates[i] = g.candidates[last]
	g.candidates = g.candidates[:last]
	g.ui.Say("Computer hit %s.", c)

	ref, hit := g.human.Layout().ResolveShot(c)
	g.human.Display().RecordShot(c, hit)
	g.log.Debug().Str("by", g.computer.Name).Str("at", c.String()).Bool("hit", hit).Int("remaining", len(g.candidates)).Msg("shot")

	if hit {
		g.ui.Say("Computer hit your ship!")
		g.damage(g.human, ref, "Computer sank your")
	} else {
		g.ui.Say("Computer missed!")
	}
	g.ui.Say("")

	if g.human.HasLost() {
		g.state = StateComputerWon
		return nil
	}
	g.state = StatePlayerTurn
	return nil
}

func (g *Game) damage(owner *Player, ref ShipRef, phrase string) {
	s := owner.Ship(ref)
	if err := s.RecordHit(); err != nil {
		// unreachable: each cell is fired at once per side
		g.log.Error().Err(err).Str("owner", owner.Name).Msg("hit on sunk ship")
		return
	}
	if s.IsSunk() {
		g.ui.Say("%s %s!", phrase, s.Name)
		g.log.Info().Str("owner", owner.Name).Str("ship", s.Name).Msg("sunk")
		g.ui.ShowAchievements(g.Achievements())
	}
}

// Achievements tallies sunk progress. The Computer row scores the human's
// fleet and the Player row scores the computer's.
func (g *Game) Achievements() Achievements {
	var classes []string
	seen := map[string]bool{}
	for _, s := range g.human.Fleet() {
		if !seen[s.Name] {
			seen[s.Name] = true
			classes = append(classes, s.Name)
		}
	}
	return Achievements{
		Classes: classes,
		Rows: []TallyRow{
			{Label: g.computer.Name, Scores: g.human.Layout().Tally(g.human.Fleet())},
			{Label: g.human.Name, Scores: g.computer.Layout().Tally(g.computer.Fleet())},
		},
	}
}

func (g *Game) finish() error {
	g.ui.ShowBoards(g.human)
	switch g.state {
	case StatePlayerWon:
		g.ui.Say("Congratulations! You won!")
	case StateComputerWon:
		g.ui.Say("Sorry, you lost.")
	}
	g.log.Info().Str("outcome", g.state.String()).Int("computer_shots", g.human.Display().Count(Hit)+g.human.Display().Count(Miss)).Msg("game over")
	if g.referee == nil {
		return nil
	}
	msg, err := g.referee.Reveal(g.computer.Layout())
	if err != nil {
		return err
	}
	g.ui.Say("%s", msg)
	return nil
}
