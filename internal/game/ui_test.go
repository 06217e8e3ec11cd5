package game

import (
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// scriptUI replays canned input lines and records everything said.
type scriptUI struct {
	inputs       []string
	said         []string
	boards       int
	achievements []Achievements
}

func (u *scriptUI) Prompt(string) (string, error) {
	if len(u.inputs) == 0 {
		return "", io.EOF
	}
	line := u.inputs[0]
	u.inputs = u.inputs[1:]
	return line, nil
}

func (u *scriptUI) Say(format string, args ...any) {
	u.said = append(u.said, fmt.Sprintf(format, args...))
}

func (u *scriptUI) ShowBoards(*Player) { u.boards++ }

func (u *scriptUI) ShowAchievements(a Achievements) {
	u.achievements = append(u.achievements, a)
}

func (u *scriptUI) saidLine(s string) bool {
	for _, line := range u.said {
		if line == s {
			return true
		}
	}
	return false
}

func (u *scriptUI) count(prefix string) int {
	n := 0
	for _, line := range u.said {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func newTestPlayer(t *testing.T, classes []ShipClass, inputs ...string) (*Player, *scriptUI) {
	t.Helper()
	ui := &scriptUI{inputs: inputs}
	p := NewPlayer("Tester", DefaultSize, classes, testRand(1), ui, zerolog.Nop())
	require.Len(t, p.Fleet(), totalShips(classes))
	return p, ui
}

func totalShips(classes []ShipClass) int {
	n := 0
	for _, sc := range classes {
		n += sc.Count
	}
	return n
}

// allCells lists every position on a board in reading order, e.g. A1..J10.
func allCells(size int) []string {
	var out []string
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			out = append(out, Coord{Row: r, Col: c}.String())
		}
	}
	return out
}
