// Package console is the terminal front end of the game.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"battleship/internal/game"
)

// Console reads answers line by line and writes everything else to out.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewReader(in), out: out}
}

// Prompt returns one line without its line ending, however long it is.
// It returns io.EOF once the input is exhausted.
func (c *Console) Prompt(msg string) (string, error) {
	fmt.Fprint(c.out, msg)
	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		fmt.Fprintln(c.out)
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) Say(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

func (c *Console) ShowBoards(p *game.Player) {
	fmt.Fprint(c.out, RenderBoards(p.Name, p.Display(), p.Guesses()))
}

func (c *Console) ShowAchievements(a game.Achievements) {
	fmt.Fprint(c.out, RenderAchievements(a))
}

// RenderBoards prints the player's fleet and their shots side by side.
func RenderBoards(name string, own, guesses *game.Board) string {
	var sb strings.Builder
	n := own.Size()
	gridWidth := 5 + 3*n

	left := fmt.Sprintf("%s's Ships", name)
	fmt.Fprintf(&sb, "%-*s    %s's Guesses\n", gridWidth, left, name)

	header := func() string {
		var h strings.Builder
		h.WriteString("     ")
		for col := 1; col <= n; col++ {
			fmt.Fprintf(&h, "%3d", col)
		}
		return h.String()
	}
	rule := "    +" + strings.Repeat("-", 3*n)
	fmt.Fprintf(&sb, "%s    %s\n", header(), header())
	fmt.Fprintf(&sb, "%s    %s\n", rule, rule)

	row := func(b *game.Board, r int) string {
		var line strings.Builder
		fmt.Fprintf(&line, "  %c |", 'A'+rune(r))
		for col := 0; col < n; col++ {
			fmt.Fprintf(&line, "  %c", b.At(game.Coord{Row: r, Col: col}).Glyph())
		}
		return line.String()
	}
	for r := 0; r < n; r++ {
		fmt.Fprintf(&sb, "%s    %s\n", row(own, r), row(guesses, r))
	}
	sb.WriteString("\n")
	return sb.String()
}

// RenderAchievements prints one row per side and one column per ship class.
func RenderAchievements(a game.Achievements) string {
	var sb strings.Builder
	banner := strings.Repeat("*", 56)
	sb.WriteString(banner + "\n")
	sb.WriteString("Achievements by now:\n")

	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "\t"+strings.Join(a.Classes, "\t")+"\t\n")
	for _, r := range a.Rows {
		fmt.Fprint(tw, r.Label)
		for _, class := range a.Classes {
			fmt.Fprintf(tw, "\t%.2f", r.Scores[class])
		}
		fmt.Fprint(tw, "\t\n")
	}
	tw.Flush()

	sb.WriteString(banner + "\n")
	return sb.String()
}
