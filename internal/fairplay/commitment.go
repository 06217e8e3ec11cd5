// Package fairplay holds the computer to the fleet it placed: the layout is
// committed with a salted MiMC Merkle root before the first shot, answers can
// be proven against it one by one, and the whole layout is opened at the end.
package fairplay

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"battleship/internal/codec"
	"battleship/internal/merkle"
	"battleship/internal/zk"
)

var ErrCommitment = errors.New("answer does not match the committed fleet")

// Commitment is the defender's secret side of a committed layout.
type Commitment struct {
	size int
	bits []uint8
	tree *merkle.Tree
	salt *big.Int
	root *big.Int // salted
}

// Commit fixes a size x size occupancy grid behind a fresh random salt.
func Commit(bits []uint8, size int) (*Commitment, error) {
	if len(bits) != size*size {
		return nil, fmt.Errorf("layout has %d cells, want %d", len(bits), size*size)
	}
	t, err := merkle.Build(bits)
	if err != nil {
		return nil, err
	}

	// this is to make root unique for same boards
	var e fr.Element
	if _, err := e.SetRandom(); err != nil {
		return nil, err
	}
	salt := e.BigInt(new(big.Int))

	return &Commitment{
		size: size,
		bits: append([]uint8(nil), bits...),
		tree: t,
		salt: salt,
		root: merkle.HashNode(salt, t.Root()),
	}, nil
}

func (c *Commitment) Depth() int { return c.tree.Depth }

func (c *Commitment) Root() *big.Int { return new(big.Int).Set(c.root) }

func (c *Commitment) Public() codec.Commitment {
	return codec.Commitment{RootHex: toHex(c.root), Size: c.size, Depth: c.tree.Depth}
}

// Witness opens one cell for the shot prover.
func (c *Commitment) Witness(idx int) (zk.ShotWitness, error) {
	if idx < 0 || idx >= len(c.bits) {
		return zk.ShotWitness{}, merkle.ErrIndex
	}
	path, err := c.tree.Path(idx)
	if err != nil {
		return zk.ShotWitness{}, err
	}
	return zk.ShotWitness{
		Bit:   c.bits[idx],
		Index: idx,
		Path:  path,
		Salt:  new(big.Int).Set(c.salt),
		Root:  c.Root(),
	}, nil
}

// Reveal opens the whole layout and the salt.
func (c *Commitment) Reveal() codec.Reveal {
	rows := make([]string, c.size)
	for r := range rows {
		var sb strings.Builder
		for _, bit := range c.bits[r*c.size : (r+1)*c.size] {
			sb.WriteByte('0' + bit)
		}
		rows[r] = sb.String()
	}
	return codec.Reveal{Commitment: c.Public(), SaltHex: toHex(c.salt), Rows: rows}
}

// VerifyReveal checks an opened layout against the announced root and
// against every answer given during the game (cell index to hit).
func VerifyReveal(announced codec.Commitment, rev codec.Reveal, answers map[int]bool) error {
	if rev.Size != announced.Size || len(rev.Rows) != announced.Size {
		return fmt.Errorf("%w: revealed %d rows for a %dx%d board", ErrCommitment, len(rev.Rows), announced.Size, announced.Size)
	}
	bits := make([]uint8, 0, announced.Size*announced.Size)
	for _, row := range rev.Rows {
		if len(row) != announced.Size {
			return fmt.Errorf("%w: row %q has the wrong width", ErrCommitment, row)
		}
		for i := 0; i < len(row); i++ {
			switch row[i] {
			case '0':
				bits = append(bits, 0)
			case '1':
				bits = append(bits, 1)
			default:
				return fmt.Errorf("%w: row %q is not binary", ErrCommitment, row)
			}
		}
	}

	salt, err := parseHex(rev.SaltHex)
	if err != nil {
		return err
	}
	root, err := parseHex(announced.RootHex)
	if err != nil {
		return err
	}
	t, err := merkle.Build(bits)
	if err != nil {
		return err
	}
	if merkle.HashNode(salt, t.Root()).Cmp(root) != 0 {
		return fmt.Errorf("%w: revealed layout does not hash to %s", ErrCommitment, announced.RootHex)
	}

	for idx, hit := range answers {
		if idx < 0 || idx >= len(bits) {
			return fmt.Errorf("%w: answer for cell %d is off the board", ErrCommitment, idx)
		}
		if (bits[idx] == 1) != hit {
			return fmt.Errorf("%w: cell %d was answered hit=%t", ErrCommitment, idx, hit)
		}
	}
	return nil
}

func toHex(x *big.Int) string { return fmt.Sprintf("0x%x", x) }

func parseHex(s string) (*big.Int, error) {
	if len(s) < 3 || (s[:2] != "0x" && s[:2] != "0X") {
		return nil, fmt.Errorf("invalid hex value %q", s)
	}
	n, ok := new(big.Int).SetString(s[2:], 16)
	if !ok {
		return nil, fmt.Errorf("cannot parse hex value %q", s)
	}
	return n, nil
}
