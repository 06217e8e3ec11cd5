package merkle

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	bnmimc "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

var (
	ErrIndex    = errors.New("leaf index out of range")
	ErrMismatch = errors.New("merkle path does not lead to root")
)

// --- encode BN254 field elements as 32-byte big-endian ---
func feBytes(x *big.Int) []byte {
	var e fr.Element
	e.SetBigInt(x)
	b := e.Bytes()
	return b[:]
}

// HashLeaf hashes one occupancy bit, matching the in-circuit leaf hash.
func HashLeaf(bit uint8) *big.Int {
	h := bnmimc.NewMiMC()
	h.Write(feBytes(new(big.Int).SetUint64(uint64(bit))))
	return new(big.Int).SetBytes(h.Sum(nil))
}

// HashNode hashes two children, left first.
func HashNode(left, right *big.Int) *big.Int {
	h := bnmimc.NewMiMC()
	h.Write(feBytes(left))
	h.Write(feBytes(right))
	return new(big.Int).SetBytes(h.Sum(nil))
}

// Tree is a binary Merkle tree over a power-of-two number of leaves, stored
// level by level. Leaves past the data are hashes of a zero bit.
type Tree struct {
	Depth  int          `json:"depth"`
	Levels [][]*big.Int `json:"levels"` // Levels[0]=leaves, Levels[Depth]=root
}

// DepthFor returns the smallest depth whose tree holds n leaves.
func DepthFor(n int) int {
	d := 0
	for 1<<d < n {
		d++
	}
	return d
}

// Build commits to a sequence of bits.
func Build(bits []uint8) (*Tree, error) {
	if len(bits) == 0 {
		return nil, errors.New("no leaves")
	}
	depth := DepthFor(len(bits))
	size := 1 << depth

	pad := HashLeaf(0)
	leaves := make([]*big.Int, size)
	for i := range leaves {
		if i < len(bits) {
			if bits[i] > 1 {
				return nil, errors.New("leaf is not a bit")
			}
			leaves[i] = HashLeaf(bits[i])
		} else {
			leaves[i] = new(big.Int).Set(pad)
		}
	}

	levels := [][]*big.Int{leaves}
	for n := size; n > 1; n /= 2 {
		prev := levels[len(levels)-1]
		up := make([]*big.Int, n/2)
		for i := range up {
			up[i] = HashNode(prev[2*i], prev[2*i+1])
		}
		levels = append(levels, up)
	}
	return &Tree{Depth: depth, Levels: levels}, nil
}

func (t *Tree) Root() *big.Int { return new(big.Int).Set(t.Levels[len(t.Levels)-1][0]) }

// Path returns the sibling hashes from leaf idx up to the root.
// Bit i of idx tells whether the node at level i is a right child.
func (t *Tree) Path(idx int) ([]*big.Int, error) {
	if idx < 0 || idx >= len(t.Levels[0]) {
		return nil, ErrIndex
	}
	path := make([]*big.Int, 0, t.Depth)
	cur := idx
	for level := 0; level < t.Depth; level++ {
		path = append(path, new(big.Int).Set(t.Levels[level][cur^1]))
		cur /= 2
	}
	return path, nil
}

// VerifyPath recomputes the root from a leaf bit and its path.
func VerifyPath(bit uint8, idx int, path []*big.Int, root *big.Int) error {
	if idx < 0 || idx >= 1<<len(path) {
		return ErrIndex
	}
	cur := HashLeaf(bit)
	for level, sib := range path {
		if (idx>>level)&1 == 1 {
			cur = HashNode(sib, cur)
		} else {
			cur = HashNode(cur, sib)
		}
	}
	if cur.Cmp(root) != 0 {
		return ErrMismatch
	}
	return nil
}
