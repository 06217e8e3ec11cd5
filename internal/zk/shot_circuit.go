package zk

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
)

// ShotCircuit proves that the cell at Index holds Hit under a salted
// commitment Root, without revealing any other cell.
type ShotCircuit struct {
	Bit  frontend.Variable   `gnark:",secret"`
	Salt frontend.Variable   `gnark:",secret"`
	Path []frontend.Variable `gnark:",secret"`

	Index frontend.Variable `gnark:",public"`
	Root  frontend.Variable `gnark:",public"`
	Hit   frontend.Variable `gnark:",public"`
}

// NewShotCircuit allocates a circuit for a tree of the given depth.
func NewShotCircuit(depth int) *ShotCircuit {
	return &ShotCircuit{Path: make([]frontend.Variable, depth)}
}

func (c *ShotCircuit) Define(api frontend.API) error {
	api.AssertIsBoolean(c.Bit)
	api.AssertIsEqual(c.Hit, c.Bit)

	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	h.Write(c.Bit)
	curr := h.Sum()

	// the low bits of Index pick left or right at each level
	dirs := api.ToBinary(c.Index, len(c.Path))
	for i := range c.Path {
		h.Reset()
		left := api.Select(dirs[i], c.Path[i], curr)
		right := api.Select(dirs[i], curr, c.Path[i])
		h.Write(left, right)
		curr = h.Sum()
	}

	h.Reset()
	h.Write(c.Salt, curr)
	api.AssertIsEqual(h.Sum(), c.Root)
	return nil
}
