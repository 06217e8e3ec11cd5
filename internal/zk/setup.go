package zk

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
)

var ErrInvalidProof = errors.New("shot proof rejected")

// ShotPublic is what the verifier learns about a shot.
type ShotPublic struct {
	Index int      `json:"index"`
	Root  *big.Int `json:"root"`
	Hit   uint8    `json:"hit"`
}

// ShotWitness is the defender's private opening of one cell.
type ShotWitness struct {
	Bit   uint8
	Index int
	Path  []*big.Int
	Salt  *big.Int
	Root  *big.Int
}

// Prover compiles the shot circuit once and keeps the Groth16 keys in memory.
type Prover struct {
	depth int
	ccs   constraint.ConstraintSystem
	pk    groth16.ProvingKey
	vk    groth16.VerifyingKey
}

// NewProver compiles the circuit for trees of the given depth and runs the
// Groth16 setup.
func NewProver(depth int) (*Prover, error) {
	if depth < 1 {
		return nil, fmt.Errorf("tree depth %d too small", depth)
	}
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, NewShotCircuit(depth))
	if err != nil {
		return nil, fmt.Errorf("compile shot circuit: %w", err)
	}
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, fmt.Errorf("groth16 setup: %w", err)
	}
	return &Prover{depth: depth, ccs: ccs, pk: pk, vk: vk}, nil
}

func (p *Prover) Depth() int { return p.depth }

// Constraints reports the size of the compiled circuit.
func (p *Prover) Constraints() int { return p.ccs.GetNbConstraints() }

// Prove produces a serialized proof for one cell.
func (p *Prover) Prove(w ShotWitness) ([]byte, ShotPublic, error) {
	if len(w.Path) != p.depth {
		return nil, ShotPublic{}, fmt.Errorf("path has %d levels, circuit expects %d", len(w.Path), p.depth)
	}
	if w.Salt == nil || w.Root == nil {
		return nil, ShotPublic{}, errors.New("missing salt or root")
	}

	assign := NewShotCircuit(p.depth)
	assign.Bit = w.Bit
	assign.Salt = w.Salt
	for i, sib := range w.Path {
		assign.Path[i] = sib
	}
	assign.Index = w.Index
	assign.Root = w.Root
	assign.Hit = w.Bit

	fullWit, err := frontend.NewWitness(assign, ecc.BN254.ScalarField())
	if err != nil {
		return nil, ShotPublic{}, err
	}
	proof, err := groth16.Prove(p.ccs, p.pk, fullWit)
	if err != nil {
		return nil, ShotPublic{}, fmt.Errorf("prove shot: %w", err)
	}

	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, ShotPublic{}, err
	}
	return buf.Bytes(), ShotPublic{Index: w.Index, Root: new(big.Int).Set(w.Root), Hit: w.Bit}, nil
}

// Verify checks a serialized proof against the public values the verifier
// expects. A nil error means the proof is valid.
func (p *Prover) Verify(proofBin []byte, pub ShotPublic) error {
	if pub.Root == nil {
		return errors.New("proof payload missing public root")
	}
	if pub.Hit > 1 {
		return fmt.Errorf("%w: hit must be 0 or 1", ErrInvalidProof)
	}

	pubAssign := NewShotCircuit(p.depth)
	pubAssign.Index = pub.Index
	pubAssign.Root = pub.Root
	pubAssign.Hit = pub.Hit

	pubWit, err := frontend.NewWitness(pubAssign, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return err
	}
	pr := groth16.NewProof(ecc.BN254)
	if _, err := pr.ReadFrom(bytes.NewReader(proofBin)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProof, err)
	}
	if err := groth16.Verify(pr, p.vk, pubWit); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProof, err)
	}
	return nil
}
