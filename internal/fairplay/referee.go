package fairplay

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"battleship/internal/codec"
	"battleship/internal/game"
	"battleship/internal/zk"
)

var _ game.Referee = (*Referee)(nil)

type Options struct {
	// Proofs makes the computer prove every answer with a Groth16 proof.
	// Without it answers are only audited when the layout is revealed.
	Proofs bool
	Logger zerolog.Logger
}

// Referee implements game.Referee. It plays both roles: the computer as
// defender holding the secret Commitment, and the human's verifier that only
// sees what crosses the wire encoded with the codec types.
type Referee struct {
	opts Options
	log  zerolog.Logger

	secret    *Commitment
	announced codec.Commitment
	prover    *zk.Prover
	answers   map[int]bool
	proven    int
}

func NewReferee(opts Options) *Referee {
	return &Referee{
		opts:    opts,
		log:     opts.Logger.With().Str("component", "fairplay").Logger(),
		answers: make(map[int]bool),
	}
}

func (r *Referee) Commit(layout *game.Board) (string, error) {
	if r.secret != nil {
		return "", errors.New("layout already committed")
	}
	c, err := Commit(layout.Occupancy(), layout.Size())
	if err != nil {
		return "", fmt.Errorf("commit layout: %w", err)
	}
	if r.opts.Proofs {
		start := time.Now()
		p, err := zk.NewProver(c.Depth())
		if err != nil {
			return "", err
		}
		r.prover = p
		r.log.Info().Int("depth", p.Depth()).Int("constraints", p.Constraints()).Dur("took", time.Since(start)).Msg("shot circuit ready")
	}
	r.secret = c

	// the verifier keeps its own copy of what was announced
	var announced codec.Commitment
	if err := roundTrip(c.Public(), &announced); err != nil {
		return "", err
	}
	r.announced = announced
	r.log.Info().Str("root", announced.RootHex).Int("depth", announced.Depth).Msg("layout committed")

	mode := "revealed and checked at the end of the game"
	if r.prover != nil {
		mode = "proven after every shot"
	}
	return fmt.Sprintf("Computer fleet commitment: %s (answers %s)", announced.RootHex, mode), nil
}

func (r *Referee) Check(c game.Coord, hit bool) error {
	if r.secret == nil {
		return errors.New("no layout committed")
	}
	idx := c.Index(r.announced.Size)
	if r.prover == nil {
		r.answers[idx] = hit
		return nil
	}

	w, err := r.secret.Witness(idx)
	if err != nil {
		return err
	}
	proof, pub, err := r.prover.Prove(w)
	if err != nil {
		return fmt.Errorf("%w: cannot prove answer at %s: %v", ErrCommitment, c, err)
	}
	var payload codec.ShotProofPayload
	if err := roundTrip(codec.ShotProofPayload{Proof: proof, Public: pub}, &payload); err != nil {
		return err
	}
	if err := r.verify(c, hit, payload); err != nil {
		return err
	}
	r.answers[idx] = hit
	return nil
}

// verify is the human's side: the proof must be for this cell, this
// commitment and the answer the game reported.
func (r *Referee) verify(c game.Coord, hit bool, payload codec.ShotProofPayload) error {
	root, err := parseHex(r.announced.RootHex)
	if err != nil {
		return err
	}
	pub := payload.Public
	switch {
	case pub.Index != c.Index(r.announced.Size):
		return fmt.Errorf("%w: proof is for cell %d, shot was %s", ErrCommitment, pub.Index, c)
	case pub.Root == nil || pub.Root.Cmp(root) != 0:
		return fmt.Errorf("%w: proof is against another root", ErrCommitment)
	case (pub.Hit == 1) != hit:
		return fmt.Errorf("%w: %s answered hit=%t but proof says %d", ErrCommitment, c, hit, pub.Hit)
	}
	if err := r.prover.Verify(payload.Proof, pub); err != nil {
		return fmt.Errorf("%w: %v", ErrCommitment, err)
	}
	r.proven++
	r.log.Debug().Str("at", c.String()).Bool("hit", hit).Int("proof_bytes", len(payload.Proof)).Msg("shot proof verified")
	return nil
}

func (r *Referee) Reveal(layout *game.Board) (string, error) {
	if r.secret == nil {
		return "", errors.New("no layout committed")
	}
	var rev codec.Reveal
	if err := roundTrip(r.secret.Reveal(), &rev); err != nil {
		return "", err
	}
	if err := VerifyReveal(r.announced, rev, r.answers); err != nil {
		return "", err
	}
	if layout.Size() != r.announced.Size {
		return "", fmt.Errorf("%w: board size changed", ErrCommitment)
	}
	for i, bit := range layout.Occupancy() {
		row, col := i/layout.Size(), i%layout.Size()
		if rev.Rows[row][col] != '0'+bit {
			return "", fmt.Errorf("%w: fleet moved after commitment at %s", ErrCommitment, game.Coord{Row: row, Col: col})
		}
	}
	r.log.Info().Int("answers", len(r.answers)).Int("proofs", r.proven).Msg("layout revealed and verified")
	return fmt.Sprintf("Computer fleet revealed with salt %s: matches the commitment and all %d answers.", rev.SaltHex, len(r.answers)), nil
}

// Proven counts verified shot proofs.
func (r *Referee) Proven() int { return r.proven }

func roundTrip(in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}
