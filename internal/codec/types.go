package codec

import (
	"battleship/internal/zk"
)

// Commitment is what the computer announces before the first shot.
type Commitment struct {
	RootHex string `json:"root_hex"`
	Size    int    `json:"size"`
	Depth   int    `json:"depth"`
}

// Reveal opens the committed layout once the game is over.
type Reveal struct {
	Commitment
	SaltHex string   `json:"salt_hex"`
	Rows    []string `json:"rows"` // one string per row, '1' marks a ship cell
}

type ShotProofPayload struct {
	Proof  []byte        `json:"proof"`
	Public zk.ShotPublic `json:"public"` // cell index, salted root and the answer
}

