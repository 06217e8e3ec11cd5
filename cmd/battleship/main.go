package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"battleship/internal/codec"
	"battleship/internal/config"
	"battleship/internal/console"
	"battleship/internal/fairplay"
	"battleship/internal/game"
	"battleship/internal/logging"
)

func main() {
	cmd, args := "play", os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}
	switch cmd {
	case "play":
		cmdPlay(args)
	case "layout":
		cmdLayout(args)
	case "help":
		usage()
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Print(`Battleship

Commands:
  play   [--config-dir DIR] [--log-level L] [--seed S] [--size N] [--proofs] [--fairplay=false]
  layout [--config-dir DIR] [--seed S] [--size N]
`)
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ExitOnError)
	fs.String("config-dir", ".", "directory holding "+config.FileName)
	fs.String("log-level", "warn", "trace, debug, info, warn or error")
	fs.Uint64("seed", 0, "random seed, 0 picks one")
	fs.Int("size", game.DefaultSize, "board size")
	return fs
}

// setup parses args, loads config and returns the game settings and logger.
func setup(fs *pflag.FlagSet, args []string) (config.GameConfig, zerolog.Logger) {
	boot := logging.New(os.Stderr, "warn")
	_ = fs.Parse(args)

	dir, _ := fs.GetString("config-dir")
	if err := config.Load(dir); err != nil {
		boot.Fatal().Err(err).Str("dir", dir).Msg("cannot load config")
	}
	if err := config.BindFlags(fs); err != nil {
		boot.Fatal().Err(err).Msg("cannot bind flags")
	}
	logger := logging.Setup(os.Stderr, config.GetString("logLevel"))

	cfg, err := config.GetGameConfig()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid config")
	}
	return cfg, logger
}

func newRand(seed uint64, logger zerolog.Logger) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger.Info().Uint64("seed", seed).Msg("random source ready")
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func cmdPlay(args []string) {
	fs := newFlagSet("play")
	fs.Bool("proofs", false, "prove every computer answer with a zk proof")
	fs.Bool("fairplay", true, "commit the computer fleet and check it at the end")
	cfg, logger := setup(fs, args)

	opts := game.Options{
		Size:   cfg.Size,
		Fleet:  cfg.Fleet,
		Rand:   newRand(cfg.Seed, logger),
		UI:     console.New(os.Stdin, os.Stdout),
		Logger: logger,
	}
	if cfg.FairPlay {
		opts.Referee = fairplay.NewReferee(fairplay.Options{Proofs: cfg.Proofs, Logger: logger})
	}

	g, err := game.New(opts)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start game")
	}
	state, err := g.Play()
	switch {
	case errors.Is(err, io.EOF):
		fmt.Println("Input closed, game abandoned.")
		logger.Info().Str("state", state.String()).Msg("game abandoned")
		os.Exit(1)
	case errors.Is(err, fairplay.ErrCommitment):
		fmt.Println("The computer did not play fair:", err)
		os.Exit(3)
	case err != nil:
		logger.Fatal().Err(err).Str("state", state.String()).Msg("game failed")
	}
}

// layoutOutput is one random fleet with its opened commitment.
type layoutOutput struct {
	codec.Reveal
	Grid []string `json:"grid"` // ship letters, '.' for water
}

func cmdLayout(args []string) {
	cfg, logger := setup(newFlagSet("layout"), args)

	p := game.NewPlayer("Computer", cfg.Size, cfg.Fleet, newRand(cfg.Seed, logger), nil, logger)
	if err := p.PlaceFleetRandomly(); err != nil {
		logger.Fatal().Err(err).Msg("cannot place fleet")
	}
	c, err := fairplay.Commit(p.Layout().Occupancy(), cfg.Size)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot commit layout")
	}

	out := layoutOutput{Reveal: c.Reveal(), Grid: make([]string, cfg.Size)}
	for r := range out.Grid {
		var sb strings.Builder
		for col := 0; col < cfg.Size; col++ {
			sb.WriteByte(p.Display().At(game.Coord{Row: r, Col: col}).Glyph())
		}
		out.Grid[r] = sb.String()
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logger.Fatal().Err(err).Msg("cannot write layout")
	}
}
