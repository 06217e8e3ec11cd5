package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"battleship/internal/game"
)

const (
	FileName  = "battleship.cfg.json"
	EnvPrefix = "BATTLESHIP"

	MinBoardSize = game.DefaultSize
	MaxBoardSize = game.MaxSize
)

// GameConfig holds everything needed to start a game.
type GameConfig struct {
	Size     int
	Seed     uint64
	Fleet    []game.ShipClass
	FairPlay bool
	Proofs   bool
}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"log-level": "logLevel",
	"seed":      "game.seed",
	"size":      "board.size",
	"proofs":    "fairplay.proofs",
	"fairplay":  "fairplay.enabled",
}

// Load reads configuration from JSON file and sets default values.
// configDir is the directory containing the config file. A missing file
// leaves the defaults in place.
func Load(configDir string) error {
	viper.SetDefault("logLevel", "warn")

	viper.SetDefault("board.size", game.DefaultSize)
	viper.SetDefault("game.seed", 0)
	viper.SetDefault("fleet", fleetDefault(game.StandardFleet))

	viper.SetDefault("fairplay.enabled", true)
	viper.SetDefault("fairplay.proofs", false)

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetConfigName(FileName)
	viper.AddConfigPath(configDir)
	viper.SetConfigType("json")

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %v", err)
	}

	return nil
}

// BindFlags lets any flag of fs that was set on the command line override
// the matching config key.
func BindFlags(fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := viper.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}

// GetGameConfig returns the validated game settings.
func GetGameConfig() (GameConfig, error) {
	cfg := GameConfig{
		Size:     GetInt("board.size"),
		Seed:     GetUint64("game.seed"),
		FairPlay: GetBool("fairplay.enabled"),
		Proofs:   GetBool("fairplay.proofs"),
	}
	if cfg.Size < MinBoardSize || cfg.Size > MaxBoardSize {
		return cfg, fmt.Errorf("board.size %d out of range %d..%d", cfg.Size, MinBoardSize, MaxBoardSize)
	}
	if err := viper.UnmarshalKey("fleet", &cfg.Fleet); err != nil {
		return cfg, fmt.Errorf("fleet: %w", err)
	}
	if err := game.ValidateFleet(cfg.Fleet, cfg.Size); err != nil {
		return cfg, fmt.Errorf("fleet: %w", err)
	}
	return cfg, nil
}

func fleetDefault(classes []game.ShipClass) []map[string]any {
	out := make([]map[string]any, len(classes))
	for i, sc := range classes {
		out[i] = map[string]any{"name": sc.Name, "length": sc.Length, "count": sc.Count}
	}
	return out
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}

// GetInt returns an int config value.
func GetInt(key string) int {
	return viper.GetInt(key)
}

// GetUint64 returns an unsigned config value.
func GetUint64(key string) uint64 {
	return viper.GetUint64(key)
}

// GetBool returns a bool config value.
func GetBool(key string) bool {
	return viper.GetBool(key)
}
