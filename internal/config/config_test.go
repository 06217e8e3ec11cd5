package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"battleship/internal/game"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0644))
	return dir
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := writeConfig(t, `{
		"logLevel": "debug",
		"board": { "size": 12 },
		"game": { "seed": 42 },
		"fairplay": { "proofs": true }
	}`)

	require.NoError(t, Load(dir))

	assert.Equal(t, "debug", GetString("logLevel"))
	assert.Equal(t, 12, GetInt("board.size"))
	assert.Equal(t, true, GetBool("fairplay.enabled"))
	assert.Equal(t, true, GetBool("fairplay.proofs"))

	cfg, err := GetGameConfig()
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Size)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, game.StandardFleet, cfg.Fleet)
}

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{}`)))

	assert.Equal(t, "warn", GetString("logLevel"))
	assert.Equal(t, 10, GetInt("board.size"))
	assert.Equal(t, 0, GetInt("game.seed"))
	assert.Equal(t, true, GetBool("fairplay.enabled"))
	assert.Equal(t, false, GetBool("fairplay.proofs"))

	cfg, err := GetGameConfig()
	require.NoError(t, err)
	assert.Equal(t, GameConfig{Size: 10, Fleet: game.StandardFleet, FairPlay: true}, cfg)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load("/nonexistent/path"))
	assert.Equal(t, "warn", GetString("logLevel"))
}

func TestLoad_BrokenFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load(writeConfig(t, `{"logLevel": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("BATTLESHIP_BOARD_SIZE", "15")
	t.Setenv("BATTLESHIP_FAIRPLAY_ENABLED", "false")

	require.NoError(t, Load(writeConfig(t, `{"board": {"size": 12}}`)))

	cfg, err := GetGameConfig()
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Size)
	assert.False(t, cfg.FairPlay)
}

func TestBindFlags(t *testing.T) {
	t.Cleanup(viper.Reset)

	fs := pflag.NewFlagSet("play", pflag.ContinueOnError)
	fs.Int("size", 10, "")
	fs.Uint64("seed", 0, "")
	fs.Bool("proofs", false, "")
	fs.String("log-level", "", "")
	require.NoError(t, fs.Parse([]string{"--seed", "7", "--proofs"}))

	require.NoError(t, Load(writeConfig(t, `{"board": {"size": 11}, "game": {"seed": 3}}`)))
	require.NoError(t, BindFlags(fs))

	cfg, err := GetGameConfig()
	require.NoError(t, err)
	assert.Equal(t, 11, cfg.Size, "unset flag keeps the file value")
	assert.Equal(t, uint64(7), cfg.Seed)
	assert.True(t, cfg.Proofs)
	assert.Equal(t, "warn", GetString("logLevel"))
}

func TestGetGameConfig_UsesOverrides(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(writeConfig(t, `{}`)))

	viper.Set("board.size", MaxBoardSize)
	viper.Set("game.seed", "99")
	viper.Set("fairplay.proofs", "true")

	assert.Equal(t, uint64(99), GetUint64("game.seed"))
	cfg, err := GetGameConfig()
	require.NoError(t, err)
	assert.Equal(t, 26, cfg.Size)
	assert.Equal(t, uint64(99), cfg.Seed)
	assert.True(t, cfg.Proofs)
}

func TestGetGameConfig_CustomFleet(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(writeConfig(t, `{
		"fleet": [
			{ "name": "Carrier", "length": 5, "count": 1 },
			{ "name": "Patrol", "length": 2, "count": 2 }
		]
	}`)))

	cfg, err := GetGameConfig()
	require.NoError(t, err)
	assert.Equal(t, []game.ShipClass{
		{Name: "Carrier", Length: 5, Count: 1},
		{Name: "Patrol", Length: 2, Count: 2},
	}, cfg.Fleet)
}

func TestGetGameConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"board too small", `{"board": {"size": 9}}`},
		{"board too large", `{"board": {"size": 27}}`},
		{"ship too long", `{"fleet": [{"name": "Long", "length": 11, "count": 1}]}`},
		{"no count", `{"fleet": [{"name": "Boat", "length": 2}]}`},
		{"not a list", `{"fleet": "standard"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(viper.Reset)
			require.NoError(t, Load(writeConfig(t, tt.body)))
			_, err := GetGameConfig()
			assert.Error(t, err)
		})
	}
}
