package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"OGBOT_USERNAME", "OGBOT_PASSWORD", "OGBOT_UNIVERSE", "OGBOT_TARGET_PLANET"} {
		t.Setenv(k, "")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 114, cfg.Account.Universe)
	assert.Equal(t, 10, cfg.Targeting.Radius)
	assert.Equal(t, 2*time.Minute, cfg.GetFreshness())
	assert.Equal(t, 60*time.Second, cfg.GetProbeWait())
	assert.Equal(t, 30*time.Second, cfg.GetTimeout())
	assert.Equal(t, "s114-br.ogame.gameforge.com", cfg.ServerHost())
	require.Len(t, cfg.Defense.Orders, 4)
	assert.Equal(t, DefenseOrderConfig{Code: "406", Count: 20}, cfg.Defense.Orders[0])
	assert.Equal(t, int64(1000000), cfg.Transport.Metal)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Account, cfg.Account)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ogbot.yaml")
	data := []byte(`
account:
  username: commander
  universe: 7
agent:
  mode: explore
  target_planet: Colony
targeting:
  radius: 3
  freshness: 5m
  rules:
    - "Value >= 10000"
defense:
  orders:
    - code: "401"
      count: 10
logging:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, data, 0600))
	clearEnv(t)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "commander", cfg.Account.Username)
	assert.Equal(t, 7, cfg.Account.Universe)
	assert.Equal(t, "explore", cfg.Agent.Mode)
	assert.Equal(t, "Colony", cfg.Agent.TargetPlanet)
	assert.Equal(t, 3, cfg.Targeting.Radius)
	assert.Equal(t, 5*time.Minute, cfg.GetFreshness())
	assert.Equal(t, []string{"Value >= 10000"}, cfg.Targeting.Rules)
	assert.Equal(t, []DefenseOrderConfig{{Code: "401", Count: 10}}, cfg.Defense.Orders)
	// untouched sections keep their defaults
	assert.Equal(t, "60s", cfg.Targeting.ProbeWait)
	assert.Equal(t, "cookies.json", cfg.Session.CookieFile)
	assert.Equal(t, map[string]int{"203": 5}, cfg.Targeting.AttackFleet)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileReplacesAttackFleet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ogbot.yaml")
	data := []byte(`
targeting:
  attack_fleet:
    "204": 10
`)
	require.NoError(t, os.WriteFile(path, data, 0600))
	clearEnv(t)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"204": 10}, cfg.Targeting.AttackFleet)
	assert.Equal(t, map[string]int{"203": 5}, DefaultConfig().Targeting.AttackFleet)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ogbot.yaml")
	require.NoError(t, os.WriteFile(path, []byte("account: [unterminated"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("OGBOT_USERNAME", "env-user")
	t.Setenv("OGBOT_PASSWORD", "env-pass")
	t.Setenv("OGBOT_UNIVERSE", "42")
	t.Setenv("OGBOT_TARGET_PLANET", "Moonbase")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	assert.Equal(t, "env-user", cfg.Account.Username)
	assert.Equal(t, "env-pass", cfg.Account.Password)
	assert.Equal(t, 42, cfg.Account.Universe)
	assert.Equal(t, "Moonbase", cfg.Agent.TargetPlanet)
}

func TestEnvOverrideIgnoresBadUniverse(t *testing.T) {
	t.Setenv("OGBOT_UNIVERSE", "one")

	cfg := DefaultConfig()
	cfg.applyEnvOverrides()

	assert.Equal(t, 114, cfg.Account.Universe)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad universe", func(c *Config) { c.Account.Universe = 0 }},
		{"bad duration", func(c *Config) { c.Targeting.Freshness = "soon" }},
		{"bad order", func(c *Config) { c.Defense.Orders = []DefenseOrderConfig{{Code: "401"}} }},
		{"bad level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"bad timezone", func(c *Config) { c.Game.Timezone = "Mars/Olympus" }},
		{"negative cargo", func(c *Config) { c.Transport.Crystal = -1 }},
		{"negative radius", func(c *Config) { c.Targeting.Radius = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateAcceptsHomeSystemRadius(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Targeting.Radius = 0
	assert.NoError(t, cfg.Validate())
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ogbot.yaml")
	cfg := DefaultConfig()
	cfg.Agent.TargetPlanet = "Colony"
	require.NoError(t, cfg.Save(path))

	clearEnv(t)
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Agent, loaded.Agent)
	assert.Equal(t, cfg.Defense, loaded.Defense)
}
