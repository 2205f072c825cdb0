// Package config loads the bot configuration from YAML with environment
// overrides for credentials and targeting.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

// Config holds all ogbot configuration.
type Config struct {
	Account   AccountConfig   `yaml:"account"`
	Game      GameConfig      `yaml:"game"`
	Session   SessionConfig   `yaml:"session"`
	Agent     AgentConfig     `yaml:"agent"`
	Targeting TargetingConfig `yaml:"targeting"`
	Defense   DefenseConfig   `yaml:"defense"`
	Transport TransportConfig `yaml:"transport"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// AccountConfig holds the login credentials.
type AccountConfig struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Universe int    `yaml:"universe"`
}

// GameConfig describes the game server addresses.
type GameConfig struct {
	BaseURL    string `yaml:"base_url"`    // index address template, %d is the universe
	LoginURL   string `yaml:"login_url"`   // lobby login form target
	ServerHost string `yaml:"server_host"` // login form "uni" value template, %d is the universe
	Timezone   string `yaml:"timezone"`    // IANA zone the server renders dates in
}

// SessionConfig configures the HTTP session.
type SessionConfig struct {
	CookieFile string `yaml:"cookie_file"`
	UserAgent  string `yaml:"user_agent"`
	Timeout    string `yaml:"timeout"`
	Attempts   int    `yaml:"attempts"`
}

// AgentConfig selects what the bot does.
type AgentConfig struct {
	Mode         string `yaml:"mode"`
	TargetPlanet string `yaml:"target_planet"` // empty selects the first planet
}

// TargetingConfig tunes the attack workflow.
type TargetingConfig struct {
	Radius      int            `yaml:"radius"`
	Freshness   string         `yaml:"freshness"`
	ProbeWait   string         `yaml:"probe_wait"`
	Probes      int            `yaml:"probes"`
	AttackFleet map[string]int `yaml:"attack_fleet"`
	Rules       []string       `yaml:"rules"` // extra eligibility conditions, AND-ed with "Defenses == 0"
}

// DefenseOrderConfig is one entry of the auto build order.
type DefenseOrderConfig struct {
	Code  string `yaml:"code"`
	Count int    `yaml:"count"`
}

// DefenseConfig holds the auto build order.
type DefenseConfig struct {
	Orders []DefenseOrderConfig `yaml:"orders"`
}

// TransportConfig is the cargo sent by the transport mode.
type TransportConfig struct {
	Metal     int64 `yaml:"metal"`
	Crystal   int64 `yaml:"crystal"`
	Deuterium int64 `yaml:"deuterium"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Account: AccountConfig{
			Universe: 114,
		},

		Game: GameConfig{
			BaseURL:    "https://s%d-br.ogame.gameforge.com/game/index.php",
			LoginURL:   "https://br.ogame.gameforge.com/main/login",
			ServerHost: "s%d-br.ogame.gameforge.com",
			Timezone:   "America/Sao_Paulo",
		},

		Session: SessionConfig{
			CookieFile: "cookies.json",
			Timeout:    "30s",
			Attempts:   3,
		},

		Agent: AgentConfig{
			Mode: "overview",
		},

		Targeting: TargetingConfig{
			Radius:      10,
			Freshness:   "2m",
			ProbeWait:   "60s",
			Probes:      1,
			AttackFleet: map[string]int{"203": 5},
		},

		Defense: DefenseConfig{
			Orders: []DefenseOrderConfig{
				{Code: "406", Count: 20},
				{Code: "404", Count: 100},
				{Code: "402", Count: 6000},
				{Code: "401", Count: 3000},
			},
		},

		Transport: TransportConfig{
			Metal:     1000000,
			Crystal:   1000000,
			Deuterium: 0,
		},

		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err == nil {
		// yaml merges into a non-nil map; a configured fleet replaces the default.
		fleet := cfg.Targeting.AttackFleet
		cfg.Targeting.AttackFleet = nil
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
		if len(cfg.Targeting.AttackFleet) == 0 {
			cfg.Targeting.AttackFleet = fleet
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("OGBOT_USERNAME"); v != "" {
		c.Account.Username = v
	}
	if v := os.Getenv("OGBOT_PASSWORD"); v != "" {
		c.Account.Password = v
	}
	if v := os.Getenv("OGBOT_UNIVERSE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Account.Universe = n
		}
	}
	if v := os.Getenv("OGBOT_TARGET_PLANET"); v != "" {
		c.Agent.TargetPlanet = v
	}
}

// GetTimeout returns the HTTP timeout as a duration.
func (c *Config) GetTimeout() time.Duration {
	return parseDuration(c.Session.Timeout, 30*time.Second)
}

// GetFreshness returns how old a spy report may be to count as recent.
func (c *Config) GetFreshness() time.Duration {
	return parseDuration(c.Targeting.Freshness, 2*time.Minute)
}

// GetProbeWait returns how long to wait for probes to report back.
func (c *Config) GetProbeWait() time.Duration {
	return parseDuration(c.Targeting.ProbeWait, 60*time.Second)
}

// GetLocation returns the game server time zone, UTC if unknown.
func (c *Config) GetLocation() *time.Location {
	if c.Game.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Game.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ServerHost returns the login form "uni" value for the configured universe.
func (c *Config) ServerHost() string {
	return fmt.Sprintf(c.Game.ServerHost, c.Account.Universe)
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// ValidLogLevels lists the accepted logging levels.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Account.Universe <= 0 {
		return fmt.Errorf("invalid universe: %d", c.Account.Universe)
	}
	if c.Game.BaseURL == "" {
		return fmt.Errorf("game base_url not configured")
	}
	if c.Targeting.Radius < 0 {
		return fmt.Errorf("invalid targeting radius: %d", c.Targeting.Radius)
	}
	for _, s := range []struct{ name, value string }{
		{"session.timeout", c.Session.Timeout},
		{"targeting.freshness", c.Targeting.Freshness},
		{"targeting.probe_wait", c.Targeting.ProbeWait},
	} {
		if s.value == "" {
			continue
		}
		if _, err := time.ParseDuration(s.value); err != nil {
			return fmt.Errorf("invalid %s %q: %w", s.name, s.value, err)
		}
	}
	if c.Game.Timezone != "" {
		if _, err := time.LoadLocation(c.Game.Timezone); err != nil {
			return fmt.Errorf("invalid game timezone %q: %w", c.Game.Timezone, err)
		}
	}
	for _, o := range c.Defense.Orders {
		if o.Code == "" || o.Count <= 0 {
			return fmt.Errorf("invalid defense order: %q x%d", o.Code, o.Count)
		}
	}
	if c.Transport.Metal < 0 || c.Transport.Crystal < 0 || c.Transport.Deuterium < 0 {
		return fmt.Errorf("transport cargo must not be negative")
	}

	validLevel := false
	for _, l := range ValidLogLevels {
		if c.Logging.Level == l {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s (valid: %v)", c.Logging.Level, ValidLogLevels)
	}
	return nil
}
