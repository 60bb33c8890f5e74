package server

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config represents the complete server configuration
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Game   GameSettings   `hcl:"game,block"`
}

// ServerSettings contains server-level configuration
type ServerSettings struct {
	Address  string `hcl:"address,optional"`
	Port     int    `hcl:"port,optional"`
	LogLevel string `hcl:"log_level,optional"`
}

// GameSettings controls seeding and pacing for served games. Delays are in
// milliseconds; zero keeps the default, negative disables the delay.
type GameSettings struct {
	Seed        int64 `hcl:"seed,optional"`
	DealDelayMS int   `hcl:"deal_delay_ms,optional"`
	ThinkTimeMS int   `hcl:"think_time_ms,optional"`
	RevealMS    int   `hcl:"reveal_ms,optional"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerSettings{
			Address:  "localhost",
			Port:     8080,
			LogLevel: "info",
		},
		Game: GameSettings{
			DealDelayMS: 200,
			ThinkTimeMS: 1000,
			RevealMS:    3000,
		},
	}
}

// LoadConfig loads configuration from an HCL file, falling back to defaults
// when the file does not exist
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := DefaultConfig()
	if config.Server.Address == "" {
		config.Server.Address = defaults.Server.Address
	}
	if config.Server.Port == 0 {
		config.Server.Port = defaults.Server.Port
	}
	if config.Server.LogLevel == "" {
		config.Server.LogLevel = defaults.Server.LogLevel
	}
	if config.Game.DealDelayMS == 0 {
		config.Game.DealDelayMS = defaults.Game.DealDelayMS
	}
	if config.Game.ThinkTimeMS == 0 {
		config.Game.ThinkTimeMS = defaults.Game.ThinkTimeMS
	}
	if config.Game.RevealMS == 0 {
		config.Game.RevealMS = defaults.Game.RevealMS
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	switch c.Server.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Server.LogLevel)
	}
	return nil
}

// ListenAddress returns the address:port the server binds
func (c *Config) ListenAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Address, c.Server.Port)
}

// delay converts a millisecond setting to a duration, treating negative
// values as zero
func delay(ms int) time.Duration {
	if ms < 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

// DealDelay returns the per-hand dealing pause
func (c *Config) DealDelay() time.Duration { return delay(c.Game.DealDelayMS) }

// ThinkTime returns the bot thinking pause
func (c *Config) ThinkTime() time.Duration { return delay(c.Game.ThinkTimeMS) }

// RevealDelay returns the completed-trick reveal pause
func (c *Config) RevealDelay() time.Duration { return delay(c.Game.RevealMS) }
