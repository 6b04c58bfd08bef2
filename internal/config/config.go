package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Network   NetworkConfig   `toml:"network"`
	Logging   LoggingConfig   `toml:"logging"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

type ServerConfig struct {
	TickMs               int     `toml:"tick_ms"`                // fixed simulation step, 125
	ProtocolID           uint32  `toml:"protocol_id"`             // embedded in the transport handshake
	MaxClients           int     `toml:"max_clients"`             // 64
	ZoneCap              int     `toml:"zone_cap"`                // engagements per zone, 8
	EngagementAbandonMs  int     `toml:"engagement_abandon_ms"`   // 60_000
	RespawnMs            int     `toml:"respawn_ms"`              // 5_000
	MovementSpeedDefault float64 `toml:"movement_speed_default"` // 0.005
	AttackGcdMs          int     `toml:"attack_gcd_ms"`           // 1_000
	StartTime            int64   // set at boot, not from config
}

type NetworkConfig struct {
	BindAddress       string        `toml:"bind_address"`
	InQueueSize       int           `toml:"in_queue_size"`
	OutQueueSize      int           `toml:"out_queue_size"`
	MaxPacketsPerTick int           `toml:"max_packets_per_tick"`
	WriteTimeout      time.Duration `toml:"write_timeout"`
	ReadTimeout       time.Duration `toml:"read_timeout"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

type RateLimitConfig struct {
	Enabled          bool `toml:"enabled"`
	PacketsPerSecond int  `toml:"packets_per_second"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Server.StartTime = time.Now().Unix()
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			TickMs:               125,
			ProtocolID:           0x4845_5831, // "HEX1"
			MaxClients:           64,
			ZoneCap:              8,
			EngagementAbandonMs:  60_000,
			RespawnMs:            5_000,
			MovementSpeedDefault: 0.005,
			AttackGcdMs:          1_000,
		},
		Network: NetworkConfig{
			BindAddress:       "0.0.0.0:5000",
			InQueueSize:       128,
			OutQueueSize:      256,
			MaxPacketsPerTick: 32,
			WriteTimeout:      10 * time.Second,
			ReadTimeout:       60 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		RateLimit: RateLimitConfig{
			Enabled:          true,
			PacketsPerSecond: 60,
		},
	}
}
