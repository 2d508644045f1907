package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config describes one simulation scenario. Durations are in virtual
// seconds, distances in the same unit as node positions.
type Config struct {
	TxRange    float64 `yaml:"tx_range"`
	NumDevices int     `yaml:"num_devices"`
	BitRate    float64 `yaml:"bit_rate"`
	PDUSize    int     `yaml:"pdu_size"`

	DiscoveryStart  float64 `yaml:"discovery_start"`
	DiscoveryWindow float64 `yaml:"discovery_window"`
	HelloTimeout    float64 `yaml:"hello_timeout"`
	SlotDuration    float64 `yaml:"slot_duration"`
	SchedStartDelay float64 `yaml:"sched_start_delay"`
	SimDuration     float64 `yaml:"sim_duration"`

	// MaxDiscoveryRetries bounds the re-broadcast loop; 0 keeps the original
	// unbounded behaviour, limited in practice by the horizon.
	MaxDiscoveryRetries int `yaml:"max_discovery_retries"`

	Seed       int64   `yaml:"seed"`
	AreaWidth  float64 `yaml:"area_width"`
	AreaHeight float64 `yaml:"area_height"`

	// ClusterDevices places devices within a few units of the coordinator
	// instead of uniformly over the area.
	ClusterDevices bool `yaml:"cluster_devices"`
}

// Default returns the reference scenario parameters.
func Default() Config {
	return Config{
		TxRange:         150,
		NumDevices:      10,
		BitRate:         250_000,
		PDUSize:         20,
		DiscoveryStart:  5.0,
		DiscoveryWindow: 5.0,
		HelloTimeout:    0.01,
		SlotDuration:    0.1,
		SchedStartDelay: 0.5,
		SimDuration:     50.0,
		Seed:            1,
		AreaWidth:       100,
		AreaHeight:      100,
	}
}

// Load reads a scenario from a YAML file, fills in defaults for omitted
// fields and validates the result.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.TxRange == 0 {
		c.TxRange = def.TxRange
	}
	if c.NumDevices == 0 {
		c.NumDevices = def.NumDevices
	}
	if c.BitRate == 0 {
		c.BitRate = def.BitRate
	}
	if c.PDUSize == 0 {
		c.PDUSize = def.PDUSize
	}
	if c.DiscoveryStart == 0 {
		c.DiscoveryStart = def.DiscoveryStart
	}
	if c.DiscoveryWindow == 0 {
		c.DiscoveryWindow = def.DiscoveryWindow
	}
	if c.HelloTimeout == 0 {
		c.HelloTimeout = def.HelloTimeout
	}
	if c.SlotDuration == 0 {
		c.SlotDuration = def.SlotDuration
	}
	if c.SchedStartDelay == 0 {
		c.SchedStartDelay = def.SchedStartDelay
	}
	if c.SimDuration == 0 {
		c.SimDuration = def.SimDuration
	}
	if c.Seed == 0 {
		c.Seed = def.Seed
	}
	if c.AreaWidth == 0 {
		c.AreaWidth = def.AreaWidth
	}
	if c.AreaHeight == 0 {
		c.AreaHeight = def.AreaHeight
	}
}

func (c *Config) validate() error {
	if c.TxRange < 0 {
		return fmt.Errorf("tx_range must be positive, got %v", c.TxRange)
	}
	if c.NumDevices < 0 {
		return fmt.Errorf("num_devices must be positive, got %v", c.NumDevices)
	}
	if c.BitRate < 0 {
		return fmt.Errorf("bit_rate must be positive, got %v", c.BitRate)
	}
	if c.SlotDuration < 0 {
		return fmt.Errorf("slot_duration must be positive, got %v", c.SlotDuration)
	}
	if c.DiscoveryWindow < 0 {
		return fmt.Errorf("discovery_window must be positive, got %v", c.DiscoveryWindow)
	}
	if c.HelloTimeout < 0 {
		return fmt.Errorf("hello_timeout must be positive, got %v", c.HelloTimeout)
	}
	if c.SimDuration < 0 {
		return fmt.Errorf("sim_duration must be positive, got %v", c.SimDuration)
	}
	if c.MaxDiscoveryRetries < 0 {
		return fmt.Errorf("max_discovery_retries must not be negative, got %d", c.MaxDiscoveryRetries)
	}
	return nil
}
