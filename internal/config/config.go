// internal/config/config.go
package config

import (
	"github.com/chacras/chacras/internal/regmap"
	"github.com/chacras/chacras/internal/transport"
)

// ---- CLI CONNECTION ----

// Defaults used when the corresponding flag is absent.
const (
	DefaultPort     = "/dev/ttyUSB0"
	DefaultBaudRate = 115200
)

// Config is the connection config of one chacras invocation.
// It comes from flags only; no environment or file is consulted.
type Config struct {
	Port     string
	BaudRate int
	Verbose  bool
}

// Default returns the config used when no connection flags are given.
func Default() Config {
	return Config{
		Port:     DefaultPort,
		BaudRate: DefaultBaudRate,
	}
}

// Transport converts the CLI config into transport construction config.
// Slave address and timeout are protocol constants, passed explicitly.
func (c Config) Transport() transport.Config {
	return transport.Config{
		Port:     c.Port,
		BaudRate: c.BaudRate,
		SlaveID:  regmap.SlaveID,
		Timeout:  transport.DefaultTimeout,
	}
}

// ---- SIMULATOR PROFILE ----

// Profile is the YAML document consumed by chacras-sim.
type Profile struct {
	Sim SimConfig `yaml:"sim"`
}

type SimConfig struct {
	Listen ListenConfig  `yaml:"listen"`
	Motors []MotorConfig `yaml:"motors"`
	Status StatusConfig  `yaml:"status"`
}

// ---- LISTEN ----

// ListenConfig selects exactly one of Serial or TCP.
type ListenConfig struct {
	Serial   string `yaml:"serial"`
	BaudRate int    `yaml:"baud_rate"`
	TCP      string `yaml:"tcp"`
}

// ---- INITIAL REGISTER CONTENT ----

type MotorConfig struct {
	Index     int     `yaml:"index"`
	Setpoint  uint16  `yaml:"setpoint"`
	Direction uint16  `yaml:"direction"`
	Speed     float32 `yaml:"speed"`
	Current   float32 `yaml:"current"`
}

type StatusConfig struct {
	BatteryCurrent float32 `yaml:"battery_current"`
	BatteryVoltage float32 `yaml:"battery_voltage"`
	Armed          uint16  `yaml:"armed"`
}
