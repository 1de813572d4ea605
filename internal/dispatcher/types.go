// internal/dispatcher/types.go
package dispatcher

import (
	"github.com/chacras/chacras/internal/command"
	"github.com/chacras/chacras/internal/regmap"
)

// Op is the Modbus function a Request uses.
type Op uint8

const (
	OpRead  Op = 3  // Read Holding Registers
	OpWrite Op = 16 // Write Multiple Registers
)

// Request describes one transaction.
// Geometry only: no semantics.
type Request struct {
	Op       Op
	Address  uint16
	Quantity uint16

	// Values is set for OpWrite only; len(Values) == Quantity.
	Values []uint16
}

// Result is the decoded outcome of one Command.
// Exactly one of the block pointers is set for reads; writes carry Written.
type Result struct {
	Action  command.Action `yaml:"-"`
	Motor   *int           `yaml:"motor,omitempty"`
	Address uint16         `yaml:"address"`

	Status     *regmap.StatusBlock `yaml:"status,omitempty"`
	MotorBlock *regmap.MotorBlock  `yaml:"motor_block,omitempty"`

	// Write echo.
	Setpoint  *uint16 `yaml:"setpoint,omitempty"`
	Direction *uint16 `yaml:"direction,omitempty"`
	Arm       *uint16 `yaml:"armed,omitempty"`
	Written   uint16  `yaml:"written,omitempty"`
}
