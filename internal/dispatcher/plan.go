// internal/dispatcher/plan.go
package dispatcher

import (
	"errors"
	"fmt"

	"github.com/chacras/chacras/internal/command"
	"github.com/chacras/chacras/internal/regmap"
)

// Plan converts a Command into the single Request it needs.
// Pure: no IO.
func Plan(cmd command.Command) (Request, error) {
	switch cmd.Action {
	case command.ActionReadStatus:
		return Request{
			Op:       OpRead,
			Address:  regmap.StatusBase,
			Quantity: regmap.StatusBlockSize,
		}, nil

	case command.ActionReadMotor:
		base, err := regmap.MotorAddress(cmd.Motor)
		if err != nil {
			return Request{}, err
		}
		return Request{
			Op:       OpRead,
			Address:  base,
			Quantity: regmap.MotorBlockSize,
		}, nil

	case command.ActionWriteMotor:
		base, err := regmap.MotorAddress(cmd.Motor)
		if err != nil {
			return Request{}, err
		}
		return Request{
			Op:       OpWrite,
			Address:  base,
			Quantity: regmap.MotorWriteSize,
			Values:   regmap.EncodeMotorCommand(cmd.Setpoint, cmd.Direction),
		}, nil

	case command.ActionWriteArm:
		return Request{
			Op:       OpWrite,
			Address:  regmap.ArmedAddress,
			Quantity: 1,
			Values:   []uint16{cmd.Arm},
		}, nil

	case command.ActionHelp:
		return Request{}, errors.New("dispatcher: help needs no transaction")

	default:
		return Request{}, fmt.Errorf("dispatcher: unsupported action %s", cmd.Action)
	}
}
