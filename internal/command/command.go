// internal/command/command.go
package command

import (
	"fmt"

	"github.com/chacras/chacras/internal/config"
)

// Action is the single thing one invocation does.
type Action int

const (
	ActionHelp Action = iota
	ActionReadStatus
	ActionReadMotor
	ActionWriteMotor
	ActionWriteArm
)

func (a Action) String() string {
	switch a {
	case ActionHelp:
		return "help"
	case ActionReadStatus:
		return "read-status"
	case ActionReadMotor:
		return "read-motor"
	case ActionWriteMotor:
		return "write-motor"
	case ActionWriteArm:
		return "write-arm"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// Format selects how results are rendered.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// Command is a fully validated invocation.
// Fields not used by Action are zero.
type Command struct {
	Action Action
	Config config.Config
	Format Format

	Motor     int
	Setpoint  uint16
	Direction uint16

	// Arm is the register bit pattern written to the arm flag.
	Arm uint16
}

// UsageError rejects an invocation before any transport call.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string { return e.Msg }

func usagef(format string, args ...any) *UsageError {
	return &UsageError{Msg: fmt.Sprintf(format, args...)}
}
