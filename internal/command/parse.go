// internal/command/parse.go
package command

import (
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/chacras/chacras/internal/config"
	"github.com/chacras/chacras/internal/regmap"
)

const usageText = `Usage: chacras [OPTIONS]

Options:
  -h, --help                       Print this help message
  -p, --port=PATH                  Serial port (default /dev/ttyUSB0)
  -b, --baud=RATE                  Baud rate, bps (default 115200)
  -s, --status                     Battery current, battery voltage, armed flag
  -m, --motor N                    Show the state of motor N (0..3)
  -m, --motor N SETPOINT DIR       Set setpoint and direction (0|1) of motor N
  -a, --armado VALUE               Write the arm flag (1 arms the system)
  -o, --format=text|yaml           Output format (default text)
  -v, --verbose                    Trace Modbus frames on stderr

Exactly one of --status, --motor, --armado must be given.
`

// Usage prints the usage text.
func Usage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// Parse validates args (without the program name) into a Command.
// Every rejection is a *UsageError. The result depends only on which flags
// and how many positional arguments are present, never on their order.
func Parse(args []string) (Command, error) {
	if len(args) == 0 {
		return Command{Action: ActionHelp}, nil
	}

	fs := pflag.NewFlagSet("chacras", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	def := config.Default()

	help := fs.BoolP("help", "h", false, "")
	port := fs.StringP("port", "p", def.Port, "")
	baud := fs.IntP("baud", "b", def.BaudRate, "")
	status := fs.BoolP("status", "s", false, "")
	motor := fs.StringP("motor", "m", "", "")
	armado := fs.StringP("armado", "a", "", "")
	format := fs.StringP("format", "o", string(FormatText), "")
	verbose := fs.BoolP("verbose", "v", false, "")

	if err := fs.Parse(args); err != nil {
		return Command{}, usagef("%v", err)
	}

	if *help {
		if len(args) != 1 {
			return Command{}, usagef("--help takes no other arguments")
		}
		return Command{Action: ActionHelp}, nil
	}

	cmd := Command{
		Config: config.Config{
			Port:     *port,
			BaudRate: *baud,
			Verbose:  *verbose,
		},
		Format: Format(*format),
	}

	if err := config.Validate(cmd.Config); err != nil {
		return Command{}, usagef("%v", err)
	}
	if cmd.Format != FormatText && cmd.Format != FormatYAML {
		return Command{}, usagef("unknown format %q (want text or yaml)", *format)
	}

	// ------------------------------------------------------------
	// ACTION SELECTION (mutually exclusive)
	// ------------------------------------------------------------

	selected := 0
	for _, on := range []bool{*status, fs.Changed("motor"), fs.Changed("armado")} {
		if on {
			selected++
		}
	}
	if selected == 0 {
		return Command{}, usagef("one of --status, --motor, --armado is required")
	}
	if selected > 1 {
		return Command{}, usagef("--status, --motor and --armado are mutually exclusive")
	}

	pos := fs.Args()

	switch {
	case *status:
		if len(pos) != 0 {
			return Command{}, usagef("--status takes no arguments, got %d", len(pos))
		}
		cmd.Action = ActionReadStatus

	case fs.Changed("motor"):
		n, err := parseMotor(*motor)
		if err != nil {
			return Command{}, err
		}
		cmd.Motor = n

		switch len(pos) {
		case 0:
			cmd.Action = ActionReadMotor
		case 2:
			sp, err := parseUint16("setpoint", pos[0])
			if err != nil {
				return Command{}, err
			}
			dir, err := parseDirection(pos[1])
			if err != nil {
				return Command{}, err
			}
			cmd.Action = ActionWriteMotor
			cmd.Setpoint = sp
			cmd.Direction = dir
		default:
			return Command{}, usagef("--motor takes N or N SETPOINT DIR, got %d extra arguments", len(pos))
		}

	default:
		if len(pos) != 0 {
			return Command{}, usagef("--armado takes exactly one value, got %d extra arguments", len(pos))
		}
		v, err := parseArm(*armado)
		if err != nil {
			return Command{}, err
		}
		cmd.Action = ActionWriteArm
		cmd.Arm = v
	}

	return cmd, nil
}

// ---- value parsing ----

func parseMotor(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, usagef("motor index %q is not a number", s)
	}
	if _, err := regmap.MotorAddress(n); err != nil {
		return 0, usagef("motor index %d out of range 0..%d", n, regmap.MotorCount-1)
	}
	return n, nil
}

func parseUint16(name, s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 10, 16)
	if err != nil {
		return 0, usagef("%s %q must be an integer in 0..%d", name, s, math.MaxUint16)
	}
	return uint16(v), nil
}

func parseDirection(s string) (uint16, error) {
	v, err := parseUint16("direction", s)
	if err != nil {
		return 0, err
	}
	if v != regmap.DirectionForward && v != regmap.DirectionReverse {
		return 0, usagef("direction %d must be 0 or 1", v)
	}
	return v, nil
}

// parseArm accepts anything representable in one register, signed or unsigned,
// and returns its 16-bit two's-complement pattern.
func parseArm(s string) (uint16, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil || v < math.MinInt16 || v > math.MaxUint16 {
		return 0, usagef("arm value %q must be an integer in %d..%d", s, math.MinInt16, math.MaxUint16)
	}
	return uint16(v), nil
}
