// internal/dispatcher/render.go
package dispatcher

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/chacras/chacras/internal/command"
)

// Render writes one Result in the requested format.
func Render(w io.Writer, format command.Format, res Result) error {
	switch format {
	case command.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	case command.FormatText, "":
		return renderText(w, res)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func renderText(w io.Writer, res Result) error {
	var err error

	switch res.Action {
	case command.ActionReadStatus:
		s := res.Status
		_, err = fmt.Fprintf(w, "status: battery_current=%f battery_voltage=%f armed=%d\n",
			s.BatteryCurrent, s.BatteryVoltage, s.Armed)

	case command.ActionReadMotor:
		m := res.MotorBlock
		_, err = fmt.Fprintf(w, "motor %d: setpoint=%d direction=%d speed=%f current=%f\n",
			*res.Motor, m.Setpoint, m.Direction, m.Speed, m.Current)

	case command.ActionWriteMotor:
		_, err = fmt.Fprintf(w, "motor %d: setpoint=%d direction=%d (wrote %d registers at %d)\n",
			*res.Motor, *res.Setpoint, *res.Direction, res.Written, res.Address)

	case command.ActionWriteArm:
		_, err = fmt.Fprintf(w, "armed: %d (wrote %d register at %d)\n",
			*res.Arm, res.Written, res.Address)

	default:
		err = fmt.Errorf("nothing to render for %s", res.Action)
	}

	return err
}
