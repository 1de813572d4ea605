// internal/dispatcher/dispatcher.go
package dispatcher

import (
	"errors"
	"fmt"
	"io"

	"github.com/chacras/chacras/internal/command"
	"github.com/chacras/chacras/internal/regmap"
)

// Client abstracts the two Modbus operations the dispatcher needs.
// The dispatcher depends on geometry only.
type Client interface {
	ReadRegisters(addr, qty uint16) ([]uint16, error)            // FC 3
	WriteRegisters(addr uint16, values []uint16) (uint16, error) // FC 16
}

// Dispatcher turns one Command into exactly one transaction.
type Dispatcher struct {
	client Client
	out    io.Writer
	format command.Format
}

// New creates a dispatcher writing rendered results to out.
func New(client Client, out io.Writer, format command.Format) (*Dispatcher, error) {
	if client == nil {
		return nil, errors.New("dispatcher: client required")
	}
	if out == nil {
		return nil, errors.New("dispatcher: output required")
	}
	if format == "" {
		format = command.FormatText
	}
	return &Dispatcher{client: client, out: out, format: format}, nil
}

// Execute performs the Command's single transaction, decodes and renders it.
// All-or-nothing: on error nothing is rendered and no partial state is returned.
func (d *Dispatcher) Execute(cmd command.Command) (Result, error) {
	req, err := Plan(cmd)
	if err != nil {
		return Result{}, err
	}

	res, err := d.do(cmd, req)
	if err != nil {
		return Result{}, err
	}

	if err := Render(d.out, d.format, res); err != nil {
		return Result{}, fmt.Errorf("render: %w", err)
	}
	return res, nil
}

func (d *Dispatcher) do(cmd command.Command, req Request) (Result, error) {
	res := Result{Action: cmd.Action, Address: req.Address}

	switch req.Op {
	case OpRead:
		regs, err := d.client.ReadRegisters(req.Address, req.Quantity)
		if err != nil {
			return Result{}, err
		}
		if len(regs) != int(req.Quantity) {
			return Result{}, fmt.Errorf("dispatcher: read %d registers at %d, want %d", len(regs), req.Address, req.Quantity)
		}

		switch cmd.Action {
		case command.ActionReadStatus:
			s, err := regmap.DecodeStatus(regs)
			if err != nil {
				return Result{}, err
			}
			res.Status = &s
		case command.ActionReadMotor:
			m, err := regmap.DecodeMotor(regs)
			if err != nil {
				return Result{}, err
			}
			n := cmd.Motor
			res.Motor = &n
			res.MotorBlock = &m
		}

	case OpWrite:
		written, err := d.client.WriteRegisters(req.Address, req.Values)
		if err != nil {
			return Result{}, err
		}
		// The device confirmation is checked here too; not every client surfaces it.
		if written != req.Quantity {
			return Result{}, fmt.Errorf("dispatcher: device confirmed %d registers at %d, want %d", written, req.Address, req.Quantity)
		}
		res.Written = written

		switch cmd.Action {
		case command.ActionWriteMotor:
			n, sp, dir := cmd.Motor, cmd.Setpoint, cmd.Direction
			res.Motor, res.Setpoint, res.Direction = &n, &sp, &dir
		case command.ActionWriteArm:
			v := cmd.Arm
			res.Arm = &v
		}

	default:
		return Result{}, fmt.Errorf("dispatcher: unsupported op %d", req.Op)
	}

	return res, nil
}
