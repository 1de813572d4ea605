// internal/transport/errors.go
package transport

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/goburrow/modbus"
	"github.com/goburrow/serial"
)

// Kind classifies a failed transaction.
type Kind int

const (
	KindIO Kind = iota
	KindTimeout
	KindException
	KindMismatch
)

func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindTimeout:
		return "timeout"
	case KindException:
		return "exception"
	case KindMismatch:
		return "mismatch"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ConnectError means the serial device (or bench endpoint) could not be opened.
type ConnectError struct {
	Port string
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect %s: %v", e.Port, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// ProtocolError is a failed read or write transaction.
// The transaction is abandoned; nothing is retried.
type ProtocolError struct {
	Op       string
	Address  uint16
	Quantity uint16
	Kind     Kind

	// Code is the Modbus exception code when Kind == KindException.
	Code byte

	Err error
}

func (e *ProtocolError) Error() string {
	if e.Kind == KindException {
		return fmt.Sprintf("%s addr=%d qty=%d: exception 0x%02x: %v", e.Op, e.Address, e.Quantity, e.Code, e.Err)
	}
	return fmt.Sprintf("%s addr=%d qty=%d: %s: %v", e.Op, e.Address, e.Quantity, e.Kind, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// ExceptionCode exposes the device exception code (0 when not an exception).
func (e *ProtocolError) ExceptionCode() uint16 {
	if e.Kind != KindException {
		return 0
	}
	return uint16(e.Code)
}

// classify wraps a library error into a ProtocolError.
func classify(op string, addr, qty uint16, err error) *ProtocolError {
	pe := &ProtocolError{Op: op, Address: addr, Quantity: qty, Kind: KindIO, Err: err}

	var mbErr *modbus.ModbusError
	var netErr net.Error
	switch {
	case errors.As(err, &mbErr):
		pe.Kind = KindException
		pe.Code = mbErr.ExceptionCode
	case errors.Is(err, serial.ErrTimeout):
		pe.Kind = KindTimeout
	case errors.As(err, &netErr) && netErr.Timeout():
		pe.Kind = KindTimeout
	case isEchoMismatch(err):
		pe.Kind = KindMismatch
	}

	return pe
}

// echoFields are the response fields goburrow/modbus checks against the
// request before handing data back. Its errors are plain strings.
var echoFields = []string{"address", "quantity", "value", "data size"}

func isEchoMismatch(err error) bool {
	msg := err.Error()
	if !strings.Contains(msg, " does not match ") {
		return false
	}
	for _, f := range echoFields {
		if strings.Contains(msg, "modbus: response "+f+" ") {
			return true
		}
	}
	return false
}

func mismatch(op string, addr, qty uint16, format string, args ...any) *ProtocolError {
	return &ProtocolError{
		Op:       op,
		Address:  addr,
		Quantity: qty,
		Kind:     KindMismatch,
		Err:      fmt.Errorf(format, args...),
	}
}
