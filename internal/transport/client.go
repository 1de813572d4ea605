// internal/transport/client.go
package transport

import (
	"encoding/binary"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/goburrow/modbus"
)

// DefaultTimeout bounds every round trip. There is no cancellation once a request is in flight.
const DefaultTimeout = 1 * time.Second

// tcpScheme selects Modbus TCP for bench use against the simulator.
const tcpScheme = "tcp://"

// Config is construction-time transport config.
// Serial framing is fixed 8N1.
type Config struct {
	Port     string
	BaudRate int
	SlaveID  uint8
	Timeout  time.Duration

	// Logger, when set, receives the library's frame trace.
	Logger *log.Logger
}

type handler interface {
	Connect() error
	Close() error
}

// Client is a single connection bound to one slave address.
// Exactly one transaction at a time; callers serialize externally.
type Client struct {
	handler handler
	client  modbus.Client
	closed  bool
}

// Connect opens the port. One attempt, no reconnect.
func Connect(cfg Config) (*Client, error) {
	if cfg.Port == "" {
		return nil, &ConnectError{Err: errors.New("port required")}
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	var h handler
	var mc modbus.Client

	if strings.HasPrefix(cfg.Port, tcpScheme) {
		th := modbus.NewTCPClientHandler(strings.TrimPrefix(cfg.Port, tcpScheme))
		th.Timeout = cfg.Timeout
		th.SlaveId = cfg.SlaveID
		th.Logger = cfg.Logger
		h, mc = th, modbus.NewClient(th)
	} else {
		if cfg.BaudRate <= 0 {
			return nil, &ConnectError{Port: cfg.Port, Err: errors.New("baud rate must be > 0")}
		}
		rh := modbus.NewRTUClientHandler(cfg.Port)
		rh.BaudRate = cfg.BaudRate
		rh.DataBits = 8
		rh.Parity = "N"
		rh.StopBits = 1
		rh.SlaveId = cfg.SlaveID
		rh.Timeout = cfg.Timeout
		rh.Logger = cfg.Logger
		h, mc = rh, modbus.NewClient(rh)
	}

	if err := h.Connect(); err != nil {
		return nil, &ConnectError{Port: cfg.Port, Err: err}
	}

	return &Client{
		handler: h,
		client:  mc,
	}, nil
}

// Close releases the port. Safe to call more than once and on a nil client.
func (c *Client) Close() error {
	if c == nil || c.handler == nil || c.closed {
		return nil
	}
	c.closed = true
	return c.handler.Close()
}

// ReadRegisters issues FC 0x03 and returns exactly qty registers in address order.
func (c *Client) ReadRegisters(addr, qty uint16) ([]uint16, error) {
	const op = "read holding registers"

	if c == nil || c.client == nil || c.closed {
		return nil, &ProtocolError{Op: op, Address: addr, Quantity: qty, Err: errors.New("not connected")}
	}

	raw, err := c.client.ReadHoldingRegisters(addr, qty)
	if err != nil {
		return nil, classify(op, addr, qty, err)
	}
	if len(raw) != int(qty)*2 {
		return nil, mismatch(op, addr, qty, "got %d bytes, want %d", len(raw), int(qty)*2)
	}

	return unpackRegisters(raw), nil
}

// WriteRegisters issues FC 0x10 and returns the quantity the device confirmed.
// A confirmed quantity different from len(values) is a protocol error.
func (c *Client) WriteRegisters(addr uint16, values []uint16) (uint16, error) {
	const op = "write multiple registers"
	qty := uint16(len(values))

	if c == nil || c.client == nil || c.closed {
		return 0, &ProtocolError{Op: op, Address: addr, Quantity: qty, Err: errors.New("not connected")}
	}

	raw, err := c.client.WriteMultipleRegisters(addr, qty, packRegisters(values))
	if err != nil {
		return 0, classify(op, addr, qty, err)
	}
	if len(raw) < 2 {
		return 0, mismatch(op, addr, qty, "short confirmation (%d bytes)", len(raw))
	}

	written := binary.BigEndian.Uint16(raw)
	if written != qty {
		return written, mismatch(op, addr, qty, "device confirmed %d registers, want %d", written, qty)
	}

	return written, nil
}

// ---- helpers (pure geometry) ----

func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = binary.BigEndian.Uint16(data[2*i:])
	}
	return out
}

func packRegisters(regs []uint16) []byte {
	out := make([]byte, len(regs)*2)
	for i, r := range regs {
		binary.BigEndian.PutUint16(out[2*i:], r)
	}
	return out
}
