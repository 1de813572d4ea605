// internal/transport/client_test.go
package transport

import (
	"errors"
	"fmt"
	"testing"

	"github.com/goburrow/modbus"
	"github.com/goburrow/serial"
	"github.com/stretchr/testify/require"
)

// ---- fake library client ----

// fakeModbus embeds modbus.Client so only the calls under test need bodies.
type fakeModbus struct {
	modbus.Client

	readResp  []byte
	writeResp []byte
	err       error

	readCalls  [][2]uint16
	writeCalls []writeCall
}

type writeCall struct {
	addr    uint16
	qty     uint16
	payload []byte
}

func (f *fakeModbus) ReadHoldingRegisters(addr, qty uint16) ([]byte, error) {
	f.readCalls = append(f.readCalls, [2]uint16{addr, qty})
	return f.readResp, f.err
}

func (f *fakeModbus) WriteMultipleRegisters(addr, qty uint16, value []byte) ([]byte, error) {
	f.writeCalls = append(f.writeCalls, writeCall{addr: addr, qty: qty, payload: value})
	return f.writeResp, f.err
}

type fakeHandler struct {
	closes int
}

func (h *fakeHandler) Connect() error { return nil }
func (h *fakeHandler) Close() error   { h.closes++; return nil }

func newTestClient(f *fakeModbus) (*Client, *fakeHandler) {
	h := &fakeHandler{}
	return &Client{handler: h, client: f}, h
}

// ---- tests ----

func TestReadRegisters_UnpacksBigEndian(t *testing.T) {
	f := &fakeModbus{readResp: []byte{0x00, 0x0A, 0x00, 0x01, 0x40, 0xA0, 0x00, 0x00}}
	c, _ := newTestClient(f)

	regs, err := c.ReadRegisters(6, 4)
	require.NoError(t, err)
	require.Equal(t, []uint16{10, 1, 0x40A0, 0}, regs)
	require.Equal(t, [][2]uint16{{6, 4}}, f.readCalls)
}

func TestReadRegisters_ShortResponseIsMismatch(t *testing.T) {
	f := &fakeModbus{readResp: []byte{0x00, 0x0A}}
	c, _ := newTestClient(f)

	_, err := c.ReadRegisters(0, 6)

	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, KindMismatch, pe.Kind)
}

func TestWriteRegisters_PacksAndConfirms(t *testing.T) {
	f := &fakeModbus{writeResp: []byte{0x00, 0x02}}
	c, _ := newTestClient(f)

	n, err := c.WriteRegisters(12, []uint16{300, 1})
	require.NoError(t, err)
	require.Equal(t, uint16(2), n)
	require.Len(t, f.writeCalls, 1)
	require.Equal(t, uint16(12), f.writeCalls[0].addr)
	require.Equal(t, uint16(2), f.writeCalls[0].qty)
	require.Equal(t, []byte{0x01, 0x2C, 0x00, 0x01}, f.writeCalls[0].payload)
}

func TestWriteRegisters_CountMismatch(t *testing.T) {
	f := &fakeModbus{writeResp: []byte{0x00, 0x00}}
	c, _ := newTestClient(f)

	n, err := c.WriteRegisters(28, []uint16{1})

	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, KindMismatch, pe.Kind)
	require.Equal(t, uint16(0), n)
}

func TestClassify(t *testing.T) {
	exc := classify("op", 1, 2, fmt.Errorf("wrapped: %w", &modbus.ModbusError{FunctionCode: 0x83, ExceptionCode: modbus.ExceptionCodeIllegalDataAddress}))
	require.Equal(t, KindException, exc.Kind)
	require.Equal(t, byte(2), exc.Code)
	require.Equal(t, uint16(2), exc.ExceptionCode())

	tmo := classify("op", 1, 2, serial.ErrTimeout)
	require.Equal(t, KindTimeout, tmo.Kind)
	require.Equal(t, uint16(0), tmo.ExceptionCode())

	io := classify("op", 1, 2, errors.New("crc mismatch"))
	require.Equal(t, KindIO, io.Kind)
	require.Contains(t, io.Error(), "crc mismatch")

	crc := classify("op", 1, 2, errors.New("modbus: response crc '4660' does not match expected '22136'"))
	require.Equal(t, KindIO, crc.Kind)
}

func TestClassify_LibraryEchoChecks(t *testing.T) {
	for _, msg := range []string{
		"modbus: response quantity '0' does not match request '1'",
		"modbus: response address '0' does not match request '28'",
		"modbus: response data size '2' does not match count '12'",
	} {
		pe := classify("op", 28, 1, errors.New(msg))
		require.Equal(t, KindMismatch, pe.Kind, msg)
		require.Equal(t, uint16(0), pe.ExceptionCode(), msg)
	}
}

func TestWriteRegisters_LibraryQuantityCheckIsMismatch(t *testing.T) {
	f := &fakeModbus{err: fmt.Errorf("modbus: response quantity '%v' does not match request '%v'", 0, 1)}
	c, _ := newTestClient(f)

	n, err := c.WriteRegisters(28, []uint16{1})

	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, KindMismatch, pe.Kind)
	require.Equal(t, uint16(0), n)
}

func TestLibraryErrorSurfacesAsProtocolError(t *testing.T) {
	f := &fakeModbus{err: &modbus.ModbusError{FunctionCode: 0x90, ExceptionCode: 4}}
	c, _ := newTestClient(f)

	_, err := c.WriteRegisters(0, []uint16{1, 0})

	var pe *ProtocolError
	require.ErrorAs(t, err, &pe)
	require.Equal(t, KindException, pe.Kind)
	require.Equal(t, byte(4), pe.Code)
}

func TestClose_Idempotent(t *testing.T) {
	c, h := newTestClient(&fakeModbus{})

	require.NoError(t, c.Close())
	require.NoError(t, c.Close())
	require.Equal(t, 1, h.closes)

	_, err := c.ReadRegisters(0, 1)
	require.Error(t, err)

	var nilClient *Client
	require.NoError(t, nilClient.Close())
}

func TestConnect_MissingDevice(t *testing.T) {
	_, err := Connect(Config{Port: "/nonexistent/ttyUSB9", BaudRate: 115200, SlaveID: 1})

	var ce *ConnectError
	require.ErrorAs(t, err, &ce)
	require.Equal(t, "/nonexistent/ttyUSB9", ce.Port)
}

func TestConnect_RejectsEmptyPortAndBaud(t *testing.T) {
	_, err := Connect(Config{})
	var ce *ConnectError
	require.ErrorAs(t, err, &ce)

	_, err = Connect(Config{Port: "/dev/ttyUSB0"})
	require.ErrorAs(t, err, &ce)
}
