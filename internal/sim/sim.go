// internal/sim/sim.go
package sim

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/goburrow/serial"
	"github.com/tbrandon/mbserver"

	"github.com/chacras/chacras/internal/config"
	"github.com/chacras/chacras/internal/regmap"
)

const (
	fcReadHoldingRegisters  uint8 = 3
	fcWriteHoldingRegisters uint8 = 16
)

// Sim is a Modbus slave exposing the controller's 32-register map.
// Requests outside addresses 0..31 answer exception 0x02.
type Sim struct {
	mu     sync.Mutex
	srv    *mbserver.Server
	logger *log.Logger
}

// New seeds a server from the profile. Motors absent from the profile start zeroed.
func New(cfg config.SimConfig, logger *log.Logger) (*Sim, error) {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	var im regmap.Image
	for _, m := range cfg.Motors {
		err := im.PutMotor(m.Index, regmap.MotorBlock{
			Setpoint:  m.Setpoint,
			Direction: m.Direction,
			Speed:     m.Speed,
			Current:   m.Current,
		})
		if err != nil {
			return nil, err
		}
	}
	im.PutStatus(regmap.StatusBlock{
		BatteryCurrent: cfg.Status.BatteryCurrent,
		BatteryVoltage: cfg.Status.BatteryVoltage,
		Armed:          cfg.Status.Armed,
	})

	s := &Sim{
		srv:    mbserver.NewServer(),
		logger: logger,
	}
	copy(s.srv.HoldingRegisters, im[:])

	s.srv.RegisterFunctionHandler(fcReadHoldingRegisters, s.readHolding)
	s.srv.RegisterFunctionHandler(fcWriteHoldingRegisters, s.writeHolding)

	return s, nil
}

// Listen starts the endpoint selected by a validated, normalized profile.
func (s *Sim) Listen(l config.ListenConfig) error {
	switch {
	case l.TCP != "":
		return s.ListenTCP(l.TCP)
	case l.Serial != "":
		return s.ListenRTU(l.Serial, l.BaudRate)
	default:
		return errors.New("sim: no listen endpoint")
	}
}

// ListenTCP serves Modbus TCP on addr.
func (s *Sim) ListenTCP(addr string) error {
	if err := s.srv.ListenTCP(addr); err != nil {
		return err
	}
	s.logger.Printf("listening on tcp %s", addr)
	return nil
}

// ListenRTU serves Modbus RTU on a serial device with 8N1 framing.
func (s *Sim) ListenRTU(device string, baud int) error {
	err := s.srv.ListenRTU(&serial.Config{
		Address:  device,
		BaudRate: baud,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  10 * time.Second,
	})
	if err != nil {
		return err
	}
	s.logger.Printf("listening on %s at %d bps", device, baud)
	return nil
}

// Close stops all listeners.
func (s *Sim) Close() {
	s.srv.Close()
}

// Image returns a copy of the register map.
func (s *Sim) Image() regmap.Image {
	s.mu.Lock()
	defer s.mu.Unlock()

	var im regmap.Image
	copy(im[:], s.srv.HoldingRegisters)
	return im
}

// ---- function handlers ----

func (s *Sim) readHolding(srv *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
	_, _, err := requestRange(frame)
	if err != nil {
		s.logger.Printf("read rejected: %v", err)
		return []byte{}, &mbserver.IllegalDataAddress
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return mbserver.ReadHoldingRegisters(srv, frame)
}

func (s *Sim) writeHolding(srv *mbserver.Server, frame mbserver.Framer) ([]byte, *mbserver.Exception) {
	addr, qty, err := requestRange(frame)
	if err != nil {
		s.logger.Printf("write rejected: %v", err)
		return []byte{}, &mbserver.IllegalDataAddress
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, exc := mbserver.WriteHoldingRegisters(srv, frame)
	if exc != &mbserver.Success {
		return data, exc
	}

	s.logger.Printf("write: addr=%d values=%v", addr, srv.HoldingRegisters[addr:addr+qty])
	s.echoSetpoints(srv.HoldingRegisters, addr, qty)
	return data, exc
}

// echoSetpoints mirrors each written motor setpoint into that motor's speed
// telemetry, so a bench write is visible on the next read.
func (s *Sim) echoSetpoints(regs []uint16, addr, qty uint16) {
	for n := 0; n < regmap.MotorCount; n++ {
		base, _ := regmap.MotorAddress(n)
		sp := base + regmap.MotorSetpointOffset
		if sp < addr || sp >= addr+qty {
			continue
		}
		hi, lo := regmap.Float32ToRegisters(float32(regs[sp]))
		regs[base+regmap.MotorSpeedOffset] = hi
		regs[base+regmap.MotorSpeedOffset+1] = lo
	}
}

// requestRange reads the common request prefix of FC 3 and FC 16 and checks
// it against the register map.
func requestRange(frame mbserver.Framer) (addr, qty uint16, err error) {
	data := frame.GetData()
	if len(data) < 4 {
		return 0, 0, fmt.Errorf("short request (%d bytes)", len(data))
	}
	addr = binary.BigEndian.Uint16(data[0:2])
	qty = binary.BigEndian.Uint16(data[2:4])
	return addr, qty, regmap.CheckRange(addr, qty)
}
