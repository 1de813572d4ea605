// internal/regmap/image.go
package regmap

import "fmt"

// Image is the full holding register map of one device.
// Zero value is a valid all-zero map.
type Image [Registers]uint16

// PutMotor writes the whole block of motor n.
func (im *Image) PutMotor(n int, b MotorBlock) error {
	base, err := MotorAddress(n)
	if err != nil {
		return err
	}
	copy(im[base:], EncodeMotor(b))
	return nil
}

// Motor decodes the block of motor n.
func (im *Image) Motor(n int) (MotorBlock, error) {
	base, err := MotorAddress(n)
	if err != nil {
		return MotorBlock{}, err
	}
	return DecodeMotor(im[base : base+MotorBlockSize])
}

// PutStatus writes the status block.
func (im *Image) PutStatus(s StatusBlock) {
	copy(im[StatusBase:], EncodeStatus(s))
}

// Status decodes the status block.
func (im *Image) Status() StatusBlock {
	s, _ := DecodeStatus(im[StatusBase : StatusBase+StatusBlockSize])
	return s
}

// Contains reports whether [addr, addr+qty) lies inside the map.
func Contains(addr, qty uint16) bool {
	return qty > 0 && int(addr)+int(qty) <= Registers
}

// CheckRange is Contains with an error suitable for callers.
func CheckRange(addr, qty uint16) error {
	if !Contains(addr, qty) {
		return fmt.Errorf("regmap: range %d+%d outside 0..%d", addr, qty, Registers-1)
	}
	return nil
}
