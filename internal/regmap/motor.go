// internal/regmap/motor.go
package regmap

import "fmt"

// MotorBlock is one decoded motor controller block.
type MotorBlock struct {
	Setpoint  uint16  `yaml:"setpoint"`
	Direction uint16  `yaml:"direction"`
	Speed     float32 `yaml:"speed"`
	Current   float32 `yaml:"current"`
}

// MotorAddress returns the base address of motor n.
func MotorAddress(n int) (uint16, error) {
	if n < 0 || n >= MotorCount {
		return 0, fmt.Errorf("regmap: motor index %d out of range 0..%d", n, MotorCount-1)
	}
	return uint16(MotorBase + n*MotorBlockSize), nil
}

// DecodeMotor decodes exactly MotorBlockSize registers.
func DecodeMotor(regs []uint16) (MotorBlock, error) {
	if len(regs) != MotorBlockSize {
		return MotorBlock{}, fmt.Errorf("regmap: motor block needs %d registers, got %d", MotorBlockSize, len(regs))
	}

	return MotorBlock{
		Setpoint:  regs[MotorSetpointOffset],
		Direction: regs[MotorDirectionOffset],
		Speed:     Float32FromRegisters(regs[MotorSpeedOffset], regs[MotorSpeedOffset+1]),
		Current:   Float32FromRegisters(regs[MotorCurrentOffset], regs[MotorCurrentOffset+1]),
	}, nil
}

// EncodeMotor converts a MotorBlock into its full register block.
// Layout is protocol-locked.
// No IO. No side effects.
func EncodeMotor(b MotorBlock) []uint16 {
	regs := make([]uint16, MotorBlockSize)

	regs[MotorSetpointOffset] = b.Setpoint
	regs[MotorDirectionOffset] = b.Direction
	regs[MotorSpeedOffset], regs[MotorSpeedOffset+1] = Float32ToRegisters(b.Speed)
	regs[MotorCurrentOffset], regs[MotorCurrentOffset+1] = Float32ToRegisters(b.Current)

	return regs
}

// EncodeMotorCommand returns the writable head of a motor block: [setpoint, direction].
func EncodeMotorCommand(setpoint, direction uint16) []uint16 {
	return []uint16{setpoint, direction}
}
