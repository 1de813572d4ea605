// internal/regmap/status.go
package regmap

import "fmt"

// StatusBlock is the decoded battery/arming block at StatusBase.
type StatusBlock struct {
	BatteryCurrent float32 `yaml:"battery_current"`
	BatteryVoltage float32 `yaml:"battery_voltage"`
	Armed          uint16  `yaml:"armed"`
}

// DecodeStatus decodes exactly StatusBlockSize registers.
func DecodeStatus(regs []uint16) (StatusBlock, error) {
	if len(regs) != StatusBlockSize {
		return StatusBlock{}, fmt.Errorf("regmap: status block needs %d registers, got %d", StatusBlockSize, len(regs))
	}

	return StatusBlock{
		BatteryCurrent: Float32FromRegisters(regs[StatusBatteryCurrentOffset], regs[StatusBatteryCurrentOffset+1]),
		BatteryVoltage: Float32FromRegisters(regs[StatusBatteryVoltageOffset], regs[StatusBatteryVoltageOffset+1]),
		Armed:          regs[StatusArmedOffset],
	}, nil
}

// EncodeStatus converts a StatusBlock into its register block.
func EncodeStatus(s StatusBlock) []uint16 {
	regs := make([]uint16, StatusBlockSize)

	regs[StatusBatteryCurrentOffset], regs[StatusBatteryCurrentOffset+1] = Float32ToRegisters(s.BatteryCurrent)
	regs[StatusBatteryVoltageOffset], regs[StatusBatteryVoltageOffset+1] = Float32ToRegisters(s.BatteryVoltage)
	regs[StatusArmedOffset] = s.Armed

	return regs
}
