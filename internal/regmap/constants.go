// internal/regmap/constants.go
package regmap

// Register map layout constants.
// These values define the device protocol and MUST NOT be configurable.

// ---- MAP GEOMETRY ----

// Registers is the number of holding registers exposed by the device (addresses 0..31).
const Registers = 32

// SlaveID is the Modbus address the controller answers on.
const SlaveID uint8 = 1

// ---- MOTOR BLOCKS ----

// MotorCount is the number of motor controllers in the map.
const MotorCount = 4

// MotorBase is the address of motor 0.
const MotorBase = 0

// MotorBlockSize is the number of consecutive registers owned by one motor.
const MotorBlockSize = 6

// Offsets inside a motor block.
const (
	MotorSetpointOffset  = 0
	MotorDirectionOffset = 1
	MotorSpeedOffset     = 2 // float, 2 registers
	MotorCurrentOffset   = 4 // float, 2 registers
)

// MotorWriteSize is the number of registers a motor command writes (setpoint, direction).
// Speed and current are device telemetry and are never written by the master.
const MotorWriteSize = 2

// ---- STATUS BLOCK ----

// StatusBase is the first address of the status block.
const StatusBase = 24

// StatusBlockSize covers battery current (2), battery voltage (2) and the armed flag (1).
const StatusBlockSize = 5

// Offsets inside the status block.
const (
	StatusBatteryCurrentOffset = 0 // float, 2 registers
	StatusBatteryVoltageOffset = 2 // float, 2 registers
	StatusArmedOffset          = 4
)

// ArmedAddress is the single-register arm flag.
const ArmedAddress = StatusBase + StatusArmedOffset

// Addresses 29..31 are reserved. They read back as zero.

// ---- DIRECTION ----

// DirectionForward is the default rotation sense.
const DirectionForward uint16 = 0

// DirectionReverse is the opposite rotation sense.
const DirectionReverse uint16 = 1
