// internal/regmap/float.go
package regmap

import "math"

// Float32FromRegisters assembles an IEEE-754 single from a register pair.
// The high word is transmitted first; each word is already host-order after
// the transport unpacked it big-endian, so no memory reinterpretation happens here.
func Float32FromRegisters(hi, lo uint16) float32 {
	return math.Float32frombits(uint32(hi)<<16 | uint32(lo))
}

// Float32ToRegisters splits f into (hi, lo) in transmission order.
func Float32ToRegisters(f float32) (hi, lo uint16) {
	bits := math.Float32bits(f)
	return uint16(bits >> 16), uint16(bits)
}
