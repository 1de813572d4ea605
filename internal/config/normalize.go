// internal/config/normalize.go
package config

// NormalizeProfile applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after ValidateProfile().
func NormalizeProfile(p *Profile) {
	if p == nil {
		return
	}

	// Serial listeners default to the master's baud rate.
	if p.Sim.Listen.Serial != "" && p.Sim.Listen.BaudRate == 0 {
		p.Sim.Listen.BaudRate = DefaultBaudRate
	}
}
