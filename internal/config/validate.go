// internal/config/validate.go
package config

import (
	"errors"
	"fmt"

	"github.com/chacras/chacras/internal/regmap"
)

// Validate checks the CLI connection config.
// It MUST NOT mutate configuration.
func Validate(c Config) error {
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	if c.BaudRate <= 0 {
		return fmt.Errorf("baud rate %d must be > 0", c.BaudRate)
	}
	return nil
}

// ValidateProfile checks a simulator profile.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func ValidateProfile(p *Profile) error {
	if p == nil {
		return errors.New("profile: nil")
	}
	s := p.Sim

	// ------------------------------------------------------------
	// LISTEN ENDPOINT (exactly one)
	// ------------------------------------------------------------

	if (s.Listen.Serial == "") == (s.Listen.TCP == "") {
		return errors.New("profile: exactly one of listen.serial or listen.tcp must be set")
	}
	if s.Listen.BaudRate < 0 {
		return fmt.Errorf("profile: listen.baud_rate %d must be >= 0", s.Listen.BaudRate)
	}
	if s.Listen.TCP != "" && s.Listen.BaudRate != 0 {
		return errors.New("profile: listen.baud_rate only applies to listen.serial")
	}

	// ------------------------------------------------------------
	// MOTORS (index range, no duplicates, direction enum)
	// ------------------------------------------------------------

	seen := make(map[int]bool)
	for _, m := range s.Motors {
		if _, err := regmap.MotorAddress(m.Index); err != nil {
			return fmt.Errorf("profile: %w", err)
		}
		if seen[m.Index] {
			return fmt.Errorf("profile: motor %d defined twice", m.Index)
		}
		seen[m.Index] = true

		if m.Direction != regmap.DirectionForward && m.Direction != regmap.DirectionReverse {
			return fmt.Errorf("profile: motor %d direction %d must be 0 or 1", m.Index, m.Direction)
		}
	}

	return nil
}
