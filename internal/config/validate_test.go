// internal/config/validate_test.go
package config

import "testing"

// helper to build a profile quickly
func profile(serial, tcp string, motors ...MotorConfig) *Profile {
	return &Profile{
		Sim: SimConfig{
			Listen: ListenConfig{
				Serial: serial,
				TCP:    tcp,
			},
			Motors: motors,
		},
	}
}

// ---- CLI config ----

func TestValidate_Defaults(t *testing.T) {
	if err := Validate(Default()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_BadBaud(t *testing.T) {
	c := Default()
	c.BaudRate = 0
	if err := Validate(c); err == nil {
		t.Fatalf("expected baud error, got nil")
	}
}

func TestValidate_EmptyPort(t *testing.T) {
	c := Default()
	c.Port = ""
	if err := Validate(c); err == nil {
		t.Fatalf("expected port error, got nil")
	}
}

func TestConfig_TransportCarriesFixedSlave(t *testing.T) {
	tc := Default().Transport()
	if tc.SlaveID != 1 {
		t.Fatalf("expected slave 1, got %d", tc.SlaveID)
	}
	if tc.Timeout <= 0 {
		t.Fatalf("expected positive timeout, got %v", tc.Timeout)
	}
}

// ---- profile ----

func TestValidateProfile_SerialOnly(t *testing.T) {
	if err := ValidateProfile(profile("/dev/ttyS1", "")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateProfile_BothListeners(t *testing.T) {
	if err := ValidateProfile(profile("/dev/ttyS1", "127.0.0.1:1502")); err == nil {
		t.Fatalf("expected listener error, got nil")
	}
}

func TestValidateProfile_NoListener(t *testing.T) {
	if err := ValidateProfile(profile("", "")); err == nil {
		t.Fatalf("expected listener error, got nil")
	}
}

func TestValidateProfile_MotorOutOfRange(t *testing.T) {
	if err := ValidateProfile(profile("", "127.0.0.1:1502", MotorConfig{Index: 4})); err == nil {
		t.Fatalf("expected motor index error, got nil")
	}
}

func TestValidateProfile_DuplicateMotor(t *testing.T) {
	p := profile("", "127.0.0.1:1502", MotorConfig{Index: 1}, MotorConfig{Index: 1})
	if err := ValidateProfile(p); err == nil {
		t.Fatalf("expected duplicate error, got nil")
	}
}

func TestValidateProfile_BadDirection(t *testing.T) {
	p := profile("", "127.0.0.1:1502", MotorConfig{Index: 0, Direction: 2})
	if err := ValidateProfile(p); err == nil {
		t.Fatalf("expected direction error, got nil")
	}
}

func TestNormalizeProfile_Defaults(t *testing.T) {
	p := profile("/dev/ttyS1", "")
	if err := ValidateProfile(p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	NormalizeProfile(p)

	if p.Sim.Listen.BaudRate != DefaultBaudRate {
		t.Fatalf("expected baud %d, got %d", DefaultBaudRate, p.Sim.Listen.BaudRate)
	}
}

func TestParseProfile(t *testing.T) {
	doc := []byte(`
sim:
  listen:
    tcp: 127.0.0.1:1502
  motors:
    - index: 1
      setpoint: 10
      direction: 1
      speed: 5
      current: 0.25
  status:
    battery_voltage: 48.5
    armed: 1
`)

	p, err := ParseProfile(doc)
	if err != nil {
		t.Fatalf("ParseProfile err=%v", err)
	}
	if err := ValidateProfile(p); err != nil {
		t.Fatalf("ValidateProfile err=%v", err)
	}
	if len(p.Sim.Motors) != 1 || p.Sim.Motors[0].Speed != 5 {
		t.Fatalf("unexpected motors: %+v", p.Sim.Motors)
	}
	if p.Sim.Status.BatteryVoltage != 48.5 || p.Sim.Status.Armed != 1 {
		t.Fatalf("unexpected status: %+v", p.Sim.Status)
	}
}

func TestParseProfile_UnknownKey(t *testing.T) {
	if _, err := ParseProfile([]byte("sim:\n  bogus: 1\n")); err == nil {
		t.Fatalf("expected unknown key error, got nil")
	}
}

func TestLoadProfile_Example(t *testing.T) {
	p, err := LoadProfile("../../examples/sim-profile.yaml")
	if err != nil {
		t.Fatalf("LoadProfile err=%v", err)
	}
	if err := ValidateProfile(p); err != nil {
		t.Fatalf("ValidateProfile err=%v", err)
	}
	if p.Sim.Listen.TCP == "" || len(p.Sim.Motors) != 2 {
		t.Fatalf("unexpected profile: %+v", p.Sim)
	}
}
