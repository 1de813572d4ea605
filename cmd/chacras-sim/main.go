// cmd/chacras-sim/main.go
package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/chacras/chacras/internal/config"
	"github.com/chacras/chacras/internal/sim"
)

func main() {
	cfgPath := pflag.StringP("config", "c", "", "simulator profile (YAML)")
	pflag.Parse()

	if *cfgPath == "" {
		log.Fatal("usage: chacras-sim -c <profile.yaml>")
	}

	// --------------------
	// Load + validate profile
	// --------------------

	p, err := config.LoadProfile(*cfgPath)
	if err != nil {
		log.Fatalf("profile load failed: %v", err)
	}

	if err := config.ValidateProfile(p); err != nil {
		log.Fatalf("profile validation failed: %v", err)
	}
	config.NormalizeProfile(p)

	// --------------------
	// Serve until signalled
	// --------------------

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	if err := serve(p.Sim, log.New(os.Stderr, "chacras-sim: ", log.LstdFlags), sigs); err != nil {
		log.Fatal(err)
	}
	log.Print("quit signal received, exiting")
}

// serve runs the simulator until stop fires. Listeners are closed on every
// return path.
func serve(cfg config.SimConfig, logger *log.Logger, stop <-chan os.Signal) error {
	s, err := sim.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("sim build failed: %w", err)
	}
	defer s.Close()

	if err := s.Listen(cfg.Listen); err != nil {
		return fmt.Errorf("listen failed: %w", err)
	}

	<-stop
	return nil
}
