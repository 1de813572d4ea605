// cmd/chacras-sim/main_test.go
package main

import (
	"bytes"
	"log"
	"net"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chacras/chacras/internal/config"
)

func loopbackProfile(t *testing.T) config.SimConfig {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	return config.SimConfig{Listen: config.ListenConfig{TCP: addr}}
}

func waitListening(t *testing.T, addr string) {
	t.Helper()
	require.Eventually(t, func() bool {
		c, err := net.Dial("tcp", addr)
		if err != nil {
			return false
		}
		_ = c.Close()
		return true
	}, 2*time.Second, 10*time.Millisecond)
}

func TestServe_ListenFailure(t *testing.T) {
	var logs bytes.Buffer
	stop := make(chan os.Signal)

	err := serve(config.SimConfig{}, log.New(&logs, "", 0), stop)
	require.ErrorContains(t, err, "listen failed")
}

func TestServe_BadProfile(t *testing.T) {
	cfg := loopbackProfile(t)
	cfg.Motors = []config.MotorConfig{{Index: 9}}

	err := serve(cfg, nil, make(chan os.Signal))
	require.ErrorContains(t, err, "sim build failed")
}

func TestServe_ReleasesPortOnStop(t *testing.T) {
	cfg := loopbackProfile(t)
	stop := make(chan os.Signal, 1)
	done := make(chan error, 1)

	go func() { done <- serve(cfg, nil, stop) }()

	waitListening(t, cfg.Listen.TCP)

	stop <- syscall.SIGTERM
	require.NoError(t, <-done)

	l, err := net.Listen("tcp", cfg.Listen.TCP)
	require.NoError(t, err)
	require.NoError(t, l.Close())
}

func TestServe_PortInUse(t *testing.T) {
	cfg := loopbackProfile(t)
	stop := make(chan os.Signal, 1)
	done := make(chan error, 1)

	go func() { done <- serve(cfg, nil, stop) }()

	waitListening(t, cfg.Listen.TCP)

	// A second instance on the same endpoint fails without waiting on stop.
	require.ErrorContains(t, serve(cfg, nil, make(chan os.Signal)), "listen failed")

	stop <- syscall.SIGTERM
	require.NoError(t, <-done)
}
