// cmd/chacras/main.go
package main

import (
	"errors"
	"io"
	"log"
	"os"

	"github.com/chacras/chacras/internal/command"
	"github.com/chacras/chacras/internal/dispatcher"
	"github.com/chacras/chacras/internal/transport"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// conn is what run needs from an open transport.
type conn interface {
	dispatcher.Client
	Close() error
}

type connectFunc func(transport.Config) (conn, error)

func connectSerial(cfg transport.Config) (conn, error) {
	c, err := transport.Connect(cfg)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, connectSerial))
}

// run performs at most one transaction.
// Order: parse, connect, execute, close. Close runs on every path after a successful connect.
func run(args []string, stdout, stderr io.Writer, connect connectFunc) int {
	logger := log.New(stderr, "chacras: ", 0)

	// --------------------
	// Parse (no IO before this succeeds)
	// --------------------

	cmd, err := command.Parse(args)
	if err != nil {
		logger.Print(err)
		command.Usage(stderr)
		return exitUsage
	}
	if cmd.Action == command.ActionHelp {
		command.Usage(stdout)
		return exitOK
	}

	// --------------------
	// Connect (one attempt)
	// --------------------

	tc := cmd.Config.Transport()
	if cmd.Config.Verbose {
		tc.Logger = log.New(stderr, "modbus: ", log.Lmicroseconds)
	}

	c, err := connect(tc)
	if err != nil {
		logger.Printf("connection failed: %v", err)
		return exitFailure
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Printf("close failed: %v", err)
		}
	}()

	// --------------------
	// Execute (one transaction)
	// --------------------

	d, err := dispatcher.New(c, stdout, cmd.Format)
	if err != nil {
		logger.Print(err)
		return exitFailure
	}

	if _, err := d.Execute(cmd); err != nil {
		logger.Printf("%s failed: %v", cmd.Action, err)
		if code := exceptionCode(err); code != 0 {
			logger.Printf("device exception code 0x%02x", code)
		}
		return exitFailure
	}

	return exitOK
}

// exceptionCode extracts a device exception code without assuming concrete types.
// Returns 0 when the error carries none.
func exceptionCode(err error) uint16 {
	type coder interface{ ExceptionCode() uint16 }

	var c coder
	if errors.As(err, &c) {
		return c.ExceptionCode()
	}
	return 0
}
