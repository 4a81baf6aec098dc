// Package report renders search events on the terminal.
package report

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/screa/eth-vanity/internal/config"
	"github.com/screa/eth-vanity/internal/crypto"
	"github.com/screa/eth-vanity/pkg/types"
)

var separator = strings.Repeat("-", 87)

var (
	white  = color.New(color.FgWhite)
	cyan   = color.New(color.FgCyan)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
)

// ApplyColorChoice sets the global color mode from a --color value
func ApplyColorChoice(choice string) {
	switch choice {
	case config.ColorAlways, config.ColorAlwaysANSI:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	}
	// auto keeps fatih/color's own terminal detection
}

// Console writes human readable output. In quiet mode only results are
// written, as "0x<address> <private key>" lines.
type Console struct {
	mu    sync.Mutex
	out   io.Writer
	quiet bool
}

// NewConsole creates a console reporter writing to out
func NewConsole(out io.Writer, quiet bool) *Console {
	return &Console{out: out, quiet: quiet}
}

// Header announces how many patterns are searched for
func (c *Console) Header(patterns int) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	white.Fprintln(c.out, separator)
	if patterns <= 1 {
		white.Fprint(c.out, "Looking for an address matching ")
	} else {
		white.Fprint(c.out, "Looking for an address matching any of ")
	}
	cyan.Fprint(c.out, patterns)
	if patterns <= 1 {
		white.Fprintln(c.out, " pattern")
	} else {
		white.Fprintln(c.out, " patterns")
	}
	white.Fprintln(c.out, separator)
}

// Error reports a fatal condition. It is shown even in quiet mode.
func (c *Console) Error(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	red.Fprintln(c.out, msg)
}

func (c *Console) PatternSkipped(skipped *types.SkippedPattern) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	yellow.Fprintf(c.out, "Skipping pattern '%s': ", skipped.Raw)
	white.Fprintln(c.out, skipped.Err)
}

func (c *Console) Throughput(attempts uint32) {
	if c.quiet {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	cyan.Fprint(c.out, attempts)
	white.Fprintln(c.out, " addresses / second")
}

func (c *Console) Found(result *types.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.quiet {
		fmt.Fprintf(c.out, "0x%s %s\n", result.Address, result.PrivateKey)
		return
	}

	white.Fprintln(c.out, separator)
	white.Fprint(c.out, "Found address: ")
	yellow.Fprintf(c.out, "0x%s\n", result.Address)
	if checksummed, err := crypto.ChecksumAddress(result.Address); err == nil {
		white.Fprint(c.out, "Checksummed address: ")
		yellow.Fprintln(c.out, checksummed)
	}
	white.Fprint(c.out, "Generated private key: ")
	red.Fprintln(c.out, result.PrivateKey)
	white.Fprintln(c.out, "Import this private key into an ethereum wallet in order to use the address.")
	white.Fprintln(c.out, separator)
}
