package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/screa/eth-vanity/internal/config"
	"github.com/screa/eth-vanity/pkg/types"
	"github.com/stretchr/testify/require"
)

var testResult = &types.Result{
	Address:    "2c7536e3605d9c16a7a3d7b1898e529396a65c23",
	PrivateKey: "4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318",
}

func withoutColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestConsoleQuiet(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	c := NewConsole(&buf, true)

	c.Header(3)
	c.PatternSkipped(&types.SkippedPattern{Raw: "xyz", Err: errors.New("bad")})
	c.Throughput(1000)
	c.Found(testResult)

	require.Equal(t,
		"0x2c7536e3605d9c16a7a3d7b1898e529396a65c23 4c0883a69102937d6231471b5dbb6204fe5129617082792ae468d01a3f362318\n",
		buf.String())
}

func TestConsoleVerbose(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	c := NewConsole(&buf, false)

	c.Header(1)
	require.Contains(t, buf.String(), "Looking for an address matching 1 pattern\n")

	buf.Reset()
	c.Header(2)
	require.Contains(t, buf.String(), "matching any of 2 patterns\n")

	buf.Reset()
	c.PatternSkipped(&types.SkippedPattern{Raw: "xyz", Err: errors.New("pattern contains invalid characters")})
	require.Equal(t, "Skipping pattern 'xyz': pattern contains invalid characters\n", buf.String())

	buf.Reset()
	c.Throughput(1234)
	require.Equal(t, "1234 addresses / second\n", buf.String())

	buf.Reset()
	c.Found(testResult)
	out := buf.String()
	require.Contains(t, out, "Found address: 0x2c7536e3605d9c16a7a3d7b1898e529396a65c23\n")
	require.Contains(t, out, "Checksummed address: 0x2c7536E3605D9C16a7a3D7b1898e529396a65c23\n")
	require.Contains(t, out, "Generated private key: "+testResult.PrivateKey+"\n")
}

func TestConsoleErrorShownWhenQuiet(t *testing.T) {
	withoutColor(t)
	var buf bytes.Buffer
	NewConsole(&buf, true).Error("Please, provide at least one valid pattern.")
	require.Equal(t, "Please, provide at least one valid pattern.\n", buf.String())
}

func TestApplyColorChoice(t *testing.T) {
	prev := color.NoColor
	t.Cleanup(func() { color.NoColor = prev })

	ApplyColorChoice(config.ColorNever)
	require.True(t, color.NoColor)
	ApplyColorChoice(config.ColorAlways)
	require.False(t, color.NoColor)
	ApplyColorChoice(config.ColorNever)
	ApplyColorChoice(config.ColorAlwaysANSI)
	require.False(t, color.NoColor)
}
