package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestJSONWriter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, Options{Level: zerolog.InfoLevel, JSON: true})

	l.Printf("round %d finished", 3)

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "info", line["level"])
	require.Equal(t, "round 3 finished", line["message"])
	require.Contains(t, line, "time")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, Options{Level: zerolog.WarnLevel})

	l.Printf("hidden")
	l.Debugf("hidden too")
	require.Zero(t, buf.Len())

	l.Warnf("shown %s", "warning")
	require.Contains(t, buf.String(), "shown warning")

	buf.Reset()
	l = NewWriter(&buf, Options{Level: zerolog.DebugLevel})
	l.Debugf("now visible")
	require.Contains(t, buf.String(), "now visible")
}

func TestConsoleWriterWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, Options{Level: zerolog.InfoLevel})
	l.Println("plain", " output")
	require.Contains(t, buf.String(), "plain output")
	require.NotContains(t, buf.String(), "\x1b[")
}

func TestNop(t *testing.T) {
	Nop().Errorf("nothing %d", 1)
}
