package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, logrus.DebugLevel, ParseLevel(" DEBUG "))
	require.Equal(t, logrus.WarnLevel, ParseLevel("warning"))
	require.Equal(t, logrus.ErrorLevel, ParseLevel("error"))
	require.Equal(t, logrus.InfoLevel, ParseLevel("verbose"))
}

func TestNewWithWriter_JSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewWithWriter(&buf, "warn", "json")
	l.Info("dropped")
	l.WithField("symbol", "TCS.NS").Warn("slow provider")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "slow provider", line["msg"])
	require.Equal(t, "TCS.NS", line["symbol"])
	require.Equal(t, "warning", line["level"])
}
