package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		in   string
		want logrus.Level
	}{
		{"", logrus.InfoLevel},
		{"debug", logrus.DebugLevel},
		{"WARN", logrus.WarnLevel},
		{"error", logrus.ErrorLevel},
	}
	for _, tt := range tests {
		l, err := New(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, l.GetLevel(), tt.in)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New("loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
}

func TestNewWithOutputFilters(t *testing.T) {
	var buf bytes.Buffer
	l, err := NewWithOutput("warn", &buf)
	require.NoError(t, err)

	l.Info("hidden")
	l.WithField("currency", "BTC").Warn("negative fee")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "negative fee")
	assert.Contains(t, out, "currency=BTC")
}
