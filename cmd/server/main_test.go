package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proofbox/webhook-relay/internal/config"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.Config{LogFormat: "json", LogLevel: "info"})

	logger.Debug("hidden")
	logger.Info("visible", "port", "4567")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "visible", entry["msg"])
	assert.Equal(t, "4567", entry["port"])
	assert.NotEmpty(t, entry["time"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, &config.Config{LogFormat: "TEXT", LogLevel: "debug"})

	logger.Debug("details")

	assert.True(t, strings.Contains(buf.String(), "level=DEBUG"))
	assert.True(t, strings.Contains(buf.String(), "msg=details"))
}
