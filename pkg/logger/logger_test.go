package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rentas-dashboard/pkg/logger"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &m), buf.String())
	return m
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, logger.ParseLevel(" WARN "))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel(""))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("ruidoso"))
}

func TestNew_JSONConAppYComponente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{App: "rentas", Env: "production", Level: "info", Out: &buf})

	log.Named("loader").Info().Int("malls", 3).Msg("snapshot actualizado")

	m := decodeLine(t, &buf)
	assert.Equal(t, "rentas", m["app"])
	assert.Equal(t, "loader", m["component"])
	assert.Equal(t, "info", m["level"])
	assert.Equal(t, 3.0, m["malls"])
	assert.Equal(t, "snapshot actualizado", m["message"])
}

func TestNew_FiltraPorNivel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Out: &buf})

	log.Info().Msg("no sale")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("sale")
	assert.NotZero(t, buf.Len())
}

func TestCron_Adaptador(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "debug", Out: &buf})

	log.Cron().Error(errors.New("boom"), "job falló", "entry", 1)
	m := decodeLine(t, &buf)
	assert.Equal(t, "error", m["level"])
	assert.Equal(t, "boom", m["error"])
	assert.Equal(t, 1.0, m["entry"])
}
