package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-estoque/pkg/logger"
)

func TestNew_JSONEnProduccion(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	l.Named("inventory").Info().Str("product_id", "p1").Msg("movimiento aplicado")
	l.Debug().Msg("no debe salir")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "inventory", line["component"])
	assert.Equal(t, "p1", line["product_id"])
	assert.Equal(t, "movimiento aplicado", line["message"])
}

func TestNop(t *testing.T) {
	l := logger.Nop()
	assert.NotPanics(t, func() { l.Error().Msg("descartado") })
}
