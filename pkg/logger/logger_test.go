package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/pkg/logger"
)

func TestNewWithWriter_NivelYCampos(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(&buf, "warn").Named("ledger")

	l.Info().Msg("ignorado")
	assert.Zero(t, buf.Len(), "info por debajo de warn no se escribe")

	l.Warn().Int64("index", 3).Msg("anomalía")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "ledger", entry["component"])
	assert.Equal(t, float64(3), entry["index"])
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { logger.Nop().Error().Msg("nada") })
}
