package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/linemk/shop-catalog/internal/lib/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProdIsJSONInfo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.EnvProd, &buf)

	log.Debug("hidden")
	assert.Empty(t, buf.String(), "debug must be filtered in prod")

	log.Info("starting app")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "starting app", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestNew_DevLogsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.EnvDev, &buf)

	log.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNew_LocalIsPretty(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.EnvLocal, &buf)

	log.Info("pretty")
	assert.Contains(t, buf.String(), "pretty")
	assert.False(t, json.Valid(buf.Bytes()))
}
