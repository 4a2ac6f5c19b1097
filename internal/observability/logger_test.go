package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/cabinetry/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitialize_ConsoleWithColors(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf bytes.Buffer
	cfg := config.LoggerConfig{
		Level:       "debug",
		Format:      "console",
		ServiceName: "cabinetry",
		Colors:      config.ColorConfig{Info: "green"},
	}
	Initialize(cfg, zapcore.AddSync(&buf))
	GetLogger().Named("engine").Info("Kicker height changed")
	Sync()

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, colorGreen)
	assert.Contains(t, out, colorReset)
	assert.Contains(t, out, "cabinetry.engine.")
	assert.Contains(t, out, "Kicker height changed")
}

func TestInitialize_JSON(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf bytes.Buffer
	Initialize(config.LoggerConfig{Level: "info", Format: "json", ServiceName: "cabinetry"}, zapcore.AddSync(&buf))
	GetLogger().Warn("Drawer heights reset", zap.String("cabinet", "a1b2c3d4"))
	Sync()

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "cabinetry", entry["logger"])
	assert.Equal(t, "Drawer heights reset", entry["msg"])
	assert.Equal(t, "a1b2c3d4", entry["cabinet"])
}

func TestInitialize_LevelFilter(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf bytes.Buffer
	Initialize(config.LoggerConfig{Level: "warn", Format: "json"}, zapcore.AddSync(&buf))
	GetLogger().Info("hidden")
	Sync()
	assert.Empty(t, buf.String())
}

func TestInitialize_InvalidLevelFallsBackToInfo(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf bytes.Buffer
	Initialize(config.LoggerConfig{Level: "loud", Format: "json"}, zapcore.AddSync(&buf))
	GetLogger().Debug("hidden")
	GetLogger().Info("shown")
	Sync()
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestInitialize_LogFile(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	path := filepath.Join(t.TempDir(), "cabinetry.log")
	var console bytes.Buffer
	Initialize(config.LoggerConfig{Level: "debug", Format: "console", LogFile: path, MaxSize: 1}, zapcore.AddSync(&console))
	GetLogger().Error("written to the file")
	Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "written to the file")
	assert.Contains(t, console.String(), "written to the file")
}

func TestInitialize_OnlyOnce(t *testing.T) {
	ResetForTest()
	t.Cleanup(ResetForTest)

	var buf bytes.Buffer
	Initialize(config.LoggerConfig{Level: "info", Format: "json", ServiceName: "first"}, zapcore.AddSync(&buf))
	first := GetLogger()
	Initialize(config.LoggerConfig{Level: "debug", Format: "json", ServiceName: "second"}, zapcore.AddSync(&buf))
	second := GetLogger()

	assert.Same(t, first, second)
	second.Info("test")
	Sync()
	assert.Contains(t, buf.String(), "first")
	assert.NotContains(t, buf.String(), "second")
}

func TestGetLogger_Fallback(t *testing.T) {
	ResetForTest()
	require.NotNil(t, GetLogger())
	assert.NotPanics(t, Sync)
}
