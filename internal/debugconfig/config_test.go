package debugconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/contractdbg/internal/debugconfig"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, debugconfig.Default().Validate())
}

func TestValidateRejectsBadLogEncoding(t *testing.T) {
	cfg := debugconfig.Default()
	cfg.Logger.LogEncoding = "xml"
	require.Error(t, cfg.Validate())
}

func TestValidateRejectsNegativeTimeout(t *testing.T) {
	cfg := debugconfig.Default()
	cfg.DefaultTimeoutSeconds = -1
	require.Error(t, cfg.Validate())
}

func TestLoadParsesYAMLAndAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("CacheSize: 512\n"), 0o644))

	cfg, err := debugconfig.Load(path)
	require.NoError(t, err)
	require.Equal(t, 512, cfg.CacheSize)
	require.Equal(t, 30, cfg.DefaultTimeoutSeconds)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("DefaultTimeoutSeconds: -5\n"), 0o644))

	_, err := debugconfig.Load(path)
	require.Error(t, err)
}

func TestNewLoggerBuildsLogger(t *testing.T) {
	log, err := debugconfig.NewLogger(debugconfig.Logger{LogEncoding: "console", LogLevel: "debug"})
	require.NoError(t, err)
	require.NotNil(t, log)
}
