package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeTempConfig(t, `
bot_token: file-token
application_id: "12345"
db_path: /var/lib/lynx/lynx.db
monitoring_port: "9090"
`)

	cfg, err := loadFile(path)
	require.NoError(t, err)
	require.Equal(t, "file-token", cfg.BotToken)
	require.Equal(t, "12345", cfg.ApplicationId)
	require.Equal(t, "/var/lib/lynx/lynx.db", cfg.DbPath)
	require.Equal(t, "9090", cfg.MonitoringPort)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := loadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadFile_Invalid(t *testing.T) {
	path := writeTempConfig(t, "bot_token: [not, a, string")

	_, err := loadFile(path)
	require.Error(t, err)
}
