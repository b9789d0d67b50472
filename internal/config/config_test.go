package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoadConfig(t *testing.T) {
	content := `env: dev
address: "ff08::1"
port: 9999
message: "lab announce"
interface: "eth1"
send_interval: 5s
read_timeout: 500ms
presets_path: "/var/lib/mcast/presets.db"
metrics_addr: ":9090"
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := MustLoadConfig(path)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "ff08::1", cfg.Address)
	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, "lab announce", cfg.Message)
	assert.Equal(t, "eth1", cfg.Interface)
	assert.Equal(t, 5*time.Second, cfg.SendInterval)
	assert.Equal(t, 500*time.Millisecond, cfg.ReadTimeout)
	assert.Equal(t, "/var/lib/mcast/presets.db", cfg.PresetsPath)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
}

func TestMustLoadConfig_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("env: local\n"), 0644))

	cfg := MustLoadConfig(path)

	assert.Equal(t, "239.255.255.250", cfg.Address)
	assert.Equal(t, 8888, cfg.Port)
	assert.Equal(t, "Hello from client", cfg.Message)
	assert.Empty(t, cfg.Interface)
	assert.Equal(t, 3*time.Second, cfg.SendInterval)
	assert.Equal(t, time.Second, cfg.ReadTimeout)
}

func TestMustLoadConfig_MissingFile(t *testing.T) {
	assert.Panics(t, func() {
		MustLoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	})
}
