package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nagios-stats/pkg/store"
)

func writeCaches(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	objectsPath := filepath.Join(dir, "objects.cache")
	statusPath := filepath.Join(dir, "status.dat")
	require.NoError(t, os.WriteFile(objectsPath, []byte(`
define host {
	host_name	web1
	}
define service {
	host_name	web1
	service_description	HTTP
	check_command	check_http
	}
`), 0o600))
	require.NoError(t, os.WriteFile(statusPath, []byte(`
hoststatus {
	host_name=web1
	}
servicestatus {
	host_name=web1
	check_command=check_http
	plugin_output=OK
	}
`), 0o600))
	return objectsPath, statusPath
}

func TestRun_Table(t *testing.T) {
	objectsPath, statusPath := writeCaches(t)
	var out bytes.Buffer

	err := run(Flags{ObjectsPath: objectsPath, StatusPath: statusPath, LogLevel: "error"}, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Host")
	assert.Contains(t, out.String(), "web1")
	assert.Contains(t, out.String(), "HTTP")
	assert.Contains(t, out.String(), "OK")
}

func TestRun_JSONFromNagiosConfig(t *testing.T) {
	objectsPath, statusPath := writeCaches(t)
	cfg := filepath.Join(t.TempDir(), "nagios.cfg")
	require.NoError(t, os.WriteFile(cfg, []byte("object_cache_file="+objectsPath+"\nstatus_file="+statusPath+"\n"), 0o600))
	var out bytes.Buffer

	err := run(Flags{NagiosConfig: cfg, Format: "json", LogLevel: "error"}, &out)
	require.NoError(t, err)

	var hosts []map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &hosts))
	require.Len(t, hosts, 1)
	assert.Equal(t, "web1", hosts[0]["host_name"])
}

func TestRun_MissingFile(t *testing.T) {
	objectsPath, _ := writeCaches(t)
	err := run(Flags{ObjectsPath: objectsPath, StatusPath: filepath.Join(t.TempDir(), "status.dat"), LogLevel: "error"}, &bytes.Buffer{})
	require.ErrorIs(t, err, store.ErrFileMissing)
}

func TestLoadSettings_FlagsOverrideFile(t *testing.T) {
	settingsPath := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(settingsPath, []byte("objects_file: /file/objects.cache\nstatus_file: /file/status.dat\nformat: json\n"), 0o600))
	t.Setenv("NAGIOS_OBJECTS_FILE", "")
	t.Setenv("NAGIOS_STATUS_FILE", "/env/status.dat")
	t.Setenv("NAGIOS_CFG", "")

	settings, err := loadSettings(Flags{SettingsPath: settingsPath, Format: "table", Debug: true})
	require.NoError(t, err)
	assert.Equal(t, "/file/objects.cache", settings.ObjectsPath)
	assert.Equal(t, "/env/status.dat", settings.StatusPath)
	assert.Equal(t, "table", settings.Format)
	assert.True(t, settings.Logging.Debug)

	_, err = loadSettings(Flags{ObjectsPath: "a", StatusPath: "b", Format: "xml"})
	require.Error(t, err)
}

func TestLoadSettings_LoggingFollowsFileEnvFlags(t *testing.T) {
	settingsPath := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(settingsPath, []byte("objects_file: /o\nstatus_file: /s\nlogging:\n  level: debug\n  output: stdout\n"), 0o600))
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_OUTPUT", "")

	settings, err := loadSettings(Flags{SettingsPath: settingsPath})
	require.NoError(t, err)
	assert.Equal(t, "warn", settings.Logging.Level)
	assert.Equal(t, "stdout", settings.Logging.Output)

	settings, err = loadSettings(Flags{SettingsPath: settingsPath, LogLevel: "error"})
	require.NoError(t, err)
	assert.Equal(t, "error", settings.Logging.Level)
}

func TestParseFlags(t *testing.T) {
	flags := parseFlags([]string{"-objects", "/o", "-status", "/s", "-format", "json", "-debug"})
	assert.Equal(t, Flags{ObjectsPath: "/o", StatusPath: "/s", Format: "json", Debug: true}, flags)
}
