package nagioscfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nagios.cfg")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestResolveCachePaths(t *testing.T) {
	path := writeConfig(t, `
# main config
log_file=/var/log/nagios3/nagios.log
cfg_dir=/etc/nagios3/conf.d
object_cache_file = /var/cache/nagios3/objects.cache
status_file=spool/status.dat
`)
	paths, err := ResolveCachePaths(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/cache/nagios3/objects.cache", paths.Objects)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "spool", "status.dat"), paths.Status)
}

func TestResolveCachePaths_PartialKeepsDefault(t *testing.T) {
	path := writeConfig(t, "status_file=/tmp/status.dat\n;object_cache_file=/ignored\n")
	paths, err := ResolveCachePaths(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultObjectsPath, paths.Objects)
	assert.Equal(t, "/tmp/status.dat", paths.Status)
}

func TestResolveCachePaths_NoDirectives(t *testing.T) {
	path := writeConfig(t, "log_file=/var/log/nagios.log\n")
	_, err := ResolveCachePaths(path)
	require.ErrorIs(t, err, errNoCachePaths)
}

func TestResolveCachePaths_MissingFile(t *testing.T) {
	_, err := ResolveCachePaths(filepath.Join(t.TempDir(), "nagios.cfg"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
