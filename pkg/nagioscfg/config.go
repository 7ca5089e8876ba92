package nagioscfg

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// This file reads the main nagios.cfg only to find where the daemon writes its cache files.

// ---- Defaults ----

const (
	DefaultObjectsPath = "/var/cache/nagios3/objects.cache"
	DefaultStatusPath  = "/var/cache/nagios3/status.dat"
)

var errNoCachePaths = errors.New("no object_cache_file or status_file directive")

// CachePaths locates the objects cache and the status file.
type CachePaths struct {
	Objects string
	Status  string
}

// ---- Discovery ----

// ResolveCachePaths reads object_cache_file and status_file from a nagios.cfg.
// Directives that are absent keep the Debian defaults; relative values resolve against the file's directory.
func ResolveCachePaths(configPath string) (CachePaths, error) {
	file, err := os.Open(filepath.Clean(configPath))
	if err != nil {
		return CachePaths{}, err
	}
	defer file.Close()

	baseDir := filepath.Dir(configPath)
	paths := CachePaths{Objects: DefaultObjectsPath, Status: DefaultStatusPath}
	found := false

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, ";") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		value = resolvePath(baseDir, strings.TrimSpace(value))
		if value == "" {
			continue
		}
		switch strings.TrimSpace(key) {
		case "object_cache_file":
			paths.Objects = value
			found = true
		case "status_file":
			paths.Status = value
			found = true
		}
	}
	if err := scanner.Err(); err != nil {
		return CachePaths{}, err
	}
	if !found {
		return CachePaths{}, fmt.Errorf("%s: %w", configPath, errNoCachePaths)
	}
	return paths, nil
}

func resolvePath(baseDir, path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(baseDir, path)
}
