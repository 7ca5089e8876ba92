package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"nagios-stats/pkg/logger"
	"nagios-stats/pkg/nagioscfg"
)

// This package collects runtime settings from a YAML file, the environment and flags.

// ---- Data ----

const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Settings holds everything the command needs to locate and render the Nagios data.
type Settings struct {
	ObjectsPath  string        `yaml:"objects_file"`
	StatusPath   string        `yaml:"status_file"`
	NagiosConfig string        `yaml:"nagios_cfg"`
	Format       string        `yaml:"format"`
	Logging      logger.Config `yaml:"logging"`
}

// Default returns the built-in settings; the environment is applied later by ApplyEnv.
func Default() Settings {
	return Settings{
		Format:  FormatTable,
		Logging: logger.DefaultConfig(),
	}
}

// ---- Loading ----

// Load overlays the YAML file at path onto defaults. An empty path skips the file.
func Load(path string) (Settings, error) {
	settings := Default()
	if path == "" {
		return settings, nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Settings{}, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("parse settings %s: %w", path, err)
	}
	return settings, nil
}

// ApplyEnv lets NAGIOS_OBJECTS_FILE, NAGIOS_STATUS_FILE, NAGIOS_CFG and the LOG_* variables override the file.
func (settings Settings) ApplyEnv() Settings {
	settings.Logging = settings.Logging.ApplyEnv()
	if value := os.Getenv("NAGIOS_OBJECTS_FILE"); value != "" {
		settings.ObjectsPath = value
	}
	if value := os.Getenv("NAGIOS_STATUS_FILE"); value != "" {
		settings.StatusPath = value
	}
	if value := os.Getenv("NAGIOS_CFG"); value != "" {
		settings.NagiosConfig = value
	}
	return settings
}

// Resolve fills missing cache paths from nagios.cfg, then from the packaged defaults.
// Explicit paths always win over nagios.cfg.
func (settings Settings) Resolve() (Settings, error) {
	if settings.NagiosConfig != "" && (settings.ObjectsPath == "" || settings.StatusPath == "") {
		paths, err := nagioscfg.ResolveCachePaths(settings.NagiosConfig)
		if err != nil {
			return Settings{}, fmt.Errorf("resolve nagios.cfg: %w", err)
		}
		if settings.ObjectsPath == "" {
			settings.ObjectsPath = paths.Objects
		}
		if settings.StatusPath == "" {
			settings.StatusPath = paths.Status
		}
	}
	if settings.ObjectsPath == "" {
		settings.ObjectsPath = nagioscfg.DefaultObjectsPath
	}
	if settings.StatusPath == "" {
		settings.StatusPath = nagioscfg.DefaultStatusPath
	}
	return settings, nil
}

// Validate rejects settings the command cannot act on.
func (settings Settings) Validate() error {
	switch strings.ToLower(settings.Format) {
	case FormatTable, FormatJSON:
	default:
		return fmt.Errorf("unknown format %q", settings.Format)
	}
	if settings.ObjectsPath == "" || settings.StatusPath == "" {
		return errors.New("objects and status paths are required")
	}
	return nil
}
