package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"nagios-stats/pkg/config"
	"nagios-stats/pkg/logger"
	"nagios-stats/pkg/report"
	"nagios-stats/pkg/store"
)

// This file is the single entry point: it resolves settings, loads the store and prints the report.

// ---- Configuration ----

// Flags keeps command-line overrides apart from file and environment settings.
type Flags struct {
	SettingsPath string
	NagiosConfig string
	ObjectsPath  string
	StatusPath   string
	Format       string
	LogLevel     string
	Debug        bool
}

// ---- Entry point ----
func main() {
	if err := run(parseFlags(os.Args[1:]), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(flags Flags, out io.Writer) error {
	settings, err := loadSettings(flags)
	if err != nil {
		return err
	}
	if err := logger.Init(settings.Logging); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	log := logger.WithComponent("main")
	log.Debug().
		Str("objects", settings.ObjectsPath).
		Str("status", settings.StatusPath).
		Msg("opening nagios cache files")

	st, err := store.Open(settings.ObjectsPath, settings.StatusPath)
	if err != nil {
		return err
	}

	switch strings.ToLower(settings.Format) {
	case config.FormatJSON:
		return report.JSON(out, st.Hosts())
	default:
		return report.Table(out, st.Hosts())
	}
}

// ---- Flag parsing ----

func parseFlags(args []string) Flags {
	flags := Flags{}
	set := flag.NewFlagSet("nagios-stats", flag.ExitOnError)
	set.Usage = func() { printHelp(set.Output()) }
	set.StringVar(&flags.SettingsPath, "config", "", "Path to a YAML settings file")
	set.StringVar(&flags.NagiosConfig, "nagios-cfg", "", "Path to nagios.cfg used to locate the cache files")
	set.StringVar(&flags.ObjectsPath, "objects", "", "Path to objects.cache")
	set.StringVar(&flags.StatusPath, "status", "", "Path to status.dat")
	set.StringVar(&flags.Format, "format", "", "Output format: table or json")
	set.StringVar(&flags.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	set.BoolVar(&flags.Debug, "debug", false, "Enable debug logging")
	_ = set.Parse(args)
	return flags
}

func printHelp(out io.Writer) {
	cyan := "\033[36m"
	yellow := "\033[33m"
	green := "\033[32m"
	reset := "\033[0m"

	fmt.Fprintf(out, "%snagios-stats%s\n", green, reset)
	fmt.Fprintf(out, "%sUsage:%s nagios-stats [flags]\n\n", yellow, reset)

	fmt.Fprintf(out, "%s1) Sources%s\n", cyan, reset)
	fmt.Fprintln(out, "  -nagios-cfg            nagios.cfg to read object_cache_file and status_file from")
	fmt.Fprintln(out, "  -objects               objects.cache path (default /var/cache/nagios3/objects.cache)")
	fmt.Fprintln(out, "  -status                status.dat path (default /var/cache/nagios3/status.dat)")
	fmt.Fprintln(out, "")

	fmt.Fprintf(out, "%s2) Output%s\n", cyan, reset)
	fmt.Fprintln(out, "  -format                table or json (default table)")
	fmt.Fprintln(out, "  -log-level             debug, info, warn or error")
	fmt.Fprintln(out, "  -debug                 shorthand for -log-level debug")
	fmt.Fprintln(out, "")

	fmt.Fprintf(out, "%s3) Settings file%s\n", cyan, reset)
	fmt.Fprintln(out, "  -config                YAML file with objects_file, status_file, nagios_cfg, format, logging")
	fmt.Fprintln(out, "")
}

// loadSettings applies the settings file, then the environment, then flags.
func loadSettings(flags Flags) (config.Settings, error) {
	settings, err := config.Load(flags.SettingsPath)
	if err != nil {
		return config.Settings{}, err
	}
	settings = applyFlags(settings.ApplyEnv(), flags)
	settings, err = settings.Resolve()
	if err != nil {
		return config.Settings{}, err
	}
	if err := settings.Validate(); err != nil {
		return config.Settings{}, err
	}
	return settings, nil
}

func applyFlags(settings config.Settings, flags Flags) config.Settings {
	if flags.NagiosConfig != "" {
		settings.NagiosConfig = flags.NagiosConfig
	}
	if flags.ObjectsPath != "" {
		settings.ObjectsPath = flags.ObjectsPath
	}
	if flags.StatusPath != "" {
		settings.StatusPath = flags.StatusPath
	}
	if flags.Format != "" {
		settings.Format = flags.Format
	}
	if flags.LogLevel != "" {
		settings.Logging.Level = flags.LogLevel
	}
	if flags.Debug {
		settings.Logging.Debug = true
	}
	return settings
}
