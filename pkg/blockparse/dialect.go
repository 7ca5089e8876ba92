package blockparse

import (
	"strings"

	"nagios-stats/pkg/model"
)

// ---- Dialects ----

// Dialect captures the line rules that differ between the objects cache and the status file.
type Dialect interface {
	// Name identifies the dialect in logs and errors.
	Name() string
	// Opens reports whether the line starts a new block.
	Opens(line string) bool
	// Header reduces an opening line to the block type tag.
	Header(line string) string
	// Split breaks an attribute line into key and value.
	Split(line string) (string, string, bool)
}

var (
	// Objects reads objects.cache blocks such as "define host {".
	Objects Dialect = objectsDialect{}
	// Status reads status.dat blocks such as "hoststatus {".
	Status Dialect = statusDialect{}
)

const (
	definePrefix = "define "
	statusSuffix = "status {"
)

type objectsDialect struct{}

func (objectsDialect) Name() string { return "objects" }

func (objectsDialect) Opens(line string) bool {
	return strings.HasSuffix(line, "{")
}

func (objectsDialect) Header(line string) string {
	line = strings.TrimPrefix(line, definePrefix)
	line = strings.TrimSuffix(line, "{")
	return strings.TrimSpace(line)
}

func (objectsDialect) Split(line string) (string, string, bool) {
	return model.SplitPair(line)
}

type statusDialect struct{}

func (statusDialect) Name() string { return "status" }

// Opens ignores attribute lines whose value happens to end in a brace.
func (statusDialect) Opens(line string) bool {
	return strings.HasSuffix(line, "{") && !strings.Contains(line, "=")
}

func (statusDialect) Header(line string) string {
	line = strings.TrimPrefix(line, definePrefix)
	if strings.HasSuffix(line, statusSuffix) {
		line = strings.TrimSuffix(line, statusSuffix)
	} else {
		line = strings.TrimSuffix(line, "{")
	}
	return strings.TrimSpace(line)
}

func (statusDialect) Split(line string) (string, string, bool) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return "", "", false
	}
	return key, value, true
}
