package model

import (
	"regexp"
	"strings"
)

// This file keeps the schema-free attribute handling in one place so parsers and the graph agree on keys.

// ---- Well-known keys ----

const (
	KeyHostName     = "host_name"
	KeyCheckCommand = "check_command"
	KeyMembers      = "members"
	KeyDescription  = "service_description"
	KeyPluginOutput = "plugin_output"
)

// listSeparator is the objects-cache separator: one or more whitespace or comma characters.
var listSeparator = regexp.MustCompile(`[\s,]+`)

// ---- Attributes ----

// Attributes holds the verbatim key/value pairs of one block.
type Attributes map[string]string

// Get returns the value for key, or an empty string when the key is absent.
func (attrs Attributes) Get(key string) string {
	return attrs[key]
}

// Lookup reports whether key was present in the block.
func (attrs Attributes) Lookup(key string) (string, bool) {
	value, ok := attrs[key]
	return value, ok
}

// HostName returns the host_name attribute.
func (attrs Attributes) HostName() string {
	return attrs[KeyHostName]
}

// CheckCommand returns the join key derived from the check_command attribute.
func (attrs Attributes) CheckCommand() string {
	return CommandKey(attrs[KeyCheckCommand])
}

// Members returns the members attribute as an ordered list.
func (attrs Attributes) Members() []string {
	return SplitList(attrs[KeyMembers])
}

// ---- Split helpers ----

// SplitPair splits an objects-cache line into key and value on the first separator run.
func SplitPair(line string) (string, string, bool) {
	parts := listSeparator.Split(line, 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return parts[0], parts[1], true
}

// SplitList splits a comma or whitespace separated value, dropping empty entries.
func SplitList(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	var result []string
	for _, part := range listSeparator.Split(value, -1) {
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

// CommandKey reduces a check_command value to the token used to join configuration and status.
// Arguments separated by whitespace or commas are dropped; "!" arguments stay part of the key.
func CommandKey(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return listSeparator.Split(value, 2)[0]
}
