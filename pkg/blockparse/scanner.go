package blockparse

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"nagios-stats/pkg/model"
)

// This package reads the brace-delimited block format shared by Nagios cache files.

// ---- Types ----

// Block is one completed "type { key value ... }" section.
type Block struct {
	Type       string
	Attributes model.Attributes
	Line       int
}

// ParseError describes a line that could not be read as part of a block.
type ParseError struct {
	Path   string
	Line   int
	Text   string
	Reason string
}

func (err *ParseError) Error() string {
	if err.Text == "" {
		return fmt.Sprintf("%s:%d: %s", err.Path, err.Line, err.Reason)
	}
	return fmt.Sprintf("%s:%d: %s: %q", err.Path, err.Line, err.Reason, err.Text)
}

const (
	ReasonMissingDelimiter = "missing key/value delimiter"
	ReasonOutsideBlock     = "attribute outside of a block"
	ReasonUnopenedClose    = "closing brace without an open block"
	ReasonNestedOpen       = "block opened before the previous one was closed"
	ReasonUnterminated     = "block not closed before end of input"
)

// Status files can carry long plugin output on a single line.
const maxLineSize = 1024 * 1024

// ---- Scanner ----

// Scanner yields blocks one at a time in file order.
// Malformed lines are recorded as issues and skipped; only read errors stop the scan.
type Scanner struct {
	lines   *bufio.Scanner
	dialect Dialect
	path    string
	lineNo  int
	block   Block
	pending *Block
	issues  []*ParseError
	err     error
}

// NewScanner prepares a scanner over reader; path is only used to label issues.
func NewScanner(reader io.Reader, dialect Dialect, path string) *Scanner {
	lines := bufio.NewScanner(reader)
	lines.Buffer(make([]byte, 64*1024), maxLineSize)
	return &Scanner{lines: lines, dialect: dialect, path: path}
}

// Scan advances to the next completed block and reports whether one was found.
func (s *Scanner) Scan() bool {
	for s.lines.Scan() {
		s.lineNo++
		line := strings.TrimSpace(s.lines.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if s.dialect.Opens(line) {
			if s.pending != nil {
				s.report(s.lineNo, line, ReasonNestedOpen)
			}
			s.pending = &Block{
				Type:       s.dialect.Header(line),
				Attributes: model.Attributes{},
				Line:       s.lineNo,
			}
			continue
		}
		if line == "}" {
			if s.pending == nil {
				s.report(s.lineNo, line, ReasonUnopenedClose)
				continue
			}
			s.block = *s.pending
			s.pending = nil
			return true
		}
		if s.pending == nil {
			s.report(s.lineNo, line, ReasonOutsideBlock)
			continue
		}
		key, value, ok := s.dialect.Split(line)
		if !ok {
			s.report(s.lineNo, line, ReasonMissingDelimiter)
			continue
		}
		s.pending.Attributes[key] = value
	}

	if err := s.lines.Err(); err != nil {
		s.err = fmt.Errorf("read %s file %s: %w", s.dialect.Name(), s.path, err)
		return false
	}
	if s.pending != nil {
		s.report(s.pending.Line, s.pending.Type, ReasonUnterminated)
		s.pending = nil
	}
	return false
}

// Block returns the block found by the last successful Scan.
func (s *Scanner) Block() Block {
	return s.block
}

// Issues returns every malformed line seen so far.
func (s *Scanner) Issues() []*ParseError {
	return s.issues
}

// Err returns the first read error, if any.
func (s *Scanner) Err() error {
	return s.err
}

func (s *Scanner) report(line int, text, reason string) {
	s.issues = append(s.issues, &ParseError{
		Path:   s.path,
		Line:   line,
		Text:   text,
		Reason: reason,
	})
}

// ---- Convenience ----

// ReadAll drains a scanner into a slice.
func ReadAll(reader io.Reader, dialect Dialect, path string) ([]Block, []*ParseError, error) {
	scanner := NewScanner(reader, dialect, path)
	var blocks []Block
	for scanner.Scan() {
		blocks = append(blocks, scanner.Block())
	}
	return blocks, scanner.Issues(), scanner.Err()
}
