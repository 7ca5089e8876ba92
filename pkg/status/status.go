package status

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"nagios-stats/pkg/blockparse"
	"nagios-stats/pkg/model"
)

// This package reads status.dat into ordered record lists per block type.

const (
	TypeHost    = "host"
	TypeService = "service"
	TypeInfo    = "info"
	TypeProgram = "program"
)

// ---- Types ----

// Status holds every record of a status file, grouped by type in file order.
type Status struct {
	Records map[string][]*model.StatusRecord
	Issues  []*blockparse.ParseError
	Blocks  int
}

// Empty reports that the source held no blocks at all.
func (st *Status) Empty() bool {
	return st == nil || st.Blocks == 0
}

// Of returns the records of one type in file order.
func (st *Status) Of(recordType string) []*model.StatusRecord {
	if st == nil {
		return nil
	}
	return st.Records[recordType]
}

// Hosts returns the hoststatus records.
func (st *Status) Hosts() []*model.StatusRecord {
	return st.Of(TypeHost)
}

// Services returns the servicestatus records.
func (st *Status) Services() []*model.StatusRecord {
	return st.Of(TypeService)
}

// Types lists the record types that were seen, sorted.
func (st *Status) Types() []string {
	if st == nil {
		return nil
	}
	types := make([]string, 0, len(st.Records))
	for recordType := range st.Records {
		types = append(types, recordType)
	}
	sort.Strings(types)
	return types
}

// String summarises the parse for log lines.
func (st *Status) String() string {
	if st.Empty() {
		return "status: empty"
	}
	return fmt.Sprintf("status: %d blocks, %d hosts, %d services, %d issues",
		st.Blocks, len(st.Hosts()), len(st.Services()), len(st.Issues))
}

// ---- Public API ----

// ParseFile opens path and parses it as a status file.
func ParseFile(path string) (*Status, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file, path)
}

// Parse reads status blocks from reader; path labels parse issues.
func Parse(reader io.Reader, path string) (*Status, error) {
	scanner := blockparse.NewScanner(reader, blockparse.Status, path)
	st := &Status{Records: make(map[string][]*model.StatusRecord)}
	for scanner.Scan() {
		block := scanner.Block()
		st.Blocks++
		st.Records[block.Type] = append(st.Records[block.Type], &model.StatusRecord{
			Type:       block.Type,
			Attributes: block.Attributes,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	st.Issues = scanner.Issues()
	return st, nil
}
