package objects

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"nagios-stats/pkg/blockparse"
	"nagios-stats/pkg/model"
)

// This package turns an objects.cache file into typed configuration collections.

// ErrNoCommand marks a service block without a check_command; it is stored under the empty command.
var ErrNoCommand = errors.New("service has no check_command")

// ---- Types ----

// Objects groups every configuration object by its block type.
type Objects struct {
	Hosts         model.Hosts
	HostGroups    map[string]*model.ConfigObject
	Contacts      map[string]*model.ConfigObject
	ContactGroups map[string]*model.ConfigObject
	TimePeriods   map[string]*model.ConfigObject
	Commands      map[string]*model.ConfigObject
	// Services is keyed by check command only, so services on different hosts
	// sharing a command overwrite each other here.
	Services map[string]*model.ConfigObject
	Other    map[string][]*model.ConfigObject
	Issues   []*blockparse.ParseError
	Blocks   int
}

// New returns empty collections so callers can safely add data.
func New() *Objects {
	return &Objects{
		Hosts:         make(model.Hosts),
		HostGroups:    make(map[string]*model.ConfigObject),
		Contacts:      make(map[string]*model.ConfigObject),
		ContactGroups: make(map[string]*model.ConfigObject),
		TimePeriods:   make(map[string]*model.ConfigObject),
		Commands:      make(map[string]*model.ConfigObject),
		Services:      make(map[string]*model.ConfigObject),
		Other:         make(map[string][]*model.ConfigObject),
	}
}

// Empty reports that the source held no blocks at all.
func (objs *Objects) Empty() bool {
	return objs == nil || objs.Blocks == 0
}

// ---- Public API ----

// ParseFile opens path and parses it as an objects cache.
func ParseFile(path string) (*Objects, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return Parse(file, path)
}

// Parse reads objects-cache blocks from reader; path labels parse issues.
func Parse(reader io.Reader, path string) (*Objects, error) {
	scanner := blockparse.NewScanner(reader, blockparse.Objects, path)
	objs := New()
	for scanner.Scan() {
		objs.add(path, scanner.Block())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	objs.Issues = append(scanner.Issues(), objs.Issues...)
	return objs, nil
}

// ---- Placement ----

func (objs *Objects) add(path string, block blockparse.Block) {
	objs.Blocks++
	object := newConfigObject(block)

	switch object.Type {
	case model.TypeHost:
		host := model.NewHost(object.Name)
		host.Attributes = object.Attributes
		objs.Hosts[object.Name] = host
	case model.TypeHostGroup:
		objs.HostGroups[object.Name] = object
	case model.TypeContact:
		objs.Contacts[object.Name] = object
	case model.TypeContactGroup:
		objs.ContactGroups[object.Name] = object
	case model.TypeTimePeriod:
		objs.TimePeriods[object.Name] = object
	case model.TypeCommand:
		objs.Commands[object.Name] = object
	case model.TypeService:
		if _, ok := object.Attributes.Lookup(model.KeyCheckCommand); !ok {
			objs.Issues = append(objs.Issues, &blockparse.ParseError{
				Path:   path,
				Line:   block.Line,
				Text:   object.Attributes.HostName(),
				Reason: ErrNoCommand.Error(),
			})
		}
		objs.Services[object.Command] = object
	default:
		objs.Other[object.Type] = append(objs.Other[object.Type], object)
	}
}

// newConfigObject derives name, command and members from a single block.
// Nothing carries over from earlier blocks.
func newConfigObject(block blockparse.Block) *model.ConfigObject {
	return &model.ConfigObject{
		Type:       block.Type,
		Name:       deriveName(block.Type, block.Attributes),
		Command:    block.Attributes.CheckCommand(),
		Members:    block.Attributes.Members(),
		Attributes: block.Attributes,
	}
}

// deriveName prefers "<type>_name" and otherwise takes any key ending in "_name".
func deriveName(objectType string, attrs model.Attributes) string {
	if name, ok := attrs.Lookup(objectType + "_name"); ok {
		return name
	}
	// Map order is random, so pick deterministically among several candidates.
	var key string
	for candidate := range attrs {
		if strings.HasSuffix(candidate, "_name") && (key == "" || candidate < key) {
			key = candidate
		}
	}
	return attrs[key]
}

// String summarises the parse for log lines.
func (objs *Objects) String() string {
	if objs.Empty() {
		return "objects: empty"
	}
	return fmt.Sprintf("objects: %d blocks, %d hosts, %d services, %d issues",
		objs.Blocks, len(objs.Hosts), len(objs.Services), len(objs.Issues))
}
