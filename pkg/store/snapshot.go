package store

import (
	"time"

	"github.com/google/uuid"

	"nagios-stats/pkg/blockparse"
	"nagios-stats/pkg/graph"
	"nagios-stats/pkg/model"
	"nagios-stats/pkg/objects"
	"nagios-stats/pkg/status"
)

// ---- Snapshot ----

// Snapshot is one complete parse of both files. It is never modified after a
// refresh publishes it, and callers must treat every map it returns as read-only.
type Snapshot struct {
	ID       uuid.UUID
	LoadedAt time.Time

	hosts         model.Hosts
	hostGroups    map[string]*model.ConfigObject
	contacts      map[string]*model.ConfigObject
	contactGroups map[string]*model.ConfigObject
	timePeriods   map[string]*model.ConfigObject
	commands      map[string]*model.ConfigObject
	other         map[string][]*model.ConfigObject
	status        map[string][]*model.StatusRecord
	issues        []*blockparse.ParseError
	stubs         int
}

func newSnapshot(objs *objects.Objects, st *status.Status, merged graph.Result, loadedAt time.Time) *Snapshot {
	snapshot := &Snapshot{
		ID:       uuid.New(),
		LoadedAt: loadedAt,
		hosts:    merged.Hosts,
		stubs:    merged.Stubs,
	}
	if !objs.Empty() {
		snapshot.hostGroups = objs.HostGroups
		snapshot.contacts = objs.Contacts
		snapshot.contactGroups = objs.ContactGroups
		snapshot.timePeriods = objs.TimePeriods
		snapshot.commands = objs.Commands
		snapshot.other = objs.Other
	}
	if !st.Empty() {
		snapshot.status = st.Records
	}
	snapshot.issues = append(snapshot.issues, objs.Issues...)
	snapshot.issues = append(snapshot.issues, st.Issues...)
	return snapshot
}

// Hosts returns every host keyed by name.
func (snapshot *Snapshot) Hosts() model.Hosts {
	return snapshot.hosts
}

// Host looks up one host by name.
func (snapshot *Snapshot) Host(name string) (*model.Host, bool) {
	host, ok := snapshot.hosts[name]
	return host, ok
}

func (snapshot *Snapshot) HostGroups() map[string]*model.ConfigObject    { return snapshot.hostGroups }
func (snapshot *Snapshot) Contacts() map[string]*model.ConfigObject      { return snapshot.contacts }
func (snapshot *Snapshot) ContactGroups() map[string]*model.ConfigObject { return snapshot.contactGroups }
func (snapshot *Snapshot) TimePeriods() map[string]*model.ConfigObject   { return snapshot.timePeriods }
func (snapshot *Snapshot) Commands() map[string]*model.ConfigObject      { return snapshot.commands }

// Other returns objects of a type without its own collection, such as servicegroup, in file order.
func (snapshot *Snapshot) Other(objectType string) []*model.ConfigObject {
	return snapshot.other[objectType]
}

// StatusRecords returns status blocks of one type, such as "info" or "program", in file order.
func (snapshot *Snapshot) StatusRecords(recordType string) []*model.StatusRecord {
	return snapshot.status[recordType]
}

// Issues lists malformed lines found in either file.
func (snapshot *Snapshot) Issues() []*blockparse.ParseError {
	return snapshot.issues
}

// Stubs counts hosts and services that exist only because status referenced them.
func (snapshot *Snapshot) Stubs() int {
	return snapshot.stubs
}
