package graph

import (
	"nagios-stats/pkg/model"
	"nagios-stats/pkg/objects"
	"nagios-stats/pkg/status"
)

// This package joins parsed configuration with parsed status into one host tree.

// Result is the merged host tree plus counters describing how it was assembled.
type Result struct {
	Hosts model.Hosts
	// Stubs counts hosts and services created only because status referenced them.
	Stubs int
	// Skipped counts configured services and status records without a host_name.
	Skipped int
}

// Build merges configuration and status. Either input may be nil or empty.
// Hosts are moved out of objs, so objs must not be reused afterwards.
func Build(objs *objects.Objects, st *status.Status) Result {
	result := Result{Hosts: make(model.Hosts)}
	if !objs.Empty() {
		if objs.Hosts != nil {
			result.Hosts = objs.Hosts
		}
		attachServices(&result, objs.Services)
	}
	if !st.Empty() {
		attachHostStatus(&result, st.Hosts())
		attachServiceStatus(&result, st.Services())
	}
	return result
}

// ---- Configuration ----

func attachServices(result *Result, services map[string]*model.ConfigObject) {
	for command, object := range services {
		name := object.Attributes.HostName()
		if name == "" {
			result.Skipped++
			continue
		}
		result.Hosts.GetOrCreate(name).GetOrCreateService(command).Attributes = object.Attributes
	}
}

// ---- Status overlay ----

func attachHostStatus(result *Result, records []*model.StatusRecord) {
	for _, record := range records {
		name := record.Attributes.HostName()
		if name == "" {
			result.Skipped++
			continue
		}
		result.upsertHost(name).Status = record
	}
}

func attachServiceStatus(result *Result, records []*model.StatusRecord) {
	for _, record := range records {
		name := record.Attributes.HostName()
		if name == "" {
			result.Skipped++
			continue
		}
		host := result.upsertHost(name)
		result.upsertService(host, record.Attributes.CheckCommand()).Status = record
	}
}

// ---- Upserts ----

func (result *Result) upsertHost(name string) *model.Host {
	if _, ok := result.Hosts[name]; !ok {
		result.Stubs++
	}
	return result.Hosts.GetOrCreate(name)
}

func (result *Result) upsertService(host *model.Host, command string) *model.Service {
	if _, ok := host.Services[command]; !ok {
		result.Stubs++
	}
	return host.GetOrCreateService(command)
}
