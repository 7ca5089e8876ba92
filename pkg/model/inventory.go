package model

// This file keeps the inventory model tiny so other packages can focus on their own logic.

// ---- Block types ----

const (
	TypeHost         = "host"
	TypeHostGroup    = "hostgroup"
	TypeService      = "service"
	TypeContact      = "contact"
	TypeContactGroup = "contactgroup"
	TypeTimePeriod   = "timeperiod"
	TypeCommand      = "command"
)

// ---- Core structures ----

// ConfigObject is one block of the objects cache with its derived identity.
type ConfigObject struct {
	Type       string
	Name       string
	Command    string
	Members    []string
	Attributes Attributes
}

// StatusRecord is one block of the status file.
type StatusRecord struct {
	Type       string
	Attributes Attributes
}

// Get returns a status attribute, or an empty string when it is absent.
func (record *StatusRecord) Get(key string) string {
	if record == nil {
		return ""
	}
	return record.Attributes[key]
}

// Service describes a single check bound to a host.
type Service struct {
	HostName   string
	Command    string
	Attributes Attributes
	Status     *StatusRecord
}

// Description returns the configured service_description.
func (service *Service) Description() string {
	return service.Attributes.Get(KeyDescription)
}

// Output returns the plugin_output of the attached status, or an empty string.
func (service *Service) Output() string {
	return service.Status.Get(KeyPluginOutput)
}

// Host models a monitored system with its services and live status.
type Host struct {
	Name       string
	Attributes Attributes
	Services   map[string]*Service
	Status     *StatusRecord
}

// NewHost returns an empty host so callers can safely add services.
func NewHost(name string) *Host {
	return &Host{
		Name:       name,
		Attributes: Attributes{},
		Services:   make(map[string]*Service),
	}
}

// GetOrCreateService returns the service for command, creating a stub when it is missing.
func (host *Host) GetOrCreateService(command string) *Service {
	if host.Services == nil {
		host.Services = make(map[string]*Service)
	}
	service, ok := host.Services[command]
	if !ok {
		service = &Service{HostName: host.Name, Command: command, Attributes: Attributes{}}
		host.Services[command] = service
	}
	return service
}

// Hosts indexes hosts by name.
type Hosts map[string]*Host

// GetOrCreate returns the named host, creating a stub when it is missing.
func (hosts Hosts) GetOrCreate(name string) *Host {
	host, ok := hosts[name]
	if !ok {
		host = NewHost(name)
		hosts[name] = host
	}
	return host
}

// ServiceCount sums services across every host.
func (hosts Hosts) ServiceCount() int {
	count := 0
	for _, host := range hosts {
		count += len(host.Services)
	}
	return count
}
