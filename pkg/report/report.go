package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"nagios-stats/pkg/model"
)

// This package renders the merged host graph for people (a table) and for tools (JSON).

// ---- Rows ----

// Row is one host/check/status line of the report.
type Row struct {
	Host   string
	Check  string
	Status string
	State  string
}

// Rows lists every service of every host, sorted by host then check command.
func Rows(hosts model.Hosts) []Row {
	var rows []Row
	for _, hostName := range sortedKeys(hosts) {
		host := hosts[hostName]
		for _, command := range sortedKeys(host.Services) {
			service := host.Services[command]
			check := service.Description()
			if check == "" {
				check = command
			}
			rows = append(rows, Row{
				Host:   host.Name,
				Check:  check,
				Status: service.Output(),
				State:  service.Status.Get("current_state"),
			})
		}
	}
	return rows
}

func sortedKeys[V any](values map[string]V) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ---- Table ----

var headers = Row{Host: "Host", Check: "Check", Status: "Status"}

// stateColors follows the Nagios service states: OK, WARNING, CRITICAL, UNKNOWN.
var stateColors = map[string]lipgloss.Color{
	"0": lipgloss.Color("42"),
	"1": lipgloss.Color("214"),
	"2": lipgloss.Color("196"),
	"3": lipgloss.Color("245"),
}

// Table writes an aligned table; colours are dropped when out is not a terminal.
func Table(out io.Writer, hosts model.Hosts) error {
	rows := Rows(hosts)
	renderer := lipgloss.NewRenderer(out)

	hostWidth, checkWidth := len(headers.Host), len(headers.Check)
	for _, row := range rows {
		hostWidth = max(hostWidth, lipgloss.Width(row.Host))
		checkWidth = max(checkWidth, lipgloss.Width(row.Check))
	}
	hostCell := renderer.NewStyle().Width(hostWidth + 2)
	checkCell := renderer.NewStyle().Width(checkWidth + 2)
	header := renderer.NewStyle().Bold(true)

	var b strings.Builder
	b.WriteString(header.Render(hostCell.Render(headers.Host) + checkCell.Render(headers.Check) + headers.Status))
	b.WriteString("\n")
	for _, row := range rows {
		status := renderer.NewStyle()
		if color, ok := stateColors[row.State]; ok {
			status = status.Foreground(color)
		}
		b.WriteString(hostCell.Render(row.Host))
		b.WriteString(checkCell.Render(row.Check))
		b.WriteString(status.Render(row.Status))
		b.WriteString("\n")
	}
	_, err := io.WriteString(out, b.String())
	return err
}

// ---- JSON ----

type serviceView struct {
	Command    string            `json:"check_command"`
	Attributes model.Attributes  `json:"attributes"`
	Status     map[string]string `json:"status,omitempty"`
}

type hostView struct {
	Name       string            `json:"host_name"`
	Attributes model.Attributes  `json:"attributes"`
	Status     map[string]string `json:"status,omitempty"`
	Services   []serviceView     `json:"services"`
}

// JSON writes every host with its services and status as an indented array.
func JSON(out io.Writer, hosts model.Hosts) error {
	views := make([]hostView, 0, len(hosts))
	for _, hostName := range sortedKeys(hosts) {
		host := hosts[hostName]
		view := hostView{
			Name:       host.Name,
			Attributes: host.Attributes,
			Status:     statusAttributes(host.Status),
			Services:   make([]serviceView, 0, len(host.Services)),
		}
		for _, command := range sortedKeys(host.Services) {
			service := host.Services[command]
			view.Services = append(view.Services, serviceView{
				Command:    command,
				Attributes: service.Attributes,
				Status:     statusAttributes(service.Status),
			})
		}
		views = append(views, view)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(views); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

func statusAttributes(record *model.StatusRecord) map[string]string {
	if record == nil {
		return nil
	}
	return record.Attributes
}
