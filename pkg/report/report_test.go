package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nagios-stats/pkg/model"
)

func sampleHosts() model.Hosts {
	hosts := make(model.Hosts)

	web := hosts.GetOrCreate("web1")
	web.Attributes = model.Attributes{"host_name": "web1", "address": "10.0.0.1"}
	web.Status = &model.StatusRecord{Type: "host", Attributes: model.Attributes{"host_name": "web1", "current_state": "0"}}
	http := web.GetOrCreateService("check_http")
	http.Attributes = model.Attributes{"host_name": "web1", "service_description": "HTTP", "check_command": "check_http"}
	http.Status = &model.StatusRecord{Type: "service", Attributes: model.Attributes{"plugin_output": "HTTP OK", "current_state": "0"}}
	ping := web.GetOrCreateService("check_ping")
	ping.Attributes = model.Attributes{"service_description": "PING"}

	db := hosts.GetOrCreate("db1")
	mysql := db.GetOrCreateService("check_mysql")
	mysql.Status = &model.StatusRecord{Type: "service", Attributes: model.Attributes{"plugin_output": "Connection refused", "current_state": "2"}}

	return hosts
}

func TestRows_SortedByHostThenCommand(t *testing.T) {
	rows := Rows(sampleHosts())
	assert.Equal(t, []Row{
		{Host: "db1", Check: "check_mysql", Status: "Connection refused", State: "2"},
		{Host: "web1", Check: "HTTP", Status: "HTTP OK", State: "0"},
		{Host: "web1", Check: "PING", Status: "", State: ""},
	}, rows)
}

func TestRows_Empty(t *testing.T) {
	assert.Empty(t, Rows(model.Hosts{}))
	assert.Empty(t, Rows(model.Hosts{"lonely": model.NewHost("lonely")}))
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, sampleHosts()))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"Host", "Check", "Status"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"db1", "check_mysql", "Connection", "refused"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"web1", "HTTP", "HTTP", "OK"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"web1", "PING"}, strings.Fields(lines[3]))

	column := strings.Index(lines[0], "Check")
	assert.Equal(t, column, strings.Index(lines[1], "check_mysql"))
	assert.Equal(t, column, strings.Index(lines[2], "HTTP"))
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sampleHosts()))

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 2)

	assert.Equal(t, "db1", decoded[0]["host_name"])
	assert.NotContains(t, decoded[0], "status")
	assert.Equal(t, map[string]interface{}{}, decoded[0]["attributes"])

	web := decoded[1]
	assert.Equal(t, "web1", web["host_name"])
	assert.Equal(t, "0", web["status"].(map[string]interface{})["current_state"])
	services := web["services"].([]interface{})
	require.Len(t, services, 2)
	http := services[0].(map[string]interface{})
	assert.Equal(t, "check_http", http["check_command"])
	assert.Equal(t, "HTTP OK", http["status"].(map[string]interface{})["plugin_output"])
	assert.NotContains(t, services[1], "status")
}
