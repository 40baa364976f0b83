package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	serverFlags := []string{"-a", "-g", "-d", "-r"}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "keeps known flags with values",
			args: []string{"-a", ":3000", "-g", ":50051"},
			want: []string{"-a", ":3000", "-g", ":50051"},
		},
		{
			name: "drops config file flag and its value",
			args: []string{"-c", "server.json", "-r", "memory"},
			want: []string{"-r", "memory"},
		},
		{
			name: "equals form",
			args: []string{"-d=postgres://u:p@db/projecthub", "-config=x.json"},
			want: []string{"-d=postgres://u:p@db/projecthub"},
		},
		{
			name: "dash-prefixed token is never taken as a value",
			args: []string{"-a", "-g", ":50051"},
			want: []string{"-a", "-g", ":50051"},
		},
		{
			name: "trailing flag without value",
			args: []string{"-r"},
			want: []string{"-r"},
		},
		{
			name: "positional arguments are dropped",
			args: []string{"serve", "-a", ":8080", "extra"},
			want: []string{"-a", ":8080"},
		},
		{
			name: "repeated flag keeps order",
			args: []string{"-r", "postgres", "-r", "memory"},
			want: []string{"-r", "postgres", "-r", "memory"},
		},
		{
			name: "nothing known",
			args: []string{"-x", "1"},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, serverFlags))
		})
	}
}

func TestConfigFile(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"short form", []string{"-c", "/etc/projecthub/server.json"}, "/etc/projecthub/server.json"},
		{"long form with equals among other flags", []string{"-a", ":8080", "-config=/tmp/cli.json"}, "/tmp/cli.json"},
		{"absent", []string{"-a", ":8080", "-r", "memory"}, ""},
		{"last one wins", []string{"-c", "one.json", "-config", "two.json"}, "two.json"},
		{"nil args", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfigFile(tt.args))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"http://localhost:5173", "https://app.example.com"},
		SplitList(" http://localhost:5173, ,https://app.example.com,"))
	assert.Empty(t, SplitList(""))
	assert.NotNil(t, SplitList(""))
}
