package flagx

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	clientFlags := []string{"-a", "-i", "-d", "-t", "-c", "-config"}

	tests := map[string]struct {
		args []string
		want []string
	}{
		"separate values kept":        {args: []string{"-a", "srv:50051", "-i", "5"}, want: []string{"-a", "srv:50051", "-i", "5"}},
		"equals form kept whole":      {args: []string{"-config=ls.json", "-storage", "s3"}, want: []string{"-config=ls.json"}},
		"foreign flags dropped":       {args: []string{"-storage", "s3", "-redis", "r:6379"}, want: []string{}},
		"foreign equals dropped":      {args: []string{"-storage=s3", "-d", "ls.db"}, want: []string{"-d", "ls.db"}},
		"trailing flag without value": {args: []string{"-t"}, want: []string{"-t"}},
		"dash token is not a value":   {args: []string{"-d", "-a=srv"}, want: []string{"-d", "-a=srv"}},
		"positional words dropped":    {args: []string{"token", "owner-1"}, want: []string{}},
		"repeats keep order":          {args: []string{"-c", "a.json", "-c", "b.json"}, want: []string{"-c", "a.json", "-c", "b.json"}},
		"empty":                       {args: []string{}, want: []string{}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, clientFlags))
		})
	}
}

func TestFilterArgs_BoolFlagsDoNotConsumeValue(t *testing.T) {
	got := FilterArgs([]string{"-async", "token", "-a", "host:1"}, []string{"-async", "-a"}, "-async")
	assert.Equal(t, []string{"-async", "-a", "host:1"}, got)
}

func TestPositional(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{name: "subcommand after flags", args: []string{"-s", "secret", "token", "owner-1"}, want: []string{"token", "owner-1"}},
		{name: "equals form skipped", args: []string{"--config=x.json", "token"}, want: []string{"token"}},
		{name: "bool flag keeps next positional", args: []string{"-async", "run"}, want: []string{"run"}},
		{name: "only flags", args: []string{"-s", "secret"}, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Positional(tt.args, []string{"-s", "-async", "--config"}, "-async")
			assert.Equal(t, tt.want, got)
		})
	}
}

func Test_jsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/short.json"}
		assert.Equal(t, "/path/short.json", JsonConfigFlags())
	})

	t.Run("long -config with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", "/path/long.json"}
		assert.Equal(t, "/path/long.json", JsonConfigFlags())
	})

	t.Run("unknown flags are ignored", func(t *testing.T) {
		os.Args = []string{"testbin", "-x", "1", "-y", "2"}
		assert.Empty(t, JsonConfigFlags())
	})

	t.Run("multiple flags, last wins", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/1.json", "-config", "/path/2.json"}
		assert.Equal(t, "/path/2.json", JsonConfigFlags())
	})
}
