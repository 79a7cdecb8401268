package commands

import (
	"bytes"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry(ran *string, ticks *int) *Registry {
	r := NewRegistry("window")
	for _, name := range []string{"window", "headless"} {
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		fs.SetOutput(&bytes.Buffer{})
		fs.IntVar(ticks, "ticks", 1, "")
		r.Register(name, "run "+name, fs, func() error {
			*ran = name
			return nil
		})
	}
	return r
}

func TestExecute(t *testing.T) {
	tests := []struct {
		args  []string
		ran   string
		ticks int
	}{
		{nil, "window", 1},
		{[]string{"-ticks", "3"}, "window", 3},
		{[]string{"headless", "-ticks", "9"}, "headless", 9},
	}
	for _, tt := range tests {
		var ran string
		var ticks int
		require.NoError(t, newRegistry(&ran, &ticks).Execute(tt.args), tt.args)
		assert.Equal(t, tt.ran, ran)
		assert.Equal(t, tt.ticks, ticks)
	}
}

func TestExecuteErrors(t *testing.T) {
	var ran string
	var ticks int
	r := newRegistry(&ran, &ticks)
	assert.EqualError(t, r.Execute([]string{"render"}), "unknown command: render")
	assert.Error(t, r.Execute([]string{"headless", "-ticks", "many"}))

	assert.EqualError(t, NewRegistry("").Execute(nil), "missing subcommand")
}

func TestUsage(t *testing.T) {
	var ran string
	var ticks int
	var buf bytes.Buffer
	newRegistry(&ran, &ticks).Usage(&buf)
	assert.Equal(t, "commands:\n  headless   run headless\n  window     run window\n", buf.String())
}
