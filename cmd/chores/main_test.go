package main

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	choreserrors "github.com/abatilo/chores/internal/errors"
	"github.com/abatilo/chores/internal/task"
)

func TestParseIndex(t *testing.T) {
	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{"1", 0, false},
		{" 12 ", 11, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"two", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseIndex(tt.arg)
			if tt.wantErr {
				var invalid InvalidPositionError
				assert.True(t, errors.As(err, &invalid), "error = %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUserErrorIsOneBased(t *testing.T) {
	err := userError(choreserrors.IndexError{Index: 4, Len: 3})
	assert.Equal(t, PositionError{Position: 5, Count: 3}, err)
	assert.Equal(t, "no task 5 (valid: 1-3)", err.Error())

	empty := userError(choreserrors.IndexError{Index: 0, Len: 0})
	assert.Equal(t, "no task 1: the list is empty", empty.Error())

	other := errors.New("disk full")
	assert.Equal(t, other, userError(other))
}

func TestBuildPatch(t *testing.T) {
	date, err := task.ParseDate("05.06.24")
	require.NoError(t, err)

	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, p task.Patch)
	}{
		{
			name: "text only",
			args: []string{"--text", "new"},
			check: func(t *testing.T, p task.Patch) {
				require.NotNil(t, p.Text)
				assert.Equal(t, "new", *p.Text)
				assert.Nil(t, p.Date)
				assert.Nil(t, p.Interval)
				assert.Nil(t, p.Done)
			},
		},
		{
			name: "empty text clears",
			args: []string{"--text", ""},
			check: func(t *testing.T, p task.Patch) {
				require.NotNil(t, p.Text)
				assert.Empty(t, *p.Text)
			},
		},
		{
			name: "date and interval",
			args: []string{"-d", "05.06.24", "--every", "month"},
			check: func(t *testing.T, p task.Patch) {
				require.NotNil(t, p.Date)
				assert.True(t, p.Date.Equal(date))
				require.NotNil(t, p.Interval)
				assert.Equal(t, task.Monthly(), *p.Interval)
			},
		},
		{
			name: "clears",
			args: []string{"--clear-date", "--clear-every"},
			check: func(t *testing.T, p task.Patch) {
				require.NotNil(t, p.Date)
				assert.True(t, p.Date.IsZero())
				require.NotNil(t, p.Interval)
				assert.True(t, p.Interval.IsZero())
			},
		},
		{
			name: "undone",
			args: []string{"--undone"},
			check: func(t *testing.T, p task.Patch) {
				require.NotNil(t, p.Done)
				assert.False(t, *p.Done)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := editCmd()
			require.NoError(t, cmd.ParseFlags(tt.args))
			p, err := buildPatch(cmd.Flags())
			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}

func TestBuildPatchErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no flags", nil},
		{"bad date", []string{"--date", "31.02.24"}},
		{"bad interval", []string{"--every", "0"}},
		{"explicitly false clear", []string{"--clear-date=false"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := editCmd()
			require.NoError(t, cmd.ParseFlags(tt.args))
			_, err := buildPatch(cmd.Flags())
			assert.Error(t, err)
		})
	}
}

// run executes the CLI with args and returns what it wrote to stdout.
func run(t *testing.T, args ...string) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	jsonOutput = false
	configPath = ""
	cmd := newRootCmd()
	cmd.SetArgs(args)
	execErr := cmd.Execute()

	require.NoError(t, w.Close())
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.NoError(t, execErr)
	return string(out)
}

func TestCommandsEndToEnd(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "lists", "todo.json")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("CHORES_FILE", file)
	t.Setenv("CHORES_FORMAT", "")
	t.Setenv("CHORES_LOG_LEVEL", "")

	assert.Contains(t, run(t, "init"), "Initialized chores at "+file)

	run(t, "add", "buy", "milk")
	run(t, "add", "renew passport", "--date", "01.06.68")
	run(t, "add", "clean gutters")
	run(t, "done", "3")

	assert.Equal(t,
		"1. [ ] buy milk\n2. [ ] renew passport (01.06.68)\n3. [*] clean gutters\n",
		run(t, "list"))
	assert.Equal(t, "3. [*] clean gutters\n", run(t, "list", "--done"))

	run(t, "mv", "3", "1")
	run(t, "edit", "2", "--text", "buy oat milk")
	assert.Equal(t,
		"1. clean gutters\n2. buy oat milk\n3. renew passport (01.06.68)\n",
		run(t, "list", "--no-status"))

	assert.Equal(t, "Pruned 1 done task(s)\n", run(t, "prune"))
	run(t, "swap", "1", "2")

	out := run(t, "--json", "list")
	var got []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "renew passport", got[0]["text"])
	assert.Equal(t, "01.06.68", got[0]["date"])

	assert.True(t, strings.HasSuffix(run(t, "check"), "ok (2 tasks)\n"))
	assert.Equal(t, "Advanced 0 recurring task(s)\n", run(t, "update"))
}
