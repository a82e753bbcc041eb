//nolint:testpackage // Tests require internal access for thorough testing
package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	choreserrors "github.com/abatilo/chores/internal/errors"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name      string
		file      string
		content   string
		tasks     int
		locations []string
	}{
		{
			name:    "empty file",
			file:    "todo.json",
			content: "",
		},
		{
			name:    "valid json",
			file:    "todo.json",
			content: `[{"text": "a", "date": "01.01.20", "interval": 10, "done": false}, {"text": null, "date": null, "interval": "year", "done": true}]`,
			tasks:   2,
		},
		{
			name:    "valid yaml",
			file:    "todo.yaml",
			content: "- text: a\n  date: \"01.01.20\"\n  interval: month\n  done: false\n",
			tasks:   1,
		},
		{
			name:      "bad interval",
			file:      "todo.json",
			content:   `[{"text": "a", "date": null, "interval": null, "done": false}, {"text": "b", "date": null, "interval": 0, "done": false}]`,
			tasks:     2,
			locations: []string{"task 2 interval"},
		},
		{
			name:      "bad date shape and done type",
			file:      "todo.json",
			content:   `[{"text": "a", "date": "2020-01-01", "interval": null, "done": "no"}]`,
			tasks:     1,
			locations: []string{"task 1 date", "task 1 done"},
		},
		{
			name:      "missing key",
			file:      "todo.json",
			content:   `[{"text": "a", "interval": null, "done": false}]`,
			tasks:     1,
			locations: []string{"task 1"},
		},
		{
			name:      "not a list",
			file:      "todo.json",
			content:   `{"text": "a"}`,
			locations: []string{""},
		},
		{
			name:      "not a calendar day",
			file:      "todo.json",
			content:   `[{"text": "a", "date": "31.02.21", "interval": null, "done": false}]`,
			tasks:     1,
			locations: []string{""},
		},
		{
			name:      "unparsable",
			file:      "todo.json",
			content:   `[{"text": `,
			locations: []string{""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)

			result, err := Check(path)
			require.NoError(t, err)
			assert.Equal(t, tt.tasks, result.Tasks)
			require.Equal(t, len(tt.locations) == 0, result.Valid(), "problems = %v", result.Problems)

			locations := make([]string, 0, len(result.Problems))
			for _, p := range result.Problems {
				locations = append(locations, p.Location)
			}
			for _, loc := range tt.locations {
				assert.Contains(t, locations, loc)
			}
		})
	}
}

func TestCheckMissingFile(t *testing.T) {
	_, err := Check(filepath.Join(t.TempDir(), "nope.json"))
	var notFound choreserrors.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestCheckCodecOverridesExtension(t *testing.T) {
	path := writeFile(t, "todo.txt", "- text: a\n  date: 01.02.20\n  interval: month\n  done: false\n")

	result, err := CheckCodec(path, YAMLCodec{})
	require.NoError(t, err)
	assert.True(t, result.Valid(), "problems = %v", result.Problems)
	assert.Equal(t, 1, result.Tasks)

	result, err = Check(path)
	require.NoError(t, err)
	assert.False(t, result.Valid(), "Check should read .txt as JSON and reject YAML content")
}

func TestLocationLabel(t *testing.T) {
	tests := []struct {
		ptr  string
		want string
	}{
		{"", ""},
		{"/0", "task 1"},
		{"/4/interval", "task 5 interval"},
		{"/meta/x", "meta.x"},
	}

	for _, tt := range tests {
		t.Run(tt.ptr, func(t *testing.T) {
			assert.Equal(t, tt.want, locationLabel(tt.ptr))
		})
	}
}

func TestProblemString(t *testing.T) {
	p := Problem{Location: "task 2 interval", Message: "must be >= 1"}
	assert.Equal(t, "task 2 interval: must be >= 1", p.String())
}
