package storage

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	choreserrors "github.com/abatilo/chores/internal/errors"
)

//go:embed tasklist.schema.json
var taskListSchema string

//nolint:gochecknoglobals // compiled once from the embedded schema
var compiledSchema = jsonschema.MustCompileString("tasklist.schema.json", taskListSchema)

// Problem is one defect found in a task file.
type Problem struct {
	Location string
	Message  string
}

func (p Problem) String() string {
	if p.Location == "" {
		return p.Message
	}
	return p.Location + ": " + p.Message
}

// CheckResult reports whether a task file holds a well-formed task list.
type CheckResult struct {
	Path     string
	Tasks    int
	Problems []Problem
}

// Valid reports whether no problems were found.
func (r *CheckResult) Valid() bool {
	return len(r.Problems) == 0
}

// Check validates the file at path against the task list schema without
// modifying it. Unlike Store.List it reports content that would be read as
// an empty list. An empty file is valid.
func Check(path string) (*CheckResult, error) {
	return CheckCodec(path, CodecFor(path))
}

// CheckCodec is Check with the document format forced to codec.
func CheckCodec(path string, codec Codec) (*CheckResult, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, choreserrors.NotFoundError{Path: path}
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	result := &CheckResult{Path: path}
	if len(bytes.TrimSpace(data)) == 0 {
		return result, nil
	}

	doc, err := decodeDocument(codec, data)
	if err != nil {
		result.Problems = append(result.Problems, Problem{Message: "not a structured document: " + err.Error()})
		return result, nil
	}
	if items, ok := doc.([]any); ok {
		result.Tasks = len(items)
	}

	if err = compiledSchema.Validate(doc); err != nil {
		appendSchemaProblems(result, err)
		return result, nil
	}

	// The schema checks shape only; decoding also checks calendar days.
	if _, err = codec.Decode(data); err != nil {
		result.Problems = append(result.Problems, Problem{Message: err.Error()})
	}
	return result, nil
}

// decodeDocument decodes data into generic JSON values. YAML is routed
// through JSON so the validator sees one set of value types.
func decodeDocument(codec Codec, data []byte) (any, error) {
	if _, isYAML := codec.(YAMLCodec); isYAML {
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		converted, err := json.Marshal(raw)
		if err != nil {
			return nil, err
		}
		data = converted
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func appendSchemaProblems(result *CheckResult, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Problems = append(result.Problems, Problem{Message: err.Error()})
		return
	}
	collectSchemaProblems(result, ve)
}

func collectSchemaProblems(result *CheckResult, ve *jsonschema.ValidationError) {
	// One problem per failed anyOf, not one per rejected alternative.
	if strings.HasSuffix(ve.KeywordLocation, "/anyOf") {
		result.Problems = append(result.Problems, Problem{
			Location: locationLabel(ve.InstanceLocation),
			Message:  strings.Join(leafMessages(ve, nil), "; or "),
		})
		return
	}
	if len(ve.Causes) == 0 {
		result.Problems = append(result.Problems, Problem{
			Location: locationLabel(ve.InstanceLocation),
			Message:  ve.Message,
		})
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaProblems(result, cause)
	}
}

func leafMessages(ve *jsonschema.ValidationError, msgs []string) []string {
	if len(ve.Causes) == 0 {
		return append(msgs, ve.Message)
	}
	for _, cause := range ve.Causes {
		msgs = leafMessages(cause, msgs)
	}
	return msgs
}

// locationLabel turns a JSON pointer such as /2/interval into "task 3: interval".
func locationLabel(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	parts := strings.Split(ptr, "/")
	index, err := strconv.Atoi(parts[0])
	if err != nil {
		return strings.Join(parts, ".")
	}
	label := fmt.Sprintf("task %d", index+1)
	if len(parts) > 1 {
		label += " " + strings.Join(parts[1:], ".")
	}
	return label
}
