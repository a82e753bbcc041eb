package storage

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abatilo/chores/internal/task"
)

// Codec converts a whole task list to and from the bytes of one document.
type Codec interface {
	Decode(data []byte) ([]task.Task, error)
	Encode(tasks []task.Task) ([]byte, error)
}

// taskRecord is the serialized form of a task. All four keys are always
// written; absent values are null.
type taskRecord struct {
	Text     *string       `json:"text"     yaml:"text"`
	Date     task.Date     `json:"date"     yaml:"date"`
	Interval task.Interval `json:"interval" yaml:"interval"`
	Done     bool          `json:"done"     yaml:"done"`
}

func toRecords(tasks []task.Task) []taskRecord {
	records := make([]taskRecord, len(tasks))
	for i, t := range tasks {
		rec := taskRecord{
			Date:     t.Date,
			Interval: t.Interval,
			Done:     t.Done,
		}
		if t.Text != "" {
			text := t.Text
			rec.Text = &text
		}
		records[i] = rec
	}
	return records
}

func fromRecords(records []taskRecord) []task.Task {
	tasks := make([]task.Task, len(records))
	for i, rec := range records {
		t := task.Task{
			Date:     rec.Date,
			Interval: rec.Interval,
			Done:     rec.Done,
		}
		if rec.Text != nil {
			t.Text = *rec.Text
		}
		tasks[i] = t
	}
	return tasks
}

// JSONCodec stores the list as a JSON array, the historical format.
type JSONCodec struct{}

func (JSONCodec) Decode(data []byte) ([]task.Task, error) {
	var records []taskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return fromRecords(records), nil
}

func (JSONCodec) Encode(tasks []task.Task) ([]byte, error) {
	data, err := json.MarshalIndent(toRecords(tasks), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// YAMLCodec stores the list as a YAML sequence.
type YAMLCodec struct{}

func (YAMLCodec) Decode(data []byte) ([]task.Task, error) {
	var records []taskRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return fromRecords(records), nil
}

func (YAMLCodec) Encode(tasks []task.Task) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(toRecords(tasks)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CodecFor picks the codec for a data file by its extension.
func CodecFor(path string) Codec {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLCodec{}
	default:
		return JSONCodec{}
	}
}

// CodecByName returns the codec for "json" or "yaml", or nil.
func CodecByName(name string) Codec {
	switch strings.ToLower(name) {
	case "json":
		return JSONCodec{}
	case "yaml", "yml":
		return YAMLCodec{}
	default:
		return nil
	}
}
