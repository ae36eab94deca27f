package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nhle/schedule/internal/model"
)

const taskListSchemaURL = "https://github.com/nhle/schedule/tasks.schema.json"

// taskListSchema describes the serialized task list. Range checks are left
// to model.Task.Normalize so a single out-of-range priority does not cost
// the whole list.
const taskListSchemaJSON = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "array",
	"items": {
		"type": "object",
		"required": ["date", "startTime", "endTime", "activity", "category"],
		"properties": {
			"date":       {"type": "string"},
			"startTime":  {"type": "string"},
			"endTime":    {"type": "string"},
			"activity":   {"type": "string"},
			"note":       {"type": ["string", "null"]},
			"category":   {"type": "string"},
			"isDeadline": {"type": "boolean"},
			"color":      {"type": "string"},
			"priority":   {"type": "integer"},
			"completed":  {"type": "boolean"}
		}
	}
}`

var taskListSchema = jsonschema.MustCompileString(taskListSchemaURL, taskListSchemaJSON)

// ErrMalformed is returned by DecodeTasks for content that is not a task list.
var ErrMalformed = errors.New("malformed task list")

// EncodeTasks serializes tasks as a JSON array. A nil slice encodes as [].
func EncodeTasks(tasks []model.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []model.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encoding tasks: %w", err)
	}
	return data, nil
}

// DecodeTasks parses a JSON task list, validates its shape and normalizes
// every record. Empty input and a JSON null decode to an empty list.
func DecodeTasks(data []byte) ([]model.Task, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []model.Task{}, nil
	}

	var doc any
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := taskListSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformed, schemaErrorSummary(err))
	}

	var tasks []model.Task
	if err := json.Unmarshal(trimmed, &tasks); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	for i := range tasks {
		tasks[i] = tasks[i].Normalize()
	}
	return tasks, nil
}

// schemaErrorSummary flattens a validation error into its leaf messages.
func schemaErrorSummary(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err.Error()
	}

	var msgs []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := e.InstanceLocation
			if loc == "" {
				loc = "/"
			}
			msgs = append(msgs, loc+": "+e.Message)
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return strings.Join(msgs, "; ")
}

// Format is an import/export document format.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ParseFormat resolves a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatTOML:
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json or toml)", s)
	}
}

// tomlDocument wraps the list since TOML documents must be tables.
type tomlDocument struct {
	Tasks []model.Task `toml:"task"`
}

// Export writes tasks to w. JSON output is the same array the store
// persists, so it can be pasted back into a browser profile.
func Export(w io.Writer, tasks []model.Task, format Format) error {
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(tomlDocument{Tasks: tasks}); err != nil {
			return fmt.Errorf("encoding toml: %w", err)
		}
		return nil
	default:
		if tasks == nil {
			tasks = []model.Task{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tasks); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	}
}

// Import reads a task list from r. Unlike Load, malformed content is an
// error, and every record must pass model.Task.Validate after normalization.
func Import(r io.Reader, format Format) ([]model.Task, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	var tasks []model.Task
	switch format {
	case FormatTOML:
		var doc tomlDocument
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		tasks = make([]model.Task, len(doc.Tasks))
		for i, t := range doc.Tasks {
			tasks[i] = t.Normalize()
		}
	default:
		tasks, err = DecodeTasks(data)
		if err != nil {
			return nil, err
		}
	}

	for i, t := range tasks {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("task %d: %w", i+1, err)
		}
	}
	return tasks, nil
}
