package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"todoboard/pkg/api"
	"todoboard/pkg/mutate"
	"todoboard/pkg/todo"
	"todoboard/pkg/utils"
)

// ImportEntry is one todo read from an import file
type ImportEntry struct {
	Name       string
	IsComplete bool
}

// DD.MM.YYYY: or YYYY-MM-DD: group headers written by the txt export
var dateHeader = regexp.MustCompile(`^(?:\d{2}\.\d{2}\.\d{4}|\d{4}-\d{2}-\d{2}):?$`)

// ParseTxt reads "- [x] name" and "- [ ] name" lines. Date headers are skipped.
func ParseTxt(content string) []ImportEntry {
	var entries []ImportEntry
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || dateHeader.MatchString(line) {
			continue
		}
		if !strings.HasPrefix(line, "- ") {
			continue
		}

		text := strings.TrimSpace(strings.TrimPrefix(line, "- "))
		entry := ImportEntry{}
		switch {
		case strings.HasPrefix(text, "[x]"), strings.HasPrefix(text, "[X]"):
			entry.IsComplete = true
			text = text[3:]
		case strings.HasPrefix(text, "[ ]"):
			text = text[3:]
		}
		entry.Name = strings.TrimSpace(text)
		if entry.Name != "" {
			entries = append(entries, entry)
		}
	}
	return entries
}

const exportSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["todoName"],
    "properties": {
      "_id": {"type": "string"},
      "todoName": {"type": "string", "minLength": 1},
      "isComplete": {"type": "boolean"}
    }
  }
}`

var exportSchemaCompiled = jsonschema.MustCompileString("todoboard-export.json", exportSchema)

// ParseJSON reads the json export format after checking it against the export schema
func ParseJSON(content []byte) ([]ImportEntry, error) {
	var doc interface{}
	if err := json.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if err := exportSchemaCompiled.Validate(doc); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return nil, fmt.Errorf("invalid export file: %s", schemaMessage(ve))
		}
		return nil, fmt.Errorf("invalid export file: %w", err)
	}

	var items []todo.Item
	if err := json.Unmarshal(content, &items); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	entries := make([]ImportEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, ImportEntry{Name: it.Name, IsComplete: it.IsComplete})
	}
	return entries, nil
}

// schemaMessage reports the first leaf error with its location
func schemaMessage(ve *jsonschema.ValidationError) string {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Sprintf("%s: %s", loc, ve.Message)
}

// HandleImport creates a todo for every entry in filename. The service always creates
// incomplete todos, so completed entries are marked afterwards by matching names.
func HandleImport(ctx context.Context, remote Remote, out io.Writer, filename string) error {
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	var entries []ImportEntry
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		if entries, err = ParseJSON(content); err != nil {
			return err
		}
	} else {
		entries = ParseTxt(string(content))
	}

	svc := mutate.NewService(remote, nil)
	added := 0
	toComplete := map[string]int{}
	for _, e := range entries {
		if err := svc.Create(ctx, e.Name); err != nil {
			fmt.Fprintf(out, "Error adding todo '%s': %v\n", e.Name, err)
			continue
		}
		added++
		if e.IsComplete {
			toComplete[strings.TrimSpace(e.Name)]++
		}
	}

	if len(toComplete) > 0 {
		pending := false
		items, err := remote.List(ctx, api.ListOptions{IsComplete: &pending})
		if err != nil {
			return fmt.Errorf("list todos: %w", err)
		}
		// Newest first so freshly imported todos win over older namesakes
		for i := len(items) - 1; i >= 0; i-- {
			it := items[i]
			if toComplete[it.Name] == 0 {
				continue
			}
			if err := svc.Complete(ctx, it.ID); err != nil {
				utils.Warn("import: complete failed", "id", it.ID, "err", err)
				continue
			}
			toComplete[it.Name]--
		}
	}

	fmt.Fprintf(out, "Successfully imported %d todo(s) from %s\n", added, filename)
	return nil
}
