package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"todoboard/pkg/api"
	"todoboard/pkg/todo"
)

// HandleExport writes every todo to filename as json or txt
func HandleExport(ctx context.Context, remote Remote, out io.Writer, filename, exportType string) error {
	items, err := remote.List(ctx, api.ListOptions{})
	if err != nil {
		return fmt.Errorf("list todos: %w", err)
	}

	content, err := EncodeExport(items, exportType)
	if err != nil {
		return err
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	if err := os.WriteFile(filename, content, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	fmt.Fprintf(out, "Successfully exported %d todo(s) to %s\n", len(items), filename)
	return nil
}

// EncodeExport renders items in the given export format
func EncodeExport(items []todo.Item, exportType string) ([]byte, error) {
	switch exportType {
	case "json":
		content, err := json.MarshalIndent(items, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal todos: %w", err)
		}
		return content, nil

	case "txt":
		// Group under the creation date, as "02.01.2006:" headers
		var lines []string
		var lastDate string
		for _, it := range items {
			dateStr := it.CreatedAt.Local().Format("02.01.2006")
			if dateStr != lastDate {
				lines = append(lines, fmt.Sprintf("\n%s:", dateStr))
				lastDate = dateStr
			}

			status := " "
			if it.IsComplete {
				status = "x"
			}
			lines = append(lines, fmt.Sprintf("- [%s] %s", status, it.Name))
		}
		return []byte(strings.TrimSpace(strings.Join(lines, "\n")) + "\n"), nil
	}
	return nil, fmt.Errorf("unknown export type: %s", exportType)
}
