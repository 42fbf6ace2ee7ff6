package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(DateLayout)
}

// HandleShow prints one todo
func HandleShow(ctx context.Context, remote Remote, out io.Writer, id string) error {
	it, err := remote.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get %s: %w", id, err)
	}

	label := lipgloss.NewStyle().Bold(true).Width(10)
	fmt.Fprintf(out, "%s%s\n", label.Render("ID"), it.ID)
	fmt.Fprintf(out, "%s%s\n", label.Render("Name"), it.Name)
	fmt.Fprintf(out, "%s%s\n", label.Render("Status"), it.StatusLabel())
	fmt.Fprintf(out, "%s%s\n", label.Render("Created"), formatDate(it.CreatedAt))
	fmt.Fprintf(out, "%s%s\n", label.Render("Updated"), formatDate(it.UpdatedAt))
	fmt.Fprintf(out, "%s%d\n", label.Render("Version"), it.Version)
	return nil
}
