// Package commands implements the scriptable subcommands on top of the todo service client.
package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"todoboard/pkg/events"
	"todoboard/pkg/mutate"
	"todoboard/pkg/notify"
	"todoboard/pkg/todo"
)

// Remote is what the commands need from the todo service
type Remote interface {
	mutate.Remote
	Get(ctx context.Context, id string) (todo.Item, error)
}

// report prints the same title and description the TUI would toast for an outcome
func report(out io.Writer, op events.Op, id string, err error) {
	t := notify.FromEvent(events.Event{Op: op, ID: id, Err: err}, timeNow(), 0)
	fmt.Fprintf(out, "%s %s\n", t.Title, t.Description)
}

// confirm asks question on out and reads a y/yes answer from in
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s (y/N): ", question)
	response, _ := bufio.NewReader(in).ReadString('\n')
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
