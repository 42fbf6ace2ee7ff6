package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"todoboard/pkg/events"
	"todoboard/pkg/mutate"
)

var timeNow = time.Now

// HandleAddTodo creates one todo from the joined words of args
func HandleAddTodo(ctx context.Context, remote Remote, out io.Writer, args []string) error {
	name := strings.Join(args, " ")
	svc := mutate.NewService(remote, nil)
	if err := svc.Create(ctx, name); err != nil {
		if isValidation(err) {
			return err
		}
		report(out, events.OpCreate, "", err)
		return fmt.Errorf("create todo: %w", err)
	}
	report(out, events.OpCreate, "", nil)
	return nil
}
