package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"todoboard/pkg/events"
	"todoboard/pkg/modal"
	"todoboard/pkg/mutate"
	"todoboard/pkg/todo"
)

func isValidation(err error) bool {
	var ve *todo.ValidationError
	return errors.As(err, &ve)
}

// HandleComplete marks the todo with id as completed
func HandleComplete(ctx context.Context, remote Remote, out io.Writer, id string) error {
	svc := mutate.NewService(remote, nil)
	err := svc.Complete(ctx, id)
	report(out, events.OpUpdate, id, err)
	if err != nil {
		return fmt.Errorf("complete %s: %w", id, err)
	}
	return nil
}

// HandleDelete removes the todo with id after confirmation, unless skipConfirm is set
func HandleDelete(ctx context.Context, remote Remote, in io.Reader, out io.Writer, id string, skipConfirm bool) error {
	if !skipConfirm && !confirm(in, out, modal.Delete.Description()) {
		fmt.Fprintln(out, "Operation cancelled.")
		return nil
	}

	svc := mutate.NewService(remote, nil)
	err := svc.Delete(ctx, id)
	report(out, events.OpDelete, id, err)
	if err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	return nil
}
