package commands

import (
	"context"
	"fmt"
	"io"

	"todoboard/pkg/api"
	"todoboard/pkg/mutate"
	"todoboard/pkg/utils"
)

// PurgeOptions selects which todos a purge deletes
type PurgeOptions struct {
	DoneOnly    bool
	PendingOnly bool
	SkipConfirm bool
}

// HandlePurge deletes every todo matching opts
func HandlePurge(ctx context.Context, remote Remote, in io.Reader, out io.Writer, opts PurgeOptions) error {
	items, err := remote.List(ctx, api.ListOptions{IsComplete: statusFlag(opts.DoneOnly, opts.PendingOnly)})
	if err != nil {
		return fmt.Errorf("list todos: %w", err)
	}
	if len(items) == 0 {
		fmt.Fprintln(out, "Nothing to delete.")
		return nil
	}

	// Show confirmation unless --yes flag is used
	if !opts.SkipConfirm && !confirm(in, out, fmt.Sprintf("Are you sure you want to delete %d todo(s)?", len(items))) {
		fmt.Fprintln(out, "Operation cancelled.")
		return nil
	}

	svc := mutate.NewService(remote, nil)
	deleted := 0
	for _, it := range items {
		if err := svc.Delete(ctx, it.ID); err != nil {
			utils.Warn("purge: delete failed", "id", it.ID, "err", err)
			continue
		}
		deleted++
	}

	fmt.Fprintf(out, "Successfully deleted %d todo(s)\n", deleted)
	if deleted < len(items) {
		return fmt.Errorf("purge: %d of %d deletes failed", len(items)-deleted, len(items))
	}
	return nil
}

// statusFlag maps --done/--pending onto the list query
func statusFlag(doneOnly, pendingOnly bool) *bool {
	switch {
	case doneOnly:
		v := true
		return &v
	case pendingOnly:
		v := false
		return &v
	}
	return nil
}
