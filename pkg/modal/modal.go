// Package modal holds the single pending update-or-delete confirmation.
package modal

import "todoboard/pkg/todo"

// Kind is the row action awaiting confirmation
type Kind int

const (
	Update Kind = iota
	Delete
)

// Title is the dialog heading for the action
func (k Kind) Title() string {
	if k == Update {
		return "Update Todo Status"
	}
	return "Delete Todo"
}

// Description is the dialog question for the action
func (k Kind) Description() string {
	if k == Update {
		return "Are you completed todo item?"
	}
	return "Are you sure to delete todo item?"
}

// ConfirmLabel is the label of the confirming button
func (k Kind) ConfirmLabel() string {
	if k == Update {
		return "Update"
	}
	return "Delete"
}

// MenuLabel is the entry shown in a row's action menu
func (k Kind) MenuLabel() string {
	if k == Update {
		return "Update Todo Status"
	}
	return "Delete Todo"
}

// ActionsFor lists the row actions offered for it. Completed items cannot be updated.
func ActionsFor(it todo.Item) []Kind {
	if it.IsComplete {
		return []Kind{Delete}
	}
	return []Kind{Update, Delete}
}

// PendingAction is the target of the open dialog. An empty ID means no dialog.
type PendingAction struct {
	ID   string
	Kind Kind
}

// Controller is a two-state machine: idle, or confirming one pending action.
// Opening while confirming replaces the pending target.
type Controller struct {
	pending PendingAction
}

// Open moves to confirming for id. An empty id is ignored.
func (c *Controller) Open(id string, kind Kind) {
	if id == "" {
		return
	}
	c.pending = PendingAction{ID: id, Kind: kind}
}

// Confirming reports whether a dialog is open
func (c *Controller) Confirming() bool {
	return c.pending.ID != ""
}

// Pending returns the action awaiting confirmation
func (c *Controller) Pending() PendingAction {
	return c.pending
}

// Confirm returns the action to dispatch and goes idle. Only the id is cleared.
func (c *Controller) Confirm() (PendingAction, bool) {
	if !c.Confirming() {
		return PendingAction{}, false
	}
	p := c.pending
	c.pending.ID = ""
	return p, true
}

// Cancel goes idle without dispatching anything
func (c *Controller) Cancel() {
	c.pending.ID = ""
}
