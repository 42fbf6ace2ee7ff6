// Package notify turns mutation outcomes into short-lived toast notifications.
package notify

import (
	"time"

	"todoboard/pkg/events"
)

// Variant selects the toast styling
type Variant int

const (
	Success Variant = iota
	Destructive
)

// Toast is one notification
type Toast struct {
	Variant     Variant
	Title       string
	Description string
	Expires     time.Time
}

const (
	failureTitle       = "Uh oh! Something went wrong."
	failureDescription = "There was a problem with your request."
)

// FromEvent builds the toast for a finished mutation
func FromEvent(e events.Event, now time.Time, ttl time.Duration) Toast {
	t := Toast{Variant: Success, Expires: now.Add(ttl)}
	if !e.Succeeded() {
		t.Variant = Destructive
		t.Title = failureTitle
		t.Description = failureDescription
		return t
	}

	switch e.Op {
	case events.OpCreate:
		t.Title = "Success Create Todo"
		t.Description = "Successfull create todo item."
	case events.OpUpdate:
		t.Title = "Success Update Todo"
		t.Description = "Successfull update todo, completed todo item."
	case events.OpDelete:
		t.Title = "Success Delete Todo"
		t.Description = "Successfull delete todo item."
	}
	return t
}

// Expired reports whether the toast should no longer be shown at now
func (t Toast) Expired(now time.Time) bool {
	return !now.Before(t.Expires)
}

// Stack keeps the toasts currently on screen, newest last
type Stack struct {
	toasts []Toast
	limit  int
}

// NewStack creates a stack showing at most limit toasts
func NewStack(limit int) *Stack {
	if limit <= 0 {
		limit = 3
	}
	return &Stack{limit: limit}
}

// Push adds a toast, dropping the oldest when over the limit
func (s *Stack) Push(t Toast) {
	s.toasts = append(s.toasts, t)
	if len(s.toasts) > s.limit {
		s.toasts = s.toasts[len(s.toasts)-s.limit:]
	}
}

// Prune removes expired toasts and reports whether any remain
func (s *Stack) Prune(now time.Time) bool {
	kept := s.toasts[:0]
	for _, t := range s.toasts {
		if !t.Expired(now) {
			kept = append(kept, t)
		}
	}
	s.toasts = kept
	return len(s.toasts) > 0
}

// Toasts returns the visible toasts, oldest first
func (s *Stack) Toasts() []Toast {
	return s.toasts
}
