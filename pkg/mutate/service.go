// Package mutate sends create/update/delete requests and announces their outcome
// on the event bus. Nothing is applied locally; subscribers reload the list.
package mutate

import (
	"context"

	"todoboard/pkg/api"
	"todoboard/pkg/events"
	"todoboard/pkg/todo"
	"todoboard/pkg/utils"
)

// Remote is the subset of the todo service the client needs
type Remote interface {
	List(ctx context.Context, opts api.ListOptions) ([]todo.Item, error)
	Create(ctx context.Context, name string) error
	Complete(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// Service runs mutations against the remote service
type Service struct {
	remote Remote
	bus    *events.Bus
}

// NewService creates a mutation service publishing on bus
func NewService(remote Remote, bus *events.Bus) *Service {
	return &Service{remote: remote, bus: bus}
}

// Create posts a new todo. Validation failures are returned without publishing,
// since no request was sent.
func (s *Service) Create(ctx context.Context, name string) error {
	if _, err := todo.NewCreateRequest(name); err != nil {
		return err
	}
	err := s.remote.Create(ctx, name)
	s.publish(events.Event{Op: events.OpCreate, Err: err})
	return err
}

// Complete marks the todo with id as complete
func (s *Service) Complete(ctx context.Context, id string) error {
	err := s.remote.Complete(ctx, id)
	s.publish(events.Event{Op: events.OpUpdate, ID: id, Err: err})
	return err
}

// Delete removes the todo with id
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.remote.Delete(ctx, id)
	s.publish(events.Event{Op: events.OpDelete, ID: id, Err: err})
	return err
}

func (s *Service) publish(e events.Event) {
	if e.Err != nil {
		utils.Warn("mutation failed", "op", e.Op, "id", e.ID, "err", e.Err)
	} else {
		utils.Log("mutation applied", "op", e.Op, "id", e.ID)
	}
	if s.bus != nil {
		s.bus.Publish(e)
	}
}
