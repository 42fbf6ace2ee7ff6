package database

import (
	"context"
	"errors"

	"todoboard/pkg/todo"
)

// ErrNotFound is returned when no todo has the requested id
var ErrNotFound = errors.New("todo not found")

// StatusFilter restricts a listing by completion status
type StatusFilter int

const (
	AllTodos     StatusFilter = iota // Show all todos regardless of status
	DoneTodos                        // Show only completed todos
	PendingTodos                     // Show only uncompleted todos
)

// StatusFilterFor maps the optional isComplete query value onto a filter
func StatusFilterFor(isComplete *bool) StatusFilter {
	switch {
	case isComplete == nil:
		return AllTodos
	case *isComplete:
		return DoneTodos
	default:
		return PendingTodos
	}
}

// Query selects the todos a listing returns
type Query struct {
	Status StatusFilter
	Limit  int
}

// Store persists todos for the dev service
type Store interface {
	List(ctx context.Context, q Query) ([]todo.Item, error)
	Get(ctx context.Context, id string) (todo.Item, error)
	Create(ctx context.Context, req todo.CreateRequest) (todo.Item, error)
	Update(ctx context.Context, id string, req todo.UpdateRequest) (todo.Item, error)
	Delete(ctx context.Context, id string) error
	Close() error
}
