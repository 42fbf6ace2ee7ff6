package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"todoboard/pkg/todo"
	"todoboard/pkg/utils"
)

type sqlStore struct {
	db     *sql.DB
	driver string
}

// rebind rewrites ? placeholders as $n for postgres
func (s *sqlStore) rebind(query string) string {
	if s.driver != driverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

const selectColumns = `SELECT id, todo_name, is_complete, created_at, updated_at, version FROM todos`

type scanner interface {
	Scan(dest ...any) error
}

func scanItem(row scanner) (todo.Item, error) {
	var item todo.Item
	err := row.Scan(&item.ID, &item.Name, &item.IsComplete, &item.CreatedAt, &item.UpdatedAt, &item.Version)
	return item, err
}

// BuildWhereClause builds a SQL where clause and its arguments for a status filter
func BuildWhereClause(status StatusFilter) (string, []any) {
	switch status {
	case DoneTodos:
		return "is_complete = ?", []any{true}
	case PendingTodos:
		return "is_complete = ?", []any{false}
	default:
		return "", nil
	}
}

// List retrieves todos oldest first
func (s *sqlStore) List(ctx context.Context, q Query) ([]todo.Item, error) {
	query := selectColumns
	whereClause, args := BuildWhereClause(q.Status)
	if whereClause != "" {
		query += " WHERE " + whereClause
	}
	query += " ORDER BY created_at ASC, id ASC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []todo.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	utils.Log("loaded todos from database", "count", len(items))
	return items, nil
}

// Get returns one todo or ErrNotFound
func (s *sqlStore) Get(ctx context.Context, id string) (todo.Item, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(selectColumns+" WHERE id = ?"), id)
	item, err := scanItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return todo.Item{}, ErrNotFound
	}
	return item, err
}

// Create inserts a new todo with a fresh uuid
func (s *sqlStore) Create(ctx context.Context, req todo.CreateRequest) (todo.Item, error) {
	now := time.Now().UTC()
	item := todo.Item{
		ID:         uuid.NewString(),
		Name:       req.Name,
		IsComplete: req.IsComplete,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	_, err := s.db.ExecContext(ctx, s.rebind(
		`INSERT INTO todos (id, todo_name, is_complete, created_at, updated_at, version)
		 VALUES (?, ?, ?, ?, ?, 0)`),
		item.ID, item.Name, item.IsComplete, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return todo.Item{}, fmt.Errorf("insert todo: %w", err)
	}
	utils.Log("added todo", "id", item.ID)
	return item, nil
}

// Update sets the completion flag and bumps the version
func (s *sqlStore) Update(ctx context.Context, id string, req todo.UpdateRequest) (todo.Item, error) {
	result, err := s.db.ExecContext(ctx, s.rebind(
		`UPDATE todos SET is_complete = ?, updated_at = ?, version = version + 1 WHERE id = ?`),
		req.IsComplete, time.Now().UTC(), id,
	)
	if err != nil {
		return todo.Item{}, fmt.Errorf("update todo: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return todo.Item{}, ErrNotFound
	}
	utils.Log("updated todo", "id", id, "isComplete", req.IsComplete)
	return s.Get(ctx, id)
}

// Delete removes a todo
func (s *sqlStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM todos WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	utils.Log("deleted todo", "id", id)
	return nil
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}
