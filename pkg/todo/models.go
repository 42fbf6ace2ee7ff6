package todo

import (
	"encoding/json"
	"time"
)

// Item represents a single todo record as served by the remote todo service
type Item struct {
	ID         string    `json:"_id"`
	Name       string    `json:"todoName"`
	IsComplete bool      `json:"isComplete"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Version    int       `json:"__v"`
}

// Some deployments of the service spell the update timestamp "updateAt".
type itemWire struct {
	ID         string     `json:"_id"`
	Name       string     `json:"todoName"`
	IsComplete bool       `json:"isComplete"`
	CreatedAt  *time.Time `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt"`
	UpdateAt   *time.Time `json:"updateAt"`
	Version    int        `json:"__v"`
}

// UnmarshalJSON decodes an item, accepting either spelling of the update timestamp
func (i *Item) UnmarshalJSON(b []byte) error {
	var w itemWire
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}

	*i = Item{
		ID:         w.ID,
		Name:       w.Name,
		IsComplete: w.IsComplete,
		Version:    w.Version,
	}
	if w.CreatedAt != nil {
		i.CreatedAt = *w.CreatedAt
	}
	switch {
	case w.UpdatedAt != nil:
		i.UpdatedAt = *w.UpdatedAt
	case w.UpdateAt != nil:
		i.UpdatedAt = *w.UpdateAt
	}
	return nil
}

// StatusLabel is the badge text shown for the completion flag
func (i Item) StatusLabel() string {
	if i.IsComplete {
		return "Finish"
	}
	return "Unfinish"
}

// CreateRequest is the body posted to create a todo
type CreateRequest struct {
	Name       string `json:"todoName" validate:"required,min=2,max=50"`
	IsComplete bool   `json:"isComplete"`
}

// UpdateRequest is the body put to complete a todo. There is no way to un-complete.
type UpdateRequest struct {
	IsComplete bool `json:"isComplete"`
}

// CompleteRequest returns the only update the service is ever sent
func CompleteRequest() UpdateRequest {
	return UpdateRequest{IsComplete: true}
}

// Envelope wraps every successful read response
type Envelope[T any] struct {
	Data T `json:"data"`
}
