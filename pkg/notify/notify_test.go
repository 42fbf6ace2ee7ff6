package notify

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"todoboard/pkg/events"
)

func TestFromEventSuccessTitles(t *testing.T) {
	now := time.Now()
	cases := []struct {
		op    events.Op
		title string
		desc  string
	}{
		{events.OpCreate, "Success Create Todo", "Successfull create todo item."},
		{events.OpUpdate, "Success Update Todo", "Successfull update todo, completed todo item."},
		{events.OpDelete, "Success Delete Todo", "Successfull delete todo item."},
	}
	for _, tc := range cases {
		toast := FromEvent(events.Event{Op: tc.op}, now, time.Second)
		assert.Equal(t, Success, toast.Variant)
		assert.Equal(t, tc.title, toast.Title)
		assert.Equal(t, tc.desc, toast.Description)
		assert.Equal(t, now.Add(time.Second), toast.Expires)
	}
}

func TestFromEventFailureIsGeneric(t *testing.T) {
	for _, op := range []events.Op{events.OpCreate, events.OpUpdate, events.OpDelete} {
		toast := FromEvent(events.Event{Op: op, Err: errors.New("x")}, time.Now(), time.Second)
		assert.Equal(t, Destructive, toast.Variant)
		assert.Equal(t, "Uh oh! Something went wrong.", toast.Title)
		assert.Equal(t, "There was a problem with your request.", toast.Description)
	}
}

func TestStackPushAndPrune(t *testing.T) {
	now := time.Now()
	s := NewStack(2)
	s.Push(Toast{Title: "a", Expires: now.Add(time.Second)})
	s.Push(Toast{Title: "b", Expires: now.Add(3 * time.Second)})
	s.Push(Toast{Title: "c", Expires: now.Add(5 * time.Second)})

	assert.Len(t, s.Toasts(), 2)
	assert.Equal(t, "b", s.Toasts()[0].Title)

	assert.True(t, s.Prune(now.Add(4*time.Second)))
	assert.Len(t, s.Toasts(), 1)
	assert.Equal(t, "c", s.Toasts()[0].Title)

	assert.False(t, s.Prune(now.Add(5*time.Second)))
}
