package commands

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todoboard/pkg/api"
	"todoboard/pkg/database"
	"todoboard/pkg/server"
	tbl "todoboard/pkg/table"
)

func startService(t *testing.T) *api.Client {
	t.Helper()
	store, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	ts := httptest.NewServer(server.New(store).Handler())
	t.Cleanup(ts.Close)

	client, err := api.NewClient(ts.URL)
	require.NoError(t, err)
	return client
}

func addAll(t *testing.T, client *api.Client, names ...string) {
	t.Helper()
	for _, n := range names {
		require.NoError(t, HandleAddTodo(context.Background(), client, &bytes.Buffer{}, strings.Fields(n)))
	}
}

func TestAddAndList(t *testing.T) {
	ctx := context.Background()
	client := startService(t)

	var out bytes.Buffer
	require.NoError(t, HandleAddTodo(ctx, client, &out, []string{"Buy", "milk"}))
	assert.Contains(t, out.String(), "Success Create Todo")

	out.Reset()
	require.NoError(t, HandleList(ctx, client, &out, ListOptions{}))
	assert.Contains(t, out.String(), "Buy milk")
	assert.Contains(t, out.String(), "Unfinish")
	assert.Contains(t, out.String(), "1 of 1 page(s) showing.")
	assert.Contains(t, out.String(), "Status todo item")
}

func TestAddRejectsShortName(t *testing.T) {
	ctx := context.Background()
	client := startService(t)

	err := HandleAddTodo(ctx, client, &bytes.Buffer{}, []string{"x"})
	require.Error(t, err)
	assert.True(t, isValidation(err))
	assert.Equal(t, "Todo Name must be at least 2 characters.", err.Error())

	items, err := client.List(ctx, api.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestListEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, HandleList(context.Background(), startService(t), &out, ListOptions{NoChart: true}))
	assert.Contains(t, out.String(), "No results.")
	assert.Contains(t, out.String(), "1 of 1 page(s) showing.")
}

func TestListPagingAndFilter(t *testing.T) {
	ctx := context.Background()
	client := startService(t)
	addAll(t, client, "task one", "task two", "task three", "task four", "task five", "task six", "other")

	var out bytes.Buffer
	require.NoError(t, HandleList(ctx, client, &out, ListOptions{Page: 2, NoChart: true}))
	assert.Contains(t, out.String(), "2 of 2 page(s) showing.")
	assert.Contains(t, out.String(), "other")

	out.Reset()
	require.NoError(t, HandleList(ctx, client, &out, ListOptions{Filter: "TASK", Page: 9, NoChart: true}))
	assert.Contains(t, out.String(), "2 of 2 page(s) showing.")
	assert.NotContains(t, out.String(), "other")
}

func TestListState(t *testing.T) {
	s, err := ListState(ListOptions{Sort: "desc", Page: 3}, 12)
	require.NoError(t, err)
	assert.Equal(t, tbl.Descending, s.SortOf(tbl.ColumnName))
	assert.Equal(t, 2, s.PageIndex)

	_, err = ListState(ListOptions{Sort: "sideways"}, 0)
	assert.Error(t, err)
}

func TestCompleteShowAndDelete(t *testing.T) {
	ctx := context.Background()
	client := startService(t)
	addAll(t, client, "Walk dog")
	items, err := client.List(ctx, api.ListOptions{})
	require.NoError(t, err)
	id := items[0].ID

	var out bytes.Buffer
	require.NoError(t, HandleComplete(ctx, client, &out, id))
	assert.Contains(t, out.String(), "Success Update Todo")

	out.Reset()
	require.NoError(t, HandleShow(ctx, client, &out, id))
	assert.Contains(t, out.String(), "Finish")
	assert.Contains(t, out.String(), id)

	out.Reset()
	require.NoError(t, HandleDelete(ctx, client, strings.NewReader("n\n"), &out, id, false))
	assert.Contains(t, out.String(), "Operation cancelled.")
	_, err = client.Get(ctx, id)
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, HandleDelete(ctx, client, strings.NewReader("y\n"), &out, id, false))
	assert.Contains(t, out.String(), "Success Delete Todo")
	_, err = client.Get(ctx, id)
	assert.True(t, api.IsNotFound(err))
}

func TestCompleteUnknownReportsFailure(t *testing.T) {
	var out bytes.Buffer
	err := HandleComplete(context.Background(), startService(t), &out, "missing")
	require.Error(t, err)
	assert.True(t, api.IsNotFound(err))
	assert.Contains(t, out.String(), "Uh oh! Something went wrong.")
}

func TestPurgeDoneOnly(t *testing.T) {
	ctx := context.Background()
	client := startService(t)
	addAll(t, client, "keep me", "remove me")
	items, err := client.List(ctx, api.ListOptions{})
	require.NoError(t, err)
	require.NoError(t, client.Complete(ctx, items[1].ID))

	var out bytes.Buffer
	require.NoError(t, HandlePurge(ctx, client, nil, &out, PurgeOptions{DoneOnly: true, SkipConfirm: true}))
	assert.Contains(t, out.String(), "Successfully deleted 1 todo(s)")

	left, err := client.List(ctx, api.ListOptions{})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "keep me", left[0].Name)
}

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := startService(t)
	addAll(t, source, "first thing", "second thing")
	items, err := source.List(ctx, api.ListOptions{})
	require.NoError(t, err)
	require.NoError(t, source.Complete(ctx, items[0].ID))

	for _, format := range []string{"txt", "json"} {
		t.Run(format, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "out", "todos."+format)
			var out bytes.Buffer
			require.NoError(t, HandleExport(ctx, source, &out, file, format))
			assert.Contains(t, out.String(), "Successfully exported 2 todo(s)")

			target := startService(t)
			out.Reset()
			require.NoError(t, HandleImport(ctx, target, &out, file))
			assert.Contains(t, out.String(), "Successfully imported 2 todo(s)")

			imported, err := target.List(ctx, api.ListOptions{})
			require.NoError(t, err)
			require.Len(t, imported, 2)
			byName := map[string]bool{}
			for _, it := range imported {
				byName[it.Name] = it.IsComplete
			}
			assert.Equal(t, map[string]bool{"first thing": true, "second thing": false}, byName)
		})
	}
}

func TestExportUnknownType(t *testing.T) {
	_, err := EncodeExport(nil, "csv")
	assert.Error(t, err)
}

func TestParseTxt(t *testing.T) {
	content := "05.03.2024:\n- [x] Done one\n- [ ] Open one\n\n2024-03-06:\n- plain\nnot a todo\n- [x]   \n"
	assert.Equal(t, []ImportEntry{
		{Name: "Done one", IsComplete: true},
		{Name: "Open one"},
		{Name: "plain"},
	}, ParseTxt(content))
}

func TestImportMissingFile(t *testing.T) {
	err := HandleImport(context.Background(), startService(t), &bytes.Buffer{}, filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseJSONRejectsInvalidExport(t *testing.T) {
	_, err := ParseJSON([]byte(`[{"isComplete": true}]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid export file")

	_, err = ParseJSON([]byte(`{"todoName": "not a list"}`))
	assert.Error(t, err)

	entries, err := ParseJSON([]byte(`[{"_id":"a","todoName":"ok","isComplete":true}]`))
	require.NoError(t, err)
	assert.Equal(t, []ImportEntry{{Name: "ok", IsComplete: true}}, entries)
}
