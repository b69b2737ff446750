package notion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoward/notionbridge/internal/model"
)

func pageJSON(id, name string) string {
	return fmt.Sprintf(`{
		"object": "page",
		"id": %q,
		"url": "https://www.notion.so/%s",
		"properties": {"Item": {"type":"title","title":[{"plain_text":%q}]}}
	}`, id, id, name)
}

func TestQueryDatabaseSendsAuthAndClampsPageSize(t *testing.T) {
	var gotPath, gotAuth, gotVersion string
	var gotBody Query

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotVersion = r.Header.Get("Notion-Version")

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &gotBody))

		fmt.Fprintf(w, `{"object":"list","results":[%s],"has_more":false,"next_cursor":null}`, pageJSON("abc-1", "Bolt"))
	}))
	defer server.Close()

	client := NewClient("secret-token", WithBaseURL(server.URL))

	result, err := client.QueryDatabase(context.Background(), "db-1", Query{PageSize: 500})
	require.NoError(t, err)

	assert.Equal(t, "/databases/db-1/query", gotPath)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, apiVersion, gotVersion)
	assert.Equal(t, MaxPageSize, gotBody.PageSize)

	require.Len(t, result.Results, 1)
	assert.Equal(t, "abc-1", result.Results[0].ID)
	assert.False(t, result.HasMore)
	assert.Nil(t, result.NextCursor)
}

func TestQueryDatabaseForwardsRemoteErrorVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"object":"error","status":400,"code":"validation_error","message":"body failed validation: filter is malformed"}`)
	}))
	defer server.Close()

	client := NewClient("secret-token", WithBaseURL(server.URL))

	_, err := client.QueryDatabase(context.Background(), "db-1", Query{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "validation_error", apiErr.Code)
	assert.Equal(t, "body failed validation: filter is malformed", err.Error())
}

func TestQueryAllAdvancesCursorUntilExhausted(t *testing.T) {
	var cursors []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var q Query
		require.NoError(t, json.Unmarshal(body, &q))
		cursors = append(cursors, q.StartCursor)

		round := len(cursors)
		if round < 3 {
			fmt.Fprintf(w, `{"object":"list","results":[%s],"has_more":true,"next_cursor":"cursor-%d"}`,
				pageJSON(fmt.Sprintf("page-%d", round), "Bolt"), round)
			return
		}
		fmt.Fprintf(w, `{"object":"list","results":[%s],"has_more":false,"next_cursor":null}`,
			pageJSON("page-3", "Bolt"))
	}))
	defer server.Close()

	client := NewClient("secret-token", WithBaseURL(server.URL))

	pages, rounds, err := client.QueryAll(context.Background(), "db-1", nil, 10, DefaultMaxRounds)
	require.NoError(t, err)

	assert.Equal(t, 3, rounds)
	assert.Len(t, pages, 3)
	assert.Equal(t, []string{"", "cursor-1", "cursor-2"}, cursors)
}

func TestQueryAllStopsAtRoundCap(t *testing.T) {
	requests := 0

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprintf(w, `{"object":"list","results":[%s],"has_more":true,"next_cursor":"cursor-%d"}`,
			pageJSON(fmt.Sprintf("page-%d", requests), "Bolt"), requests)
	}))
	defer server.Close()

	client := NewClient("secret-token", WithBaseURL(server.URL))

	// The remote claims more data every round; truncation is silent.
	pages, rounds, err := client.QueryAll(context.Background(), "db-1", nil, 1, DefaultMaxRounds)
	require.NoError(t, err)

	assert.Equal(t, DefaultMaxRounds, rounds)
	assert.Equal(t, DefaultMaxRounds, requests)
	assert.Len(t, pages, DefaultMaxRounds)
}

func TestQueryAllForwardsFilter(t *testing.T) {
	var gotFilter json.RawMessage

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var q Query
		require.NoError(t, json.Unmarshal(body, &q))
		gotFilter = q.Filter

		fmt.Fprint(w, `{"object":"list","results":[],"has_more":false,"next_cursor":null}`)
	}))
	defer server.Close()

	client := NewClient("secret-token", WithBaseURL(server.URL))

	filter := json.RawMessage(`{"property":"Category","multi_select":{"contains":"Semi-consumable"}}`)
	_, _, err := client.QueryAll(context.Background(), "db-1", filter, 100, 0)
	require.NoError(t, err)

	assert.JSONEq(t, string(filter), string(gotFilter))
}

func TestRetrievePageRawReturnsWirePayload(t *testing.T) {
	payload := `{"object":"page","id":"abc-1","archived":true,"custom":{"nested":1}}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pages/abc-1", r.URL.Path)
		fmt.Fprint(w, payload)
	}))
	defer server.Close()

	client := NewClient("secret-token", WithBaseURL(server.URL))

	raw, err := client.RetrievePageRaw(context.Background(), "abc-1")
	require.NoError(t, err)
	assert.JSONEq(t, payload, string(raw))
}

func TestListBlockChildren(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/blocks/abc-1/children", r.URL.Path)
		fmt.Fprint(w, `{"results":[
			{"id":"b1","type":"paragraph","paragraph":{"rich_text":[{"plain_text":"hello"}]}},
			{"id":"b2","type":"image","image":{"file":{"url":"x"}}}
		],"has_more":false,"next_cursor":null}`)
	}))
	defer server.Close()

	client := NewClient("secret-token", WithBaseURL(server.URL))

	list, err := client.ListBlockChildren(context.Background(), "abc-1")
	require.NoError(t, err)
	require.Len(t, list.Results, 2)
	assert.Equal(t, "paragraph", list.Results[0].Type)
	assert.Equal(t, "hello", model.PlainText(list.Results[0].RichTextRuns()))
}

func TestSearchDatabases(t *testing.T) {
	var gotBody string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		gotBody = string(body)
		fmt.Fprint(w, `{"results":[{"object":"database","id":"db-1"},{"object":"database","id":"db-2"}]}`)
	}))
	defer server.Close()

	client := NewClient("secret-token", WithBaseURL(server.URL))

	results, err := client.SearchDatabases(context.Background())
	require.NoError(t, err)

	assert.JSONEq(t, `{"filter":{"property":"object","value":"database"}}`, gotBody)
	require.Len(t, results, 2)
	assert.JSONEq(t, `{"object":"database","id":"db-1"}`, string(results[0]))
}

func TestRetrieveDatabase(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/databases/db-1", r.URL.Path)
		fmt.Fprint(w, `{
			"id": "db-1",
			"title": [{"text":{"content":"Inventory"},"plain_text":"Inventory"}],
			"properties": {"Item":{"id":"t1","name":"Item","type":"title"}}
		}`)
	}))
	defer server.Close()

	client := NewClient("secret-token", WithBaseURL(server.URL))

	db, err := client.RetrieveDatabase(context.Background(), "db-1")
	require.NoError(t, err)
	assert.Equal(t, "Inventory", db.Name())
	assert.Equal(t, map[string]string{"Item": "title"}, db.PropertyTypes())
}
