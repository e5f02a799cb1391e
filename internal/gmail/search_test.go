package gmail

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// newTestSearchServer serves the list and per-message endpoints for a
// fixed set of message IDs. Per-message responses are delayed so that
// later-listed messages answer first, which exposes any ordering bug in
// the concurrent detail fetch. failID, when non-empty, answers 500.
func newTestSearchServer(t *testing.T, ids []string, failID string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/messages"):
			var refs []*gmail.Message
			for _, id := range ids {
				refs = append(refs, &gmail.Message{Id: id, ThreadId: "thread-" + id})
			}
			writeJSON(t, w, &gmail.ListMessagesResponse{Messages: refs})

		case strings.Contains(r.URL.Path, "/messages/"):
			id := r.URL.Path[strings.LastIndex(r.URL.Path, "/")+1:]
			if id == failID {
				http.Error(w, "backend exploded", http.StatusInternalServerError)
				return
			}

			// Later-listed messages respond sooner.
			for i, listed := range ids {
				if listed == id {
					time.Sleep(time.Duration(len(ids)-i) * time.Millisecond)
				}
			}

			writeJSON(t, w, &gmail.Message{
				Id:       id,
				ThreadId: "thread-" + id,
				Snippet:  "snippet-" + id,
				Payload: &gmail.MessagePart{
					Headers: []*gmail.MessagePartHeader{
						{Name: "From", Value: "sender@example.com"},
						{Name: "Subject", Value: "subject-" + id},
					},
				},
			})

		default:
			http.Error(w, "unexpected path: "+r.URL.Path, http.StatusNotFound)
		}
	}))
}

func writeJSON(t *testing.T, w http.ResponseWriter, v interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func newTestClient(t *testing.T, ts *httptest.Server) *Client {
	t.Helper()

	svc, err := gmail.NewService(context.Background(),
		option.WithEndpoint(ts.URL),
		option.WithHTTPClient(ts.Client()),
	)
	require.NoError(t, err)

	return &Client{svc: svc.Users, account: "test"}
}

func TestSearchPreservesListingOrder(t *testing.T) {
	var ids []string
	for i := 1; i <= 12; i++ {
		ids = append(ids, fmt.Sprintf("m%02d", i))
	}

	ts := newTestSearchServer(t, ids, "")
	defer ts.Close()

	client := newTestClient(t, ts)

	summaries, err := client.Search(context.Background(), "is:unread", int64(len(ids)))
	require.NoError(t, err)
	require.Len(t, summaries, len(ids))

	for i, id := range ids {
		assert.Equal(t, id, summaries[i].ID)
		assert.Equal(t, "thread-"+id, summaries[i].ThreadID)
		assert.Equal(t, "subject-"+id, summaries[i].Subject)
		assert.Equal(t, "snippet-"+id, summaries[i].Snippet)
	}
}

func TestSearchPropagatesFetchError(t *testing.T) {
	ts := newTestSearchServer(t, []string{"m01", "m02", "m03"}, "m02")
	defer ts.Close()

	client := newTestClient(t, ts)

	_, err := client.Search(context.Background(), "is:unread", 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch message m02")
}

func TestSearchClampsMaxResults(t *testing.T) {
	var gotMaxResults string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMaxResults = r.URL.Query().Get("maxResults")
		writeJSON(t, w, &gmail.ListMessagesResponse{})
	}))
	defer ts.Close()

	client := newTestClient(t, ts)

	summaries, err := client.Search(context.Background(), "anything", 500)
	require.NoError(t, err)
	assert.Empty(t, summaries)
	assert.Equal(t, strconv.Itoa(MaxSearchResults), gotMaxResults)
}
