package clients

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchBids(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/bids", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("reviewer"))
		w.Write([]byte(`[{"article":42,"choice":"interested"},{"article":7}]`))
	}))
	defer server.Close()

	client := NewConferenceClient(server.URL)
	bids, err := client.FetchBids(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, bids, 2)
	assert.Equal(t, int64(42), bids[0].Article)
	require.NotNil(t, bids[0].Choice)
	assert.Equal(t, "interested", *bids[0].Choice)
	assert.Nil(t, bids[1].Choice, "a bid without a choice stays nil for the codec to default")
}

func TestSaveBid(t *testing.T) {
	var body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/bids", r.URL.Path)
		buf, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		body = string(buf)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewConferenceClient(server.URL)
	err := client.SaveBid(context.Background(), SaveBidRequest{Reviewer: 3, Article: 42, Value: "maybe"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"reviewer":3,"article":42,"value":"maybe"}`, body)
}

func TestSaveBidServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewConferenceClient(server.URL)
	err := client.SaveBid(context.Background(), SaveBidRequest{Reviewer: 3, Article: 42, Value: "maybe"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestFetchAssignedArticles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/assignedArticles", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("reviewer"))
		w.Write([]byte(`[{"id":7,"title":"On Generics"}]`))
	}))
	defer server.Close()

	client := NewConferenceClient(server.URL)
	articles, err := client.FetchAssignedArticles(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, int64(7), articles[0].ArticleID)
	assert.Equal(t, "On Generics", articles[0].Title)
	assert.False(t, articles[0].Reviewed)
}

func TestHasPublishedReview(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/articles/7/hasPublishedReview", r.URL.Path)
		w.Write([]byte(`{"published":true}`))
	}))
	defer server.Close()

	client := NewConferenceClient(server.URL)
	published, err := client.HasPublishedReview(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, published)
}

func TestFetchOwnReview(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reviews", r.URL.Path)
		assert.Equal(t, "7", r.URL.Query().Get("article"))
		assert.Equal(t, "3", r.URL.Query().Get("reviewer"))
		w.Write([]byte(`{"id":11,"article_id":7,"reviewer_id":3,"score":2,"is_published":false,"is_edited":true}`))
	}))
	defer server.Close()

	client := NewConferenceClient(server.URL)
	review, err := client.FetchOwnReview(context.Background(), 7, 3)
	require.NoError(t, err)
	require.NotNil(t, review)
	assert.Equal(t, int64(11), review.ID)
	assert.Equal(t, 2, review.Score)
	assert.True(t, review.IsEdited)
}

func TestFetchOwnReviewNull(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}))
	defer server.Close()

	client := NewConferenceClient(server.URL)
	review, err := client.FetchOwnReview(context.Background(), 7, 3)
	require.NoError(t, err)
	assert.Nil(t, review)
}

func TestFetchReviewVersionsSorts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reviews/11/versions", r.URL.Path)
		w.Write([]byte(`[
			{"version_number":2,"created_at":"2025-01-14T10:00:00Z","score":2,"opinion":"accept"},
			{"version_number":1,"created_at":"2025-01-13T09:00:00Z","score":-1,"opinion":"weak"}
		]`))
	}))
	defer server.Close()

	client := NewConferenceClient(server.URL)
	versions, err := client.FetchReviewVersions(context.Background(), 11)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 1, versions[0].VersionNumber)
	assert.Equal(t, 2, versions[1].VersionNumber)
}
