package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/openconf/reviewcycle/internal/models"
)

const (
	bidsEndpoint             = "/bids"
	assignedArticlesEndpoint = "/assignedArticles"
	reviewsEndpoint          = "/reviews"
	articlesEndpoint         = "/articles"
)

// BidRecord is the wire shape of one stored bid. Choice is the backend's
// string enum and may be absent or carry legacy values; decoding it into a
// models.Choice is the bidding package's job.
type BidRecord struct {
	Article int64   `json:"article"`
	Choice  *string `json:"choice,omitempty"`
}

// SaveBidRequest is the wire shape of a bid write.
type SaveBidRequest struct {
	Reviewer int64  `json:"reviewer"`
	Article  int64  `json:"article"`
	Value    string `json:"value"`
}

type assignedArticleRecord struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type publishedReviewRecord struct {
	Published bool `json:"published"`
}

// ConferenceClient is the typed surface of the conference server consumed by
// the lifecycle engines.
type ConferenceClient struct {
	base *BaseClient
}

func NewConferenceClient(baseURL string) *ConferenceClient {
	base := NewBaseClient(baseURL)
	base.SetHeader("Content-Type", "application/json")
	base.SetHeader("Accept", "application/json")
	return &ConferenceClient{base: base}
}

// FetchBids returns every stored bid of a reviewer.
func (c *ConferenceClient) FetchBids(ctx context.Context, reviewerID int64) ([]BidRecord, error) {
	body, err := c.base.Get(ctx, fmt.Sprintf("%s?reviewer=%d", bidsEndpoint, reviewerID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bids: %w", err)
	}

	var bids []BidRecord
	if err := json.Unmarshal(body, &bids); err != nil {
		return nil, fmt.Errorf("failed to parse bids response: %w", err)
	}
	return bids, nil
}

// SaveBid creates or overwrites the bid for (reviewer, article).
func (c *ConferenceClient) SaveBid(ctx context.Context, req SaveBidRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal bid: %w", err)
	}

	if _, err := c.base.Post(ctx, bidsEndpoint, bytes.NewReader(payload)); err != nil {
		return fmt.Errorf("failed to save bid: %w", err)
	}
	return nil
}

// FetchAssignedArticles returns the articles assigned to a reviewer.
func (c *ConferenceClient) FetchAssignedArticles(ctx context.Context, reviewerID int64) ([]models.AssignedArticle, error) {
	body, err := c.base.Get(ctx, fmt.Sprintf("%s?reviewer=%d", assignedArticlesEndpoint, reviewerID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch assigned articles: %w", err)
	}

	var records []assignedArticleRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("failed to parse assigned articles response: %w", err)
	}

	articles := make([]models.AssignedArticle, len(records))
	for i, r := range records {
		articles[i] = models.AssignedArticle{ArticleID: r.ID, Title: r.Title}
	}
	return articles, nil
}

// HasPublishedReview reports whether any published review exists for the
// article.
func (c *ConferenceClient) HasPublishedReview(ctx context.Context, articleID int64) (bool, error) {
	body, err := c.base.Get(ctx, fmt.Sprintf("%s/%d/hasPublishedReview", articlesEndpoint, articleID))
	if err != nil {
		return false, fmt.Errorf("failed to check published review: %w", err)
	}

	var record publishedReviewRecord
	if err := json.Unmarshal(body, &record); err != nil {
		return false, fmt.Errorf("failed to parse published review response: %w", err)
	}
	return record.Published, nil
}

// FetchOwnReview returns the reviewer's review of the article, or nil when
// none exists yet. The server answers null for a missing review.
func (c *ConferenceClient) FetchOwnReview(ctx context.Context, articleID, reviewerID int64) (*models.Review, error) {
	body, err := c.base.Get(ctx, fmt.Sprintf("%s?article=%d&reviewer=%d", reviewsEndpoint, articleID, reviewerID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch own review: %w", err)
	}

	var review *models.Review
	if err := json.Unmarshal(body, &review); err != nil {
		return nil, fmt.Errorf("failed to parse review response: %w", err)
	}
	return review, nil
}

// FetchReviewVersions returns the review's version snapshots ascending by
// version number. The server already orders them, but a defensive sort keeps
// the history reconstruction correct either way.
func (c *ConferenceClient) FetchReviewVersions(ctx context.Context, reviewID int64) ([]models.ReviewVersion, error) {
	body, err := c.base.Get(ctx, fmt.Sprintf("%s/%d/versions", reviewsEndpoint, reviewID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch review versions: %w", err)
	}

	var versions []models.ReviewVersion
	if err := json.Unmarshal(body, &versions); err != nil {
		return nil, fmt.Errorf("failed to parse review versions response: %w", err)
	}

	sort.Slice(versions, func(i, j int) bool {
		return versions[i].VersionNumber < versions[j].VersionNumber
	})
	return versions, nil
}
