package models

import "time"

// ReviewStatus defines the reviewer-facing state of an article's review.
type ReviewStatus string

const (
	ReviewStatusPending   ReviewStatus = "PENDING"
	ReviewStatusDraft     ReviewStatus = "DRAFT"
	ReviewStatusCompleted ReviewStatus = "COMPLETED"
)

// Review is a reviewer's review of one article. IsPublished is monotonic:
// once true it never reverts.
type Review struct {
	ID          int64   `json:"id"`
	ArticleID   int64   `json:"article_id"`
	ReviewerID  int64   `json:"reviewer_id"`
	Opinion     *string `json:"opinion,omitempty"`
	Score       int     `json:"score"`
	IsPublished bool    `json:"is_published"`
	IsEdited    bool    `json:"is_edited"`
}

// ReviewVersion is one immutable snapshot in a review's append-only version
// sequence. The highest version number is authoritative for current content.
type ReviewVersion struct {
	VersionNumber int       `json:"version_number"`
	CreatedAt     time.Time `json:"created_at"`
	Score         int       `json:"score"`
	Opinion       *string   `json:"opinion,omitempty"`
}
