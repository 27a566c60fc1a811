package models

// Choice defines a reviewer's declared interest in reviewing an article.
// Exactly one choice exists per (reviewer, article) pair; absence of a bid is
// equivalent to ChoiceNoSelection.
type Choice string

const (
	ChoiceInterested    Choice = "INTERESTED"
	ChoiceMaybe         Choice = "MAYBE"
	ChoiceNotInterested Choice = "NOT_INTERESTED"
	ChoiceNoSelection   Choice = "NO_SELECTION"
)

// Bid represents a reviewer's interest selection for one article.
type Bid struct {
	ReviewerID int64  `json:"reviewer_id"`
	ArticleID  int64  `json:"article_id"`
	Choice     Choice `json:"choice"`
}

// AssignedArticle is an article assigned to a reviewer for the review phase.
// Reviewed is derived from review state, not stored.
type AssignedArticle struct {
	ArticleID int64  `json:"article_id"`
	Title     string `json:"title"`
	Reviewed  bool   `json:"reviewed"`
}

// ReviewerContext carries the identity every engine call acts on behalf of.
// It is passed explicitly so no package holds a reviewer id as global state.
type ReviewerContext struct {
	ReviewerID int64
}
