package history

import (
	"time"

	"github.com/openconf/reviewcycle/internal/models"
)

// CoarseHistory is the reviewer-facing edit history of a review: when it was
// first sent, when it was edited, and its authoritative current content.
// Interim scores and opinions are intentionally not exposed.
type CoarseHistory struct {
	SentAt time.Time            `json:"sent_at"`
	Edits  []time.Time          `json:"edits"`
	Latest models.ReviewVersion `json:"latest"`
}

// FieldChange is the before/after of one field between consecutive versions.
// Changed=false marks the field explicitly unchanged; Before/After are then
// equal and still populated.
type FieldChange[T comparable] struct {
	Changed bool `json:"changed"`
	Before  T    `json:"before"`
	After   T    `json:"after"`
}

// VersionDiff compares one version against its predecessor.
type VersionDiff struct {
	FromVersion int                 `json:"from_version"`
	ToVersion   int                 `json:"to_version"`
	At          time.Time           `json:"at"`
	Score       FieldChange[int]    `json:"score"`
	Opinion     FieldChange[string] `json:"opinion"`
}

// Reconstruct builds the coarse history from a version list ascending by
// version number. It returns nil when there are no versions: a review that
// was never saved has no history.
func Reconstruct(versions []models.ReviewVersion) *CoarseHistory {
	if len(versions) == 0 {
		return nil
	}

	last := versions[len(versions)-1]
	h := &CoarseHistory{
		SentAt: versions[0].CreatedAt,
		Latest: last,
	}
	for _, v := range versions[:len(versions)-1] {
		h.Edits = append(h.Edits, v.CreatedAt)
	}
	return h
}

// Diff computes the pairwise change view over consecutive versions. Nil
// opinions compare as empty strings. With fewer than two versions there is
// nothing to compare and the result is empty.
func Diff(versions []models.ReviewVersion) []VersionDiff {
	if len(versions) < 2 {
		return nil
	}

	diffs := make([]VersionDiff, 0, len(versions)-1)
	for i := 1; i < len(versions); i++ {
		prev, cur := versions[i-1], versions[i]
		prevOpinion := opinionText(prev.Opinion)
		curOpinion := opinionText(cur.Opinion)

		diffs = append(diffs, VersionDiff{
			FromVersion: prev.VersionNumber,
			ToVersion:   cur.VersionNumber,
			At:          cur.CreatedAt,
			Score: FieldChange[int]{
				Changed: prev.Score != cur.Score,
				Before:  prev.Score,
				After:   cur.Score,
			},
			Opinion: FieldChange[string]{
				Changed: prevOpinion != curOpinion,
				Before:  prevOpinion,
				After:   curOpinion,
			},
		})
	}
	return diffs
}

func opinionText(opinion *string) string {
	if opinion == nil {
		return ""
	}
	return *opinion
}
