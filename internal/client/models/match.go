package models

import (
	"fmt"
	"time"
)

// MatchOutcome is the resolved review state of a match candidate.
type MatchOutcome string

const (
	OutcomePending   MatchOutcome = "pending"
	OutcomeConfirmed MatchOutcome = "confirmed"
	OutcomeRejected  MatchOutcome = "rejected"
)

// Match is a detected similarity candidate between one of the user's images
// and an external asset. UserConfirmed is tri-state: nil while the match is
// pending review, then fixed to true (confirmed) or false (rejected) by a
// single explicit user action.
type Match struct {
	ID              int64      `json:"id"`
	SourceImageID   int64      `json:"source_image_id"`
	MatchedAssetID  int64      `json:"matched_asset_id,omitempty"`
	MatchedURL      string     `json:"matched_url,omitempty"`
	ThumbnailURL    string     `json:"thumbnail_url,omitempty"`
	SimilarityScore float64    `json:"similarity_score"`
	UserConfirmed   *bool      `json:"user_confirmed"`
	Status          string     `json:"status,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Outcome maps the tri-state confirmation flag to a named review outcome.
func (m *Match) Outcome() MatchOutcome {
	switch {
	case m.UserConfirmed == nil:
		return OutcomePending
	case *m.UserConfirmed:
		return OutcomeConfirmed
	default:
		return OutcomeRejected
	}
}

// SimilarityPercent renders the [0,1] similarity score as a percentage,
// e.g. "97.3%".
func (m *Match) SimilarityPercent() string {
	return fmt.Sprintf("%.1f%%", m.SimilarityScore*100)
}
