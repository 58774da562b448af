package services

import (
	"context"
	"fmt"

	"github.com/sentinelai/sentinel-cli/internal/client/api"
	"github.com/sentinelai/sentinel-cli/internal/client/models"
	"github.com/sentinelai/sentinel-cli/internal/common"
)

// MatchService loads pending match candidates for a source image and
// dispatches the confirm/reject decision. The local list update after a
// successful mutation is the pure ApplyConfirmation, kept separate so it is
// testable without the network.
type MatchService interface {
	// SourceImage resolves one image out of the user's full image list.
	SourceImage(ctx context.Context, imageID int64) (*models.Image, error)
	Pending(ctx context.Context, imageID int64) ([]models.Match, error)
	Confirm(ctx context.Context, matchID int64) error
	Reject(ctx context.Context, matchID int64) error
	History(ctx context.Context) ([]models.Match, error)
}

type matchService struct {
	client api.Client
}

func NewMatchService(client api.Client) MatchService {
	return &matchService{client: client}
}

func (s *matchService) SourceImage(ctx context.Context, imageID int64) (*models.Image, error) {
	images, err := s.client.MyImages(ctx)
	if err != nil {
		return nil, err
	}
	for i := range images {
		if images[i].ID == imageID {
			return &images[i], nil
		}
	}
	return nil, fmt.Errorf("image %d: %w", imageID, common.ErrorNotFound)
}

func (s *matchService) Pending(ctx context.Context, imageID int64) ([]models.Match, error) {
	matches, err := s.client.Matches(ctx, imageID)
	if err != nil {
		return nil, err
	}
	// The endpoint serves pending candidates, but filter defensively: a
	// reviewed match must never reappear on the confirmation page.
	pending := matches[:0]
	for _, m := range matches {
		if m.Outcome() == models.OutcomePending {
			pending = append(pending, m)
		}
	}
	return pending, nil
}

// Confirm marks the match as a verified infringement. Server-side this
// triggers metadata scraping and DMCA report generation before returning.
func (s *matchService) Confirm(ctx context.Context, matchID int64) error {
	return s.client.ConfirmMatch(ctx, matchID, true)
}

func (s *matchService) Reject(ctx context.Context, matchID int64) error {
	return s.client.ConfirmMatch(ctx, matchID, false)
}

func (s *matchService) History(ctx context.Context) ([]models.Match, error) {
	return s.client.MatchHistory(ctx)
}

// ApplyConfirmation returns list without the match whose ID equals id.
// Exactly one entry is removed when present; all others keep their order.
// It is only called after the server acknowledged the mutation: the list is
// updated locally instead of refetched.
func ApplyConfirmation(list []models.Match, id int64) []models.Match {
	out := make([]models.Match, 0, len(list))
	removed := false
	for _, m := range list {
		if !removed && m.ID == id {
			removed = true
			continue
		}
		out = append(out, m)
	}
	return out
}

// FilterByOutcome keeps only matches with the given review outcome. Used by
// the review-history page.
func FilterByOutcome(list []models.Match, outcome models.MatchOutcome) []models.Match {
	out := make([]models.Match, 0, len(list))
	for _, m := range list {
		if m.Outcome() == outcome {
			out = append(out, m)
		}
	}
	return out
}
