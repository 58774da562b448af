package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sentinelai/sentinel-cli/internal/client/api"
	"github.com/sentinelai/sentinel-cli/internal/client/models"
	"github.com/sentinelai/sentinel-cli/internal/common"
)

func pendingMatch(id int64) models.Match {
	return models.Match{ID: id, SourceImageID: 3, MatchedURL: "https://pirate.example/p", SimilarityScore: 0.87}
}

func TestMatches_ConfirmRemovesRowAndNavigatesToReports(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t, "confirm 7\nback\n")
	loginApp(t, ta)

	ta.matches.source = &models.Image{ID: 3, ImgAlt: "red sneakers"}
	ta.matches.pending = []models.Match{pendingMatch(5), pendingMatch(7), pendingMatch(9)}
	ta.reports.items = []models.Report{{ID: 11, MatchID: 7, InfringingURL: "https://pirate.example/p", Status: models.ReportPending}}

	require.NoError(t, ta.app.Matches(ctx, []string{"3"}))

	require.Equal(t, []int64{7}, ta.matches.confirmed)
	require.Empty(t, ta.matches.rejected)
	// A confirmed decision navigates to the reports view.
	require.Equal(t, 1, ta.reports.listCalls)
	require.Contains(t, ta.out.String(), "== DMCA reports ==")
}

func TestMatches_RejectStaysOnList(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t, "reject 7\nback\n")
	loginApp(t, ta)

	ta.matches.source = &models.Image{ID: 3}
	ta.matches.pending = []models.Match{pendingMatch(5), pendingMatch(7), pendingMatch(9)}

	require.NoError(t, ta.app.Matches(ctx, []string{"3"}))

	require.Equal(t, []int64{7}, ta.matches.rejected)
	require.Empty(t, ta.matches.confirmed)
	require.Equal(t, 0, ta.reports.listCalls)
	require.Contains(t, ta.out.String(), "Match rejected.")
}

func TestMatches_RejectingLastMatchEndsReview(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t, "reject 7\n")
	loginApp(t, ta)

	ta.matches.source = &models.Image{ID: 3}
	ta.matches.pending = []models.Match{pendingMatch(7)}

	require.NoError(t, ta.app.Matches(ctx, []string{"3"}))

	require.Contains(t, ta.out.String(), "All matches reviewed.")
}

func TestMatches_FailedDecisionKeepsRow(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t, "confirm 7\nlist\nback\n")
	loginApp(t, ta)

	ta.matches.source = &models.Image{ID: 3}
	ta.matches.pending = []models.Match{pendingMatch(7)}
	ta.matches.confirmErr = &api.Error{Status: 500, Detail: "report generation failed"}

	require.NoError(t, ta.app.Matches(ctx, []string{"3"}))

	out := ta.out.String()
	require.Contains(t, out, "report generation failed")
	// The row survives the failure and is printed again by "list".
	require.Contains(t, out, "#7")
	require.Equal(t, 0, ta.reports.listCalls)
}

func TestMatches_ExpiredSessionEvictsCredentials(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t, "")
	loginApp(t, ta)

	ta.matches.source = &models.Image{ID: 3}
	ta.matches.pendingErr = api.ErrUnauthorized

	require.NoError(t, ta.app.Matches(ctx, []string{"3"}))

	require.Contains(t, ta.out.String(), "Session expired.")
	require.False(t, ta.app.session.Active(ctx))
}

func TestMatches_UnknownImage(t *testing.T) {
	ctx := context.Background()
	ta := newTestApp(t, "")
	loginApp(t, ta)

	ta.matches.sourceErr = common.ErrorNotFound

	require.NoError(t, ta.app.Matches(ctx, []string{"42"}))
	require.Contains(t, ta.out.String(), "Image 42 not found.")
}
