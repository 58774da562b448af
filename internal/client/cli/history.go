package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sentinelai/sentinel-cli/internal/client/models"
	"github.com/sentinelai/sentinel-cli/internal/client/services"
	"github.com/sentinelai/sentinel-cli/internal/client/view"
)

// History lists already reviewed matches. An optional argument narrows the
// list to one outcome: "confirmed" or "rejected".
func (a *App) History(ctx context.Context, args []string) error {
	line := strings.TrimSpace("history " + strings.Join(args, " "))
	return a.guarded(ctx, line, func(ctx context.Context) error {
		fmt.Fprintln(a.out, "== Review history ==")

		res := view.LoadList(ctx, a.matches.History)
		if res.State == view.StateReady && len(args) > 0 {
			switch args[0] {
			case "confirmed":
				res.Items = services.FilterByOutcome(res.Items, models.OutcomeConfirmed)
			case "rejected":
				res.Items = services.FilterByOutcome(res.Items, models.OutcomeRejected)
			default:
				fmt.Fprintf(a.out, "Unknown filter %q, showing everything.\n", args[0])
			}
			if len(res.Items) == 0 {
				res.State = view.StateEmpty
			}
		}

		renderList(ctx, a, res, "No reviewed matches yet.", func(m models.Match) string {
			reviewed := ""
			if m.ReviewedAt != nil {
				reviewed = "  " + m.ReviewedAt.Format(time.DateOnly)
			}
			return fmt.Sprintf("  #%d  %s  %s  similarity %s%s",
				m.ID, m.Outcome(), m.MatchedURL, m.SimilarityPercent(), reviewed)
		})
		return nil
	})
}
