package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sentinelai/sentinel-cli/internal/client/models"
	"github.com/sentinelai/sentinel-cli/internal/client/services"
	"github.com/sentinelai/sentinel-cli/internal/client/view"
	"github.com/sentinelai/sentinel-cli/internal/common"
)

// Matches runs the match review flow for one source image: it loads the
// image and its pending matches, then enters an inner loop accepting
// confirm/reject decisions until the list is exhausted or the user backs
// out. A confirmed match navigates to the reports view after a short pause;
// a rejection stays on the list.
func (a *App) Matches(ctx context.Context, args []string) error {
	line := strings.TrimSpace("matches " + strings.Join(args, " "))
	return a.guarded(ctx, line, func(ctx context.Context) error {
		imageID, err := a.matchImageID(args)
		if err != nil {
			fmt.Fprintln(a.out, "Error:", err)
			return nil
		}
		return a.reviewMatches(ctx, imageID)
	})
}

// matchImageID resolves the source image id from the command argument or,
// absent one, an interactive prompt.
func (a *App) matchImageID(args []string) (int64, error) {
	raw := ""
	if len(args) > 0 {
		raw = args[0]
	} else {
		var err error
		raw, err = GetSimpleText(a.reader, "Enter image id", a.out)
		if err != nil {
			return 0, err
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid image id %q", raw)
	}
	return id, nil
}

func (a *App) reviewMatches(ctx context.Context, imageID int64) error {
	img, err := a.matches.SourceImage(ctx, imageID)
	if err != nil {
		if a.session.EvictOn(ctx, err) {
			fmt.Fprintln(a.out, "Session expired. Please sign in again.")
			return nil
		}
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Fprintf(a.out, "Image %d not found.\n", imageID)
			return nil
		}
		fmt.Fprintln(a.out, "Error:", err)
		return nil
	}

	fmt.Fprintf(a.out, "== Matches for #%d %s ==\n", img.ID, img.Caption())

	res := view.LoadList(ctx, func(ctx context.Context) ([]models.Match, error) {
		return a.matches.Pending(ctx, imageID)
	})
	if res.Unauthorized {
		a.evict(ctx)
		return nil
	}
	switch res.State {
	case view.StateFailed:
		fmt.Fprintln(a.out, "Error:", res.Message)
		return nil
	case view.StateEmpty:
		fmt.Fprintln(a.out, "No pending matches for this image.")
		return nil
	}

	pending := res.Items
	a.printMatches(pending)

	for len(pending) > 0 {
		line, err := GetSimpleText(a.reader, "confirm <id> | reject <id> | list | back", a.out)
		if err != nil {
			return err
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "back":
			return nil
		case "list":
			a.printMatches(pending)
			continue
		case "confirm", "reject":
			if len(parts) < 2 {
				fmt.Fprintln(a.out, "Usage:", parts[0], "<id>")
				continue
			}
			matchID, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				fmt.Fprintf(a.out, "Invalid match id %q\n", parts[1])
				continue
			}

			confirmed := parts[0] == "confirm"
			if err := a.decide(ctx, matchID, confirmed); err != nil {
				if a.session.EvictOn(ctx, err) {
					fmt.Fprintln(a.out, "Session expired. Please sign in again.")
					return nil
				}
				// The item stays in the list so the decision can be retried.
				fmt.Fprintln(a.out, "Error:", err)
				continue
			}

			// The decision reached the server: drop the row locally instead
			// of refetching the whole list.
			pending = services.ApplyConfirmation(pending, matchID)

			if confirmed {
				fmt.Fprintln(a.out, "Match confirmed. A DMCA report is being generated.")
				time.Sleep(a.navDelay)
				return a.Reports(ctx)
			}
			fmt.Fprintln(a.out, "Match rejected.")
		default:
			fmt.Fprintln(a.out, "Unknown command:", parts[0])
		}
	}

	fmt.Fprintln(a.out, "All matches reviewed.")
	return nil
}

func (a *App) decide(ctx context.Context, matchID int64, confirmed bool) error {
	if confirmed {
		return a.matches.Confirm(ctx, matchID)
	}
	return a.matches.Reject(ctx, matchID)
}

func (a *App) printMatches(list []models.Match) {
	for _, m := range list {
		fmt.Fprintf(a.out, "  #%d  %s  similarity %s\n", m.ID, m.MatchedURL, m.SimilarityPercent())
	}
}
