package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sentinelai/sentinel-cli/internal/client/models"
	"github.com/sentinelai/sentinel-cli/internal/client/view"
)

// Reports lists the generated DMCA reports and accepts download/email
// actions on them.
func (a *App) Reports(ctx context.Context) error {
	return a.guarded(ctx, "reports", func(ctx context.Context) error {
		fmt.Fprintln(a.out, "== DMCA reports ==")

		res := view.LoadList(ctx, a.reports.List)
		ok := renderList(ctx, a, res, "No reports yet. Confirm a match to generate one.", func(r models.Report) string {
			return fmt.Sprintf("  #%d  %s  [%s]  %s", r.ID, r.InfringingURL, r.Status, r.CreatedAt.Format(time.DateOnly))
		})
		if !ok {
			return nil
		}

		for {
			line, err := GetSimpleText(a.reader, "download <id> | email <id> | back", a.out)
			if err != nil {
				return err
			}
			parts := strings.Fields(line)
			if len(parts) == 0 {
				continue
			}
			if parts[0] == "back" {
				return nil
			}
			if len(parts) < 2 {
				fmt.Fprintln(a.out, "Usage:", parts[0], "<id>")
				continue
			}
			id, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				fmt.Fprintf(a.out, "Invalid report id %q\n", parts[1])
				continue
			}

			switch parts[0] {
			case "download":
				path, err := a.reports.Download(ctx, id)
				if err != nil {
					if a.session.EvictOn(ctx, err) {
						fmt.Fprintln(a.out, "Session expired. Please sign in again.")
						return nil
					}
					fmt.Fprintln(a.out, "Download failed:", err)
					continue
				}
				fmt.Fprintln(a.out, "Saved to", path)
			case "email":
				if err := a.reports.SendEmail(ctx, id); err != nil {
					if a.session.EvictOn(ctx, err) {
						fmt.Fprintln(a.out, "Session expired. Please sign in again.")
						return nil
					}
					fmt.Fprintln(a.out, "Sending failed:", err)
					continue
				}
				fmt.Fprintln(a.out, "Report sent by email.")
			default:
				fmt.Fprintln(a.out, "Unknown command:", parts[0])
			}
		}
	})
}
