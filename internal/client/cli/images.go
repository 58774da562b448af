package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/sentinelai/sentinel-cli/internal/client/models"
	"github.com/sentinelai/sentinel-cli/internal/client/view"
)

func (a *App) Images(ctx context.Context) error {
	return a.guarded(ctx, "images", func(ctx context.Context) error {
		res := view.LoadList(ctx, a.images.List)
		renderList(ctx, a, res, "No uploads yet. Use 'upload' to protect your first image.", func(img models.Image) string {
			return fmt.Sprintf("  #%d  %s  [%s]  %s", img.ID, img.Caption(), img.Status, img.CreatedAt.Format(time.DateOnly))
		})
		return nil
	})
}

// Upload sends an image to the server and runs the detection pipeline on
// it. The pipeline is synchronous and can take a couple of minutes.
func (a *App) Upload(ctx context.Context) error {
	return a.guarded(ctx, "upload", func(ctx context.Context) error {
		path, err := GetSimpleText(a.reader, "Path of the image file", a.out)
		if err != nil {
			return err
		}
		keyword, err := GetSimpleText(a.reader, "Search keyword (what to look for)", a.out)
		if err != nil {
			return err
		}

		fmt.Fprintln(a.out, "Running the detection pipeline, this can take a couple of minutes...")
		result, err := a.images.Upload(ctx, keyword, path)
		if err != nil {
			if a.session.EvictOn(ctx, err) {
				fmt.Fprintln(a.out, "Session expired. Please sign in again.")
				return nil
			}
			fmt.Fprintln(a.out, "Upload failed:", err)
			return nil
		}

		fmt.Fprintf(a.out, "Pipeline finished: %d match(es) found for image #%d.\n",
			result.MatchCount, result.ImageID)
		if result.MatchCount > 0 {
			fmt.Fprintf(a.out, "Review them with: matches %d\n", result.ImageID)
		}
		return nil
	})
}
