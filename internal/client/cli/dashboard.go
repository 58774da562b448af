package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sentinelai/sentinel-cli/internal/client/api"
	"github.com/sentinelai/sentinel-cli/internal/client/models"
	"github.com/sentinelai/sentinel-cli/internal/client/view"
)

// latestUploadsCount bounds the overview's recent-uploads section.
const latestUploadsCount = 5

// Dashboard renders one of the dashboard sub-views. The sub-view comes from
// the command argument alone; an unknown or missing argument falls back to
// the overview.
func (a *App) Dashboard(ctx context.Context, args []string) error {
	line := strings.TrimSpace("dashboard " + strings.Join(args, " "))
	return a.guarded(ctx, line, func(ctx context.Context) error {
		v := view.ViewOverview
		if len(args) > 0 {
			v = view.ParseDashboardView(args[0])
		}
		return a.renderDashboard(ctx, v)
	})
}

func (a *App) renderDashboard(ctx context.Context, v view.DashboardView) error {
	switch v {
	case view.ViewChangePassword:
		return a.renderChangePassword(ctx)
	case view.ViewProfile:
		return a.renderProfile(ctx)
	case view.ViewEditProfile:
		return a.renderEditProfile(ctx)
	default:
		return a.renderOverview(ctx)
	}
}

func (a *App) renderOverview(ctx context.Context) error {
	fmt.Fprintln(a.out, "== Dashboard ==")

	res := view.LoadList(ctx, func(ctx context.Context) ([]models.Image, error) {
		return a.images.Latest(ctx, latestUploadsCount)
	})
	if res.Unauthorized {
		a.evict(ctx)
		return nil
	}
	switch res.State {
	case view.StateFailed:
		fmt.Fprintln(a.out, "Error:", res.Message)
	case view.StateEmpty:
		fmt.Fprintln(a.out, "No uploads yet. Use 'upload' to protect your first image.")
	default:
		fmt.Fprintln(a.out, "Latest uploads:")
		for _, img := range res.Items {
			fmt.Fprintf(a.out, "  #%d  %s  [%s]\n", img.ID, img.Caption(), img.Status)
		}
	}

	reports := view.LoadList(ctx, a.reports.List)
	if reports.Unauthorized {
		a.evict(ctx)
		return nil
	}
	if reports.State == view.StateReady {
		fmt.Fprintf(a.out, "DMCA reports: %d (see 'reports')\n", len(reports.Items))
	}

	// Notifications never block the page; a fetch failure renders nothing.
	for _, n := range a.notifications.Recent(ctx) {
		marker := " "
		if !n.Read {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %s (%s)\n", marker, n.Message, n.CreatedAt.Format(time.DateOnly))
	}

	return nil
}

func (a *App) renderChangePassword(ctx context.Context) error {
	fmt.Fprintln(a.out, "== Change password ==")

	current, err := GetPassword("Current password", a.out)
	if err != nil {
		return err
	}
	updated, err := GetPassword("New password", a.out)
	if err != nil {
		return err
	}

	if err := a.auth.ChangePassword(ctx, current, updated); err != nil {
		if a.session.EvictOn(ctx, err) {
			fmt.Fprintln(a.out, "Session expired. Please sign in again.")
			return nil
		}
		fmt.Fprintln(a.out, "Password change failed:", err)
		return nil
	}

	fmt.Fprintln(a.out, "Password updated.")
	time.Sleep(a.navDelay)
	return a.renderDashboard(ctx, view.ViewOverview)
}

func (a *App) renderProfile(ctx context.Context) error {
	fmt.Fprintln(a.out, "== Profile ==")

	// Show cached data immediately, then refresh from the server.
	if cached, err := a.auth.CachedProfile(ctx); err == nil && cached != nil {
		a.printProfile(cached, " (cached)")
	}

	fresh, err := a.auth.RefreshProfile(ctx)
	if err != nil {
		if a.session.EvictOn(ctx, err) {
			fmt.Fprintln(a.out, "Session expired. Please sign in again.")
			return nil
		}
		fmt.Fprintln(a.out, "Error:", err)
		return nil
	}

	a.printProfile(fresh, "")
	return nil
}

func (a *App) renderEditProfile(ctx context.Context) error {
	fmt.Fprintln(a.out, "== Edit profile ==")
	fmt.Fprintln(a.out, "Press Enter to keep the current value.")

	upd := api.ProfileUpdate{}
	fields := []struct {
		prompt string
		dst    **string
	}{
		{"Full name", &upd.FullName},
		{"Phone number", &upd.PhoneNumber},
		{"Bio", &upd.Bio},
		{"Location", &upd.Location},
	}
	for _, f := range fields {
		v, err := GetSimpleText(a.reader, f.prompt, a.out)
		if err != nil {
			return err
		}
		if v != "" {
			*f.dst = &v
		}
	}

	if err := a.editAvatar(ctx); err != nil {
		return err
	}

	if _, err := a.auth.UpdateProfile(ctx, upd); err != nil {
		if a.session.EvictOn(ctx, err) {
			fmt.Fprintln(a.out, "Session expired. Please sign in again.")
			return nil
		}
		fmt.Fprintln(a.out, "Update failed:", err)
		return nil
	}

	fmt.Fprintln(a.out, "Profile saved.")
	return a.renderDashboard(ctx, view.ViewProfile)
}

// editAvatar asks for an avatar action inside the edit-profile flow. An
// empty answer keeps the current picture, "-" removes it and a path uploads
// a new one. Failures are reported inline and never abort the profile save.
func (a *App) editAvatar(ctx context.Context) error {
	answer, err := GetSimpleText(a.reader, "Avatar image path ('-' removes it, Enter keeps it)", a.out)
	if err != nil {
		return err
	}
	switch answer {
	case "":
	case "-":
		if err := a.auth.DeleteAvatar(ctx); err != nil {
			fmt.Fprintln(a.out, "Removing avatar failed:", err)
		}
	default:
		data, err := os.ReadFile(answer)
		if err != nil {
			fmt.Fprintln(a.out, "Cannot read file:", err)
			return nil
		}
		if _, err := a.auth.UploadAvatar(ctx, filepath.Base(answer), data); err != nil {
			fmt.Fprintln(a.out, "Avatar upload failed:", err)
		}
	}
	return nil
}

func (a *App) printProfile(p *models.Profile, suffix string) {
	fmt.Fprintf(a.out, "Name:     %s%s\n", p.DisplayName(), suffix)
	fmt.Fprintf(a.out, "Username: %s\n", p.Username)
	fmt.Fprintf(a.out, "Email:    %s\n", p.Email)
	if p.Location != "" {
		fmt.Fprintf(a.out, "Location: %s\n", p.Location)
	}
	if p.Bio != "" {
		fmt.Fprintf(a.out, "Bio:      %s\n", p.Bio)
	}
}
