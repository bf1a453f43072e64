package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/attendance/internal/client/client"
	"github.com/dmitrijs2005/attendance/internal/client/nav"
	"github.com/dmitrijs2005/attendance/internal/client/views"
)

const sessionExpiredMessage = "Your session has expired. Please log in again."

// handleUnauthorized drops the session when the server rejected the token.
// It reports whether it did.
func (a *App) handleUnauthorized(ctx context.Context, err error) bool {
	if !errors.Is(err, client.ErrUnauthorized) {
		return false
	}
	printlnFn(sessionExpiredMessage)
	a.auth.Invalidate(ctx)
	return true
}

func (a *App) Home(ctx context.Context) error {
	if err := a.nav.Navigate(nav.ScreenHome); err != nil {
		return err
	}
	st, err := a.home.Refresh(ctx)
	if a.handleUnauthorized(ctx, err) {
		return err
	}
	a.renderHome(a.auth.User(), st)
	return nil
}

// Mark runs the camera workflow for the opposite of the current status.
func (a *App) Mark(ctx context.Context) error {
	if err := a.nav.Navigate(nav.ScreenCamera); err != nil {
		return err
	}
	defer a.nav.Back()

	req := a.home.Mark()
	if req.CheckIn {
		printlnFn("Check In")
	} else {
		printlnFn("Check Out")
	}

	res, err := a.camera.Run(ctx, req.CheckIn, req.OnComplete)
	if err != nil {
		printlnFn("Please wait for the current upload to finish.")
		return err
	}

	switch res.State {
	case views.CameraSuccess:
		printlnFn(res.Message)
		a.renderHome(a.auth.User(), a.home.Status())
	case views.CameraError:
		if !a.handleUnauthorized(ctx, res.Err) {
			printlnFn("Error:", res.Message)
		}
	}
	return nil
}

// History loads the first page of records.
func (a *App) History(ctx context.Context) error {
	if err := a.nav.Navigate(nav.ScreenHistory); err != nil {
		return err
	}
	return a.loadHistory(ctx)
}

// Refresh reloads history from page 1, dropping the pages loaded so far.
func (a *App) Refresh(ctx context.Context) error {
	if err := a.nav.Navigate(nav.ScreenHistory); err != nil {
		return err
	}
	return a.showHistory(ctx, a.history.Refresh)
}

func (a *App) loadHistory(ctx context.Context) error {
	return a.showHistory(ctx, a.history.Load)
}

func (a *App) showHistory(ctx context.Context, load func(context.Context) error) error {
	if err := load(ctx); err != nil {
		a.log.Error(ctx, "error loading records", "error", err)
		if !a.handleUnauthorized(ctx, err) {
			printlnFn("Error:", client.MessageOf(err, "Failed to load history"))
		}
		return err
	}
	a.renderHistory(a.history.Header(), a.history.Records(), a.history.HasMore())
	return nil
}

// More appends the next page, the terminal stand-in for scrolling to the
// bottom of the list.
func (a *App) More(ctx context.Context) error {
	if err := a.nav.Navigate(nav.ScreenHistory); err != nil {
		return err
	}
	if !a.history.Loaded() {
		return a.loadHistory(ctx)
	}

	before := len(a.history.Records())
	loaded, err := a.history.LoadMore(ctx)
	if err != nil {
		a.log.Error(ctx, "error loading more records", "error", err)
		if !a.handleUnauthorized(ctx, err) {
			printlnFn("Error:", client.MessageOf(err, "Failed to load more records"))
		}
		return err
	}
	if !loaded {
		printlnFn("No more records.")
		return nil
	}

	records := a.history.Records()
	for _, r := range records[before:] {
		a.renderRecord(r)
	}
	printlnFn(fmt.Sprintf("Page %d: %s loaded", a.history.Page(), a.history.Header()))
	if a.history.HasMore() {
		printlnFn("Type 'more' to load older records.")
	}
	return nil
}

func (a *App) Stats(ctx context.Context) error {
	if err := a.nav.Navigate(nav.ScreenStats); err != nil {
		return err
	}

	sum, err := views.LoadStats(ctx, a.stats)
	if err != nil {
		a.log.Error(ctx, "error loading stats", "error", err)
		if !a.handleUnauthorized(ctx, err) {
			printlnFn("Error:", client.MessageOf(err, "Failed to load stats"))
		}
		return err
	}
	a.renderStats(sum)
	return nil
}
