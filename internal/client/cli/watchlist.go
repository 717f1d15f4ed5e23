package cli

import (
	"context"
)

// Add fetches the full record of imdbID and saves it to the watchlist.
func (a *App) Add(ctx context.Context, imdbID string) error {
	if a.watchlist.Contains(imdbID) {
		a.println("Already in your watchlist.")
		return nil
	}

	m, err := a.catalog.Details(ctx, imdbID)
	if err != nil {
		return err
	}
	if err := a.watchlist.Add(ctx, *m); err != nil {
		return err
	}
	a.printf("Added %s to your watchlist.\n", m.Title)
	return nil
}

func (a *App) Remove(ctx context.Context, imdbID string) error {
	if err := a.watchlist.Remove(ctx, imdbID); err != nil {
		return err
	}
	a.printf("Removed %s from your watchlist.\n", imdbID)
	return nil
}

// Toggle adds imdbID when absent and removes it when present.
func (a *App) Toggle(ctx context.Context, imdbID string) error {
	if a.watchlist.Contains(imdbID) {
		return a.Remove(ctx, imdbID)
	}
	return a.Add(ctx, imdbID)
}

func (a *App) List(ctx context.Context) error {
	renderWatchlist(a.out, a.watchlist.Movies())
	return nil
}

// Clear empties the watchlist after confirmation.
func (a *App) Clear(ctx context.Context) error {
	if a.watchlist.Len() == 0 {
		a.println(watchlistSummary(0))
		return nil
	}

	ok, err := Confirm(a.reader, "Remove all movies from your watchlist?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println("Cancelled.")
		return nil
	}

	if err := a.watchlist.Clear(ctx); err != nil {
		return err
	}
	a.println("Watchlist cleared.")
	return nil
}
