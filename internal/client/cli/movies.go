package cli

import (
	"context"
	"errors"
)

// pageWindow is the number of page buttons shown under results.
const pageWindow = 5

var (
	errNoSearch = errors.New("no search yet; try 'search <title>'")
	errNoPage   = errors.New("no such page")
)

// Search runs a new search and shows its first page.
func (a *App) Search(ctx context.Context, query string) error {
	return a.searchPage(ctx, query, 1)
}

func (a *App) NextPage(ctx context.Context) error {
	if a.results == nil {
		return errNoSearch
	}
	return a.GoToPage(ctx, a.results.Page+1)
}

func (a *App) PrevPage(ctx context.Context) error {
	if a.results == nil {
		return errNoSearch
	}
	return a.GoToPage(ctx, a.results.Page-1)
}

// GoToPage shows page of the last search.
func (a *App) GoToPage(ctx context.Context, page int) error {
	if a.results == nil {
		return errNoSearch
	}
	if page < 1 || page > a.results.TotalPages {
		return errNoPage
	}
	return a.searchPage(ctx, a.results.Query, page)
}

func (a *App) searchPage(ctx context.Context, query string, page int) error {
	res, err := a.catalog.Search(ctx, query, page)
	if err != nil {
		// A failed search leaves nothing to page through.
		a.results = nil
		return err
	}
	a.results = res
	renderResults(a.out, res, a.watchlist.Contains)
	return nil
}

// Show prints the full details of one title.
func (a *App) Show(ctx context.Context, imdbID string) error {
	m, err := a.catalog.Details(ctx, imdbID)
	if err != nil {
		return err
	}
	renderMovie(a.out, m, a.watchlist.Contains(m.ImdbID))
	return nil
}
