package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/moviedb/internal/client/models"
	"github.com/dmitrijs2005/moviedb/internal/client/omdb"
)

func watchlistSummary(n int) string {
	switch n {
	case 0:
		return "Your watchlist is empty. Add some movies to get started!"
	case 1:
		return "You have 1 movie in your watchlist"
	default:
		return fmt.Sprintf("You have %d movies in your watchlist", n)
	}
}

func movieLine(m models.Movie, saved bool) string {
	mark := " "
	if saved {
		mark = "*"
	}
	return fmt.Sprintf("%s %-10s  %s (%s) [%s]", mark, m.ImdbID, m.Title, m.Year, m.Type)
}

// renderResults prints one page of search results. Watchlisted titles are
// marked with '*'.
func renderResults(w io.Writer, res *omdb.SearchResult, saved func(string) bool) {
	fmt.Fprintf(w, "Results for %q: %d found, page %d of %d\n", res.Query, res.TotalResults, res.Page, res.TotalPages)
	for _, m := range res.Movies {
		fmt.Fprintln(w, movieLine(m, saved(m.ImdbID)))
	}

	window := omdb.PageWindow(res.Page, res.TotalPages, pageWindow)
	if len(window) < 2 {
		return
	}
	pages := make([]string, 0, len(window))
	for _, p := range window {
		if p == res.Page {
			pages = append(pages, fmt.Sprintf("[%d]", p))
			continue
		}
		pages = append(pages, fmt.Sprint(p))
	}
	fmt.Fprintf(w, "Pages: %s  (next, prev, page <n>)\n", strings.Join(pages, " "))
}

func renderWatchlist(w io.Writer, movies []models.Movie) {
	fmt.Fprintln(w, watchlistSummary(len(movies)))
	for _, m := range movies {
		fmt.Fprintln(w, movieLine(m, true))
	}
}

func renderMovie(w io.Writer, m *models.Movie, saved bool) {
	fmt.Fprintf(w, "%s (%s)\n", m.Title, m.Year)

	fields := []struct{ label, value string }{
		{"IMDb ID", m.ImdbID},
		{"Type", m.Type},
		{"Genre", m.Genre},
		{"Runtime", m.Runtime},
		{"Released", m.Released},
		{"Rating", m.ImdbRating},
		{"Director", m.Director},
		{"Writer", m.Writer},
		{"Actors", m.Actors},
		{"Language", m.Language},
		{"Country", m.Country},
		{"Awards", m.Awards},
	}
	for _, f := range fields {
		if f.value == "" || f.value == models.PosterNotAvailable {
			continue
		}
		fmt.Fprintf(w, "  %-9s %s\n", f.label+":", f.value)
	}

	if m.HasPoster() {
		fmt.Fprintf(w, "  %-9s %s\n", "Poster:", m.Poster)
	} else {
		fmt.Fprintln(w, "  No poster available")
	}
	if m.Plot != "" && m.Plot != models.PosterNotAvailable {
		fmt.Fprintf(w, "\n%s\n", m.Plot)
	}

	if saved {
		fmt.Fprintln(w, "\n* In your watchlist")
	}
}
