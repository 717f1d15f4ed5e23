package models

// Watchlist is the single stored record of a user's saved movies.
// Order is insertion order; ImdbID is unique within Movies.
type Watchlist struct {
	UserID string
	Movies []Movie
}

// Dedupe returns movies with repeated ImdbIDs dropped, keeping the first
// occurrence and the original order. The result is never nil.
func Dedupe(movies []Movie) []Movie {
	seen := make(map[string]struct{}, len(movies))
	out := make([]Movie, 0, len(movies))
	for _, m := range movies {
		if _, ok := seen[m.ImdbID]; ok {
			continue
		}
		seen[m.ImdbID] = struct{}{}
		out = append(out, m)
	}
	return out
}

// Clone returns a copy of movies that shares no backing array with it.
func Clone(movies []Movie) []Movie {
	out := make([]Movie, len(movies))
	copy(out, movies)
	return out
}
