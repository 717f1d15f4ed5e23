package models

// PosterNotAvailable is the catalog's sentinel for a missing poster.
const PosterNotAvailable = "N/A"

// Movie is a snapshot of catalog data. JSON field names follow the catalog
// so the same type decodes provider responses and encodes stored watchlists.
type Movie struct {
	ImdbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Type   string `json:"Type"`
	Poster string `json:"Poster"`

	Plot       string `json:"Plot,omitempty"`
	Director   string `json:"Director,omitempty"`
	Actors     string `json:"Actors,omitempty"`
	Runtime    string `json:"Runtime,omitempty"`
	Genre      string `json:"Genre,omitempty"`
	ImdbRating string `json:"imdbRating,omitempty"`
	Released   string `json:"Released,omitempty"`
	Writer     string `json:"Writer,omitempty"`
	Language   string `json:"Language,omitempty"`
	Country    string `json:"Country,omitempty"`
	Awards     string `json:"Awards,omitempty"`
}

// HasPoster reports whether Poster holds a real URL.
func (m Movie) HasPoster() bool {
	return m.Poster != "" && m.Poster != PosterNotAvailable
}
