package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/moviedb/internal/client/models"
	"github.com/dmitrijs2005/moviedb/internal/client/storage"
	"github.com/dmitrijs2005/moviedb/internal/common"
	"github.com/dmitrijs2005/moviedb/internal/logging"
)

// WatchlistService keeps the signed-in user's watchlist in memory and in the
// store. Every mutation writes the whole list first and only then updates
// the in-memory copy, so readers never see a write that failed.
type WatchlistService struct {
	store  storage.Store
	logger logging.Logger

	// writeMu serializes read-modify-write cycles and identity changes.
	writeMu sync.Mutex

	mu      sync.RWMutex
	userID  string
	movies  []models.Movie
	index   map[string]struct{}
	loading bool
}

// NewWatchlistService subscribes to session identity changes, so it must be
// created before the first login.
func NewWatchlistService(store storage.Store, session *SessionService, logger logging.Logger) *WatchlistService {
	w := &WatchlistService{
		store:  store,
		logger: logger,
		movies: []models.Movie{},
		index:  map[string]struct{}{},
	}
	session.Subscribe(w.onIdentity)
	return w
}

func (w *WatchlistService) onIdentity(ctx context.Context, user *models.User) {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	if user == nil {
		w.reflect("", nil)
		return
	}

	w.mu.Lock()
	w.loading = true
	w.mu.Unlock()

	movies, err := w.store.GetWatchlist(ctx, user.ID)
	if err != nil {
		w.logger.Error(ctx, "failed to load watchlist", "user_id", user.ID, "error", err)
		movies = nil
	}
	movies = models.Dedupe(movies)
	w.logger.Debug(ctx, "watchlist loaded", "user_id", user.ID, "movies", len(movies))

	w.reflect(user.ID, movies)
}

// reflect replaces the in-memory state and clears the loading flag.
func (w *WatchlistService) reflect(userID string, movies []models.Movie) {
	index := make(map[string]struct{}, len(movies))
	for _, m := range movies {
		index[m.ImdbID] = struct{}{}
	}
	if movies == nil {
		movies = []models.Movie{}
	}

	w.mu.Lock()
	w.userID = userID
	w.movies = movies
	w.index = index
	w.loading = false
	w.mu.Unlock()
}

func (w *WatchlistService) snapshot() (string, []models.Movie) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.userID, models.Clone(w.movies)
}

func (w *WatchlistService) save(ctx context.Context, userID string, next []models.Movie) error {
	if err := w.store.PutWatchlist(ctx, userID, next); err != nil {
		w.logger.Error(ctx, "failed to save watchlist", "user_id", userID, "error", err)
		return fmt.Errorf("%w: %w", common.ErrWatchlistSave, err)
	}
	w.reflect(userID, next)
	return nil
}

// Add appends movie unless a movie with the same ImdbID is already present.
func (w *WatchlistService) Add(ctx context.Context, movie models.Movie) error {
	if movie.ImdbID == "" {
		return &common.ValidationError{Field: "imdbID", Message: "Movie id is required"}
	}

	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	userID, movies := w.snapshot()
	if userID == "" {
		return common.ErrNotAuthenticated
	}
	if w.Contains(movie.ImdbID) {
		return nil
	}

	if err := w.save(ctx, userID, append(movies, movie)); err != nil {
		return err
	}
	w.logger.Debug(ctx, "movie added to watchlist", "user_id", userID, "imdb_id", movie.ImdbID)
	return nil
}

// Remove drops the movie with imdbID. The list is written even when the
// movie was not there.
func (w *WatchlistService) Remove(ctx context.Context, imdbID string) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	userID, movies := w.snapshot()
	if userID == "" {
		return common.ErrNotAuthenticated
	}

	next := movies[:0]
	for _, m := range movies {
		if m.ImdbID != imdbID {
			next = append(next, m)
		}
	}

	if err := w.save(ctx, userID, next); err != nil {
		return err
	}
	w.logger.Debug(ctx, "movie removed from watchlist", "user_id", userID, "imdb_id", imdbID)
	return nil
}

// Clear empties the watchlist.
func (w *WatchlistService) Clear(ctx context.Context) error {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	userID, _ := w.snapshot()
	if userID == "" {
		return common.ErrNotAuthenticated
	}

	if err := w.save(ctx, userID, []models.Movie{}); err != nil {
		return err
	}
	w.logger.Debug(ctx, "watchlist cleared", "user_id", userID)
	return nil
}

func (w *WatchlistService) Contains(imdbID string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.index[imdbID]
	return ok
}

// Movies returns a copy of the watchlist in insertion order.
func (w *WatchlistService) Movies() []models.Movie {
	_, movies := w.snapshot()
	return movies
}

func (w *WatchlistService) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.movies)
}

// Loading reports whether the watchlist of a newly signed-in user is still
// being read.
func (w *WatchlistService) Loading() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.loading
}
