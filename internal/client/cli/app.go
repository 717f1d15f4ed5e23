package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/moviedb/internal/client/config"
	"github.com/dmitrijs2005/moviedb/internal/client/models"
	"github.com/dmitrijs2005/moviedb/internal/client/omdb"
	"github.com/dmitrijs2005/moviedb/internal/client/services"
	"github.com/dmitrijs2005/moviedb/internal/client/storage"
	"github.com/dmitrijs2005/moviedb/internal/logging"
)

// DefaultQuery is searched right after a user signs in.
const DefaultQuery = "Marvel"

// Catalog is the part of the movie provider the CLI uses.
type Catalog interface {
	Search(ctx context.Context, query string, page int) (*omdb.SearchResult, error)
	Details(ctx context.Context, imdbID string) (*models.Movie, error)
}

// backend is a store engine that also keeps the session hint.
type backend interface {
	storage.Store
	storage.HintStore
}

type App struct {
	config    *config.Config
	store     storage.Store
	session   *services.SessionService
	watchlist *services.WatchlistService
	catalog   Catalog
	logger    logging.Logger

	reader *bufio.Reader
	out    io.Writer

	// last search, for paging
	results *omdb.SearchResult
}

// NewApp wires the store selected by c, the session and watchlist services
// and the catalog client, then initializes the session. A store that cannot
// be initialized is fatal.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	var store backend
	switch c.StoreKind {
	case config.StoreMemory:
		store = storage.NewMemoryStore()
	default:
		store = storage.NewSQLiteStore(c.DatabasePath)
	}

	catalog := omdb.NewClient(c.OMDbBaseURL, c.OMDbAPIKey,
		omdb.WithHTTPClient(&http.Client{Timeout: c.RequestTimeout}),
		omdb.WithLogger(logger.With("component", "omdb")),
	)

	a := newApp(store, catalog, logger, bufio.NewReader(os.Stdin), os.Stdout)
	a.config = c

	if err := a.session.Initialize(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return a, nil
}

func newApp(store backend, catalog Catalog, logger logging.Logger, r *bufio.Reader, w io.Writer) *App {
	session := services.NewSessionService(store, store, logger.With("component", "session"))
	watchlist := services.NewWatchlistService(store, session, logger.With("component", "watchlist"))

	return &App{
		store:     store,
		session:   session,
		watchlist: watchlist,
		catalog:   catalog,
		logger:    logger,
		reader:    r,
		out:       w,
	}
}

// Run starts the REPL and blocks until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer func() {
		if err := a.store.Close(); err != nil {
			a.logger.Warn(ctx, "failed to close local store", "error", err)
		}
	}()

	a.println("Welcome to moviedb (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	if u := a.session.CurrentUser(); u != nil {
		return fmt.Sprintf("(%s)", u.Username)
	}
	return ""
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
