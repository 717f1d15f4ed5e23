package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/dmitrijs2005/moviedb/internal/client/forms"
	"github.com/dmitrijs2005/moviedb/internal/client/models"
	"github.com/dmitrijs2005/moviedb/internal/client/storage"
	"github.com/dmitrijs2005/moviedb/internal/logging"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var errBoom = errors.New("boom")

type faults struct {
	init   error
	find   error
	create error
	getWL  error
	putWL  error
	hint   error
}

// faultyStore wraps a MemoryStore and fails selected operations.
type faultyStore struct {
	*storage.MemoryStore

	mu          sync.Mutex
	faults      faults
	putCalls    int
	findCalls   int
	createCalls int
}

func newFaultyStore() *faultyStore {
	return &faultyStore{MemoryStore: storage.NewMemoryStore()}
}

func (f *faultyStore) fail(fn func(ft *faults)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.faults)
}

func (f *faultyStore) current() faults {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.faults
}

func (f *faultyStore) count(n *int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	*n++
}

func (f *faultyStore) calls() (find, create, put int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.findCalls, f.createCalls, f.putCalls
}

func (f *faultyStore) Initialize(ctx context.Context) error {
	if err := f.current().init; err != nil {
		return err
	}
	return f.MemoryStore.Initialize(ctx)
}

func (f *faultyStore) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	f.count(&f.findCalls)
	if err := f.current().find; err != nil {
		return nil, err
	}
	return f.MemoryStore.FindUserByUsername(ctx, username)
}

func (f *faultyStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.count(&f.findCalls)
	if err := f.current().find; err != nil {
		return nil, err
	}
	return f.MemoryStore.FindUserByEmail(ctx, email)
}

func (f *faultyStore) CreateUser(ctx context.Context, username, email, hash string) (*models.User, error) {
	f.count(&f.createCalls)
	if err := f.current().create; err != nil {
		return nil, err
	}
	return f.MemoryStore.CreateUser(ctx, username, email, hash)
}

func (f *faultyStore) GetWatchlist(ctx context.Context, userID string) ([]models.Movie, error) {
	if err := f.current().getWL; err != nil {
		return nil, err
	}
	return f.MemoryStore.GetWatchlist(ctx, userID)
}

func (f *faultyStore) PutWatchlist(ctx context.Context, userID string, movies []models.Movie) error {
	f.count(&f.putCalls)
	if err := f.current().putWL; err != nil {
		return err
	}
	return f.MemoryStore.PutWatchlist(ctx, userID, movies)
}

func (f *faultyStore) SetHint(ctx context.Context, userID string) error {
	if err := f.current().hint; err != nil {
		return err
	}
	return f.MemoryStore.SetHint(ctx, userID)
}

func (f *faultyStore) DeleteHint(ctx context.Context) error {
	if err := f.current().hint; err != nil {
		return err
	}
	return f.MemoryStore.DeleteHint(ctx)
}

type fixture struct {
	store     *faultyStore
	session   *SessionService
	watchlist *WatchlistService
	logs      *observer.ObservedLogs
}

// newFixture wires an initialized session and watchlist over a faultyStore.
// Password hashing is replaced with a cheap reversible scheme.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := newUninitializedFixture(t)
	require.NoError(t, f.session.Initialize(context.Background()))
	return f
}

func newUninitializedFixture(t *testing.T) *fixture {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	logger := logging.FromZap(zap.New(core))

	store := newFaultyStore()
	session := NewSessionService(store, store, logger)
	session.hashPassword = func(pw string) (string, error) { return "plain$" + pw, nil }
	session.verifyPassword = func(encoded, pw string) bool { return encoded == "plain$"+pw }

	return &fixture{
		store:     store,
		session:   session,
		watchlist: NewWatchlistService(store, session, logger),
		logs:      logs,
	}
}

func registration(username, email, password string) forms.Registration {
	return forms.Registration{Username: username, Email: email, Password: password, ConfirmPassword: password}
}

func movie(id string) models.Movie {
	return models.Movie{ImdbID: id, Title: "Title " + id, Year: "2000", Type: "movie", Poster: models.PosterNotAvailable}
}
