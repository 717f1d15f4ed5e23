package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/moviedb/internal/client/migrations"
	"github.com/dmitrijs2005/moviedb/internal/client/models"
	"github.com/dmitrijs2005/moviedb/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/moviedb/internal/client/repositories/users"
	"github.com/dmitrijs2005/moviedb/internal/client/repositories/watchlists"
	"github.com/dmitrijs2005/moviedb/internal/common"
	"github.com/dmitrijs2005/moviedb/internal/dbx"
	"github.com/dmitrijs2005/moviedb/internal/filex"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// SQLiteStore implements Store and HintStore over a single SQLite database.
type SQLiteStore struct {
	dsn string

	mu         sync.RWMutex
	db         *sql.DB
	metadata   metadata.Repository
	watchlists watchlists.Repository

	now   func() time.Time
	newID func() string
}

// NewSQLiteStore prepares a store for dsn (a file path, ":memory:" or a
// "file:" URI). Nothing is opened until Initialize.
func NewSQLiteStore(dsn string) *SQLiteStore {
	return &SQLiteStore{dsn: dsn, now: time.Now, newID: uuid.NewString}
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}

	if s.dsn != ":memory:" && !strings.HasPrefix(s.dsn, "file:") {
		if _, err := filex.EnsureParentDir(s.dsn); err != nil {
			return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
		}
	}

	db, err := sql.Open("sqlite", s.dsn)
	if err != nil {
		return fmt.Errorf("%w: open %s: %w", common.ErrStorageUnavailable, s.dsn, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("%w: ping %s: %w", common.ErrStorageUnavailable, s.dsn, err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, err)
	}

	s.db = db
	s.metadata = metadata.NewSQLiteRepository(db)
	s.watchlists = watchlists.NewSQLiteRepository(db)
	return nil
}

func (s *SQLiteStore) handle() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorageUnavailable, common.ErrNotInitialized)
	}
	return s.db, nil
}

// CreateUser checks username then email inside one transaction and inserts
// the user. The unique indices catch anything the checks miss.
func (s *SQLiteStore) CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}

	u := &models.User{
		ID:           s.newID(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    s.now().UTC(),
	}

	err = dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := users.NewSQLiteRepository(tx)

		if _, err := repo.GetByUsername(ctx, username); !errors.Is(err, common.ErrNotFound) {
			if err == nil {
				return &common.ConflictError{Field: "username"}
			}
			return err
		}
		if _, err := repo.GetByEmail(ctx, email); !errors.Is(err, common.ErrNotFound) {
			if err == nil {
				return &common.ConflictError{Field: "email"}
			}
			return err
		}
		return repo.Create(ctx, u)
	})
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *SQLiteStore) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}
	return absentAsNil(users.NewSQLiteRepository(db).GetByUsername(ctx, username))
}

func (s *SQLiteStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	db, err := s.handle()
	if err != nil {
		return nil, err
	}
	return absentAsNil(users.NewSQLiteRepository(db).GetByEmail(ctx, email))
}

func absentAsNil(u *models.User, err error) (*models.User, error) {
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

func (s *SQLiteStore) GetWatchlist(ctx context.Context, userID string) ([]models.Movie, error) {
	if _, err := s.handle(); err != nil {
		return nil, err
	}

	movies, err := s.watchlists.Get(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		return []models.Movie{}, nil
	}
	if err != nil {
		return nil, err
	}
	return movies, nil
}

func (s *SQLiteStore) PutWatchlist(ctx context.Context, userID string, movies []models.Movie) error {
	if _, err := s.handle(); err != nil {
		return err
	}
	return s.watchlists.Put(ctx, userID, movies)
}

func (s *SQLiteStore) GetHint(ctx context.Context) (string, bool, error) {
	if _, err := s.handle(); err != nil {
		return "", false, err
	}
	return s.metadata.Get(ctx, common.SessionHintKey)
}

func (s *SQLiteStore) SetHint(ctx context.Context, userID string) error {
	if _, err := s.handle(); err != nil {
		return err
	}
	return s.metadata.Set(ctx, common.SessionHintKey, userID)
}

func (s *SQLiteStore) DeleteHint(ctx context.Context) error {
	if _, err := s.handle(); err != nil {
		return err
	}
	return s.metadata.Delete(ctx, common.SessionHintKey)
}

// Close releases the database. The store can be initialized again afterwards.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
