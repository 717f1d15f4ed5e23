package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/moviedb/internal/client/models"
	"github.com/dmitrijs2005/moviedb/internal/common"
	"github.com/google/uuid"
)

// MemoryStore implements Store and HintStore with process-local maps.
// Values are copied on the way in and out.
type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool

	users      map[string]models.User // by id
	byUsername map[string]string
	byEmail    map[string]string
	watchlists map[string][]models.Movie
	hint       *string

	now   func() time.Time
	newID func() string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now, newID: uuid.NewString}
}

func (s *MemoryStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	s.users = map[string]models.User{}
	s.byUsername = map[string]string{}
	s.byEmail = map[string]string{}
	s.watchlists = map[string][]models.Movie{}
	s.initialized = true
	return nil
}

func (s *MemoryStore) ready() error {
	if !s.initialized {
		return fmt.Errorf("%w: %w", common.ErrStorageUnavailable, common.ErrNotInitialized)
	}
	return nil
}

func (s *MemoryStore) CreateUser(ctx context.Context, username, email, passwordHash string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ready(); err != nil {
		return nil, err
	}
	if _, ok := s.byUsername[username]; ok {
		return nil, &common.ConflictError{Field: "username"}
	}
	if _, ok := s.byEmail[email]; ok {
		return nil, &common.ConflictError{Field: "email"}
	}

	u := models.User{
		ID:           s.newID(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    s.now().UTC(),
	}
	s.users[u.ID] = u
	s.byUsername[username] = u.ID
	s.byEmail[email] = u.ID
	return &u, nil
}

func (s *MemoryStore) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.lookup(s.byUsername, username), nil
}

func (s *MemoryStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.ready(); err != nil {
		return nil, err
	}
	return s.lookup(s.byEmail, email), nil
}

func (s *MemoryStore) lookup(index map[string]string, key string) *models.User {
	id, ok := index[key]
	if !ok {
		return nil
	}
	u := s.users[id]
	return &u
}

func (s *MemoryStore) GetWatchlist(ctx context.Context, userID string) ([]models.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.ready(); err != nil {
		return nil, err
	}
	return models.Clone(s.watchlists[userID]), nil
}

func (s *MemoryStore) PutWatchlist(ctx context.Context, userID string, movies []models.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	s.watchlists[userID] = models.Clone(movies)
	return nil
}

func (s *MemoryStore) GetHint(ctx context.Context) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.ready(); err != nil {
		return "", false, err
	}
	if s.hint == nil {
		return "", false, nil
	}
	return *s.hint, true, nil
}

func (s *MemoryStore) SetHint(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	s.hint = &userID
	return nil
}

func (s *MemoryStore) DeleteHint(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ready(); err != nil {
		return err
	}
	s.hint = nil
	return nil
}

// Close is a no-op; data lives as long as the MemoryStore.
func (s *MemoryStore) Close() error {
	return nil
}
