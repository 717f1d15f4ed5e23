package watchlists

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/moviedb/internal/client/models"
	"github.com/dmitrijs2005/moviedb/internal/common"
	"github.com/dmitrijs2005/moviedb/internal/dbx"
)

type SQLiteRepository struct {
	db  dbx.DBTX
	now func() time.Time
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db, now: time.Now}
}

func (r *SQLiteRepository) Get(ctx context.Context, userID string) ([]models.Movie, error) {
	var doc string
	err := r.db.QueryRowContext(ctx, `SELECT movies FROM watchlists WHERE user_id = ?`, userID).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get watchlist[%s]: %w", userID, err)
	}

	movies := []models.Movie{}
	if err := json.Unmarshal([]byte(doc), &movies); err != nil {
		return nil, fmt.Errorf("failed to decode watchlist[%s]: %w", userID, err)
	}
	return movies, nil
}

func (r *SQLiteRepository) Put(ctx context.Context, userID string, movies []models.Movie) error {
	if movies == nil {
		movies = []models.Movie{}
	}
	doc, err := json.Marshal(movies)
	if err != nil {
		return fmt.Errorf("failed to encode watchlist[%s]: %w", userID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO watchlists (user_id, movies, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET movies = excluded.movies, updated_at = excluded.updated_at
	`, userID, string(doc), r.now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to put watchlist[%s]: %w", userID, err)
	}
	return nil
}
