package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

var numberedParam = regexp.MustCompile(`\$\d+`)

// sqliteQuery rewrites numbered placeholders into positional ones. Every
// statement in this package uses its parameters once and in order.
func sqliteQuery(query string) string {
	return numberedParam.ReplaceAllString(query, "?")
}

// SQLite is the Querier backed by an embedded SQLite database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens the database file at path, creating it when missing.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)", path))
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("pinging sqlite database: %w", err)
	}
	return db, nil
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) CreateRecipe(ctx context.Context, arg CreateRecipeParams) (Recipe, error) {
	row := s.db.QueryRowContext(ctx, sqliteQuery(createRecipe),
		arg.Title,
		arg.Description,
		arg.ImageURL,
		arg.VideoURL,
		arg.AudioURL,
	)
	r, err := scanRecipe(row)
	if err != nil {
		return Recipe{}, storeError("create recipe", err)
	}
	return r, nil
}

func (s *SQLite) ListRecipes(ctx context.Context) ([]Recipe, error) {
	recipes, err := s.list(ctx, listRecipes)
	if err != nil {
		return nil, storeError("list recipes", err)
	}
	return recipes, nil
}

func (s *SQLite) ListFavoriteRecipes(ctx context.Context) ([]Recipe, error) {
	recipes, err := s.list(ctx, listFavoriteRecipes)
	if err != nil {
		return nil, storeError("list favorite recipes", err)
	}
	return recipes, nil
}

func (s *SQLite) list(ctx context.Context, query string) ([]Recipe, error) {
	rows, err := s.db.QueryContext(ctx, sqliteQuery(query))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := []Recipe{}
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recipes, nil
}

func (s *SQLite) SetRecipeFavorite(ctx context.Context, arg SetRecipeFavoriteParams) (Recipe, error) {
	row := s.db.QueryRowContext(ctx, sqliteQuery(setRecipeFavorite), arg.Favorite, arg.ID)
	r, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Recipe{}, ErrRecipeNotFound
	}
	if err != nil {
		return Recipe{}, storeError("set recipe favorite", err)
	}
	return r, nil
}

func (s *SQLite) DeleteRecipe(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, sqliteQuery(deleteRecipe), id); err != nil {
		return storeError("delete recipe", err)
	}
	return nil
}
