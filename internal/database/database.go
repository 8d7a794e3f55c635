// Package database contains the recipe store gateways.
package database

import (
	"context"
	"errors"
	"fmt"
)

var ErrRecipeNotFound = errors.New("recipe not found")

// StoreError wraps a failure of the underlying store with the name of the
// gateway operation that produced it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeError(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}

type Recipe struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	VideoURL    *string `json:"video_url"`
	AudioURL    *string `json:"audio_url"`
	Favorite    bool    `json:"favorite"`
}

type CreateRecipeParams struct {
	Title       string
	Description *string
	ImageURL    *string
	VideoURL    *string
	AudioURL    *string
}

type SetRecipeFavoriteParams struct {
	ID       int64
	Favorite bool
}

//go:generate mockgen -destination=../dbmock/querier.go -package=dbmock github.com/matt-dz/cookbox/internal/database Querier

// Querier is the set of statements the service issues against the recipes
// table. Each call is independently atomic.
type Querier interface {
	CreateRecipe(ctx context.Context, arg CreateRecipeParams) (Recipe, error)
	ListRecipes(ctx context.Context) ([]Recipe, error)
	ListFavoriteRecipes(ctx context.Context) ([]Recipe, error)
	SetRecipeFavorite(ctx context.Context, arg SetRecipeFavoriteParams) (Recipe, error)
	DeleteRecipe(ctx context.Context, id int64) error
}

// Database is the process-wide handle to the recipe store.
type Database struct {
	Querier

	// Close releases the underlying connection pool. It may be nil when the
	// Querier is not backed by a pool.
	Close func()
}

const (
	createRecipe = `INSERT INTO recipes (title, description, image_url, video_url, audio_url, favorite)
VALUES ($1, $2, $3, $4, $5, false)
RETURNING id, COALESCE(title, ''), description, image_url, video_url, audio_url, favorite`

	listRecipes = `SELECT id, COALESCE(title, ''), description, image_url, video_url, audio_url, favorite
FROM recipes
ORDER BY id DESC`

	listFavoriteRecipes = `SELECT id, COALESCE(title, ''), description, image_url, video_url, audio_url, favorite
FROM recipes
WHERE favorite = true
ORDER BY id DESC`

	setRecipeFavorite = `UPDATE recipes SET favorite = $1
WHERE id = $2
RETURNING id, COALESCE(title, ''), description, image_url, video_url, audio_url, favorite`

	deleteRecipe = `DELETE FROM recipes WHERE id = $1`
)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (Recipe, error) {
	var r Recipe
	err := row.Scan(
		&r.ID,
		&r.Title,
		&r.Description,
		&r.ImageURL,
		&r.VideoURL,
		&r.AudioURL,
		&r.Favorite,
	)
	return r, err
}
