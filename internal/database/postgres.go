package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the subset of pgxpool.Pool used by the Postgres gateway.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Postgres is the Querier backed by a pgx connection pool.
type Postgres struct {
	db DBTX
}

func NewPostgres(db DBTX) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) CreateRecipe(ctx context.Context, arg CreateRecipeParams) (Recipe, error) {
	row := p.db.QueryRow(ctx, createRecipe,
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

func (p *Postgres) ListRecipes(ctx context.Context) ([]Recipe, error) {
	recipes, err := p.list(ctx, listRecipes)
	if err != nil {
		return nil, storeError("list recipes", err)
	}
	return recipes, nil
}

func (p *Postgres) ListFavoriteRecipes(ctx context.Context) ([]Recipe, error) {
	recipes, err := p.list(ctx, listFavoriteRecipes)
	if err != nil {
		return nil, storeError("list favorite recipes", err)
	}
	return recipes, nil
}

func (p *Postgres) list(ctx context.Context, query string) ([]Recipe, error) {
	rows, err := p.db.Query(ctx, query)
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

func (p *Postgres) SetRecipeFavorite(ctx context.Context, arg SetRecipeFavoriteParams) (Recipe, error) {
	r, err := scanRecipe(p.db.QueryRow(ctx, setRecipeFavorite, arg.Favorite, arg.ID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Recipe{}, ErrRecipeNotFound
	}
	if err != nil {
		return Recipe{}, storeError("set recipe favorite", err)
	}
	return r, nil
}

func (p *Postgres) DeleteRecipe(ctx context.Context, id int64) error {
	if _, err := p.db.Exec(ctx, deleteRecipe, id); err != nil {
		return storeError("delete recipe", err)
	}
	return nil
}
