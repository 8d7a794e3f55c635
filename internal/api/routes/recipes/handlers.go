// Package recipes contains handlers for the recipes endpoint.
package recipes

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	apiError "github.com/matt-dz/cookbox/internal/api/error"
	"github.com/matt-dz/cookbox/internal/api/requestid"
	"github.com/matt-dz/cookbox/internal/database"
	"github.com/matt-dz/cookbox/internal/env"
	"github.com/matt-dz/cookbox/internal/form"
	mJson "github.com/matt-dz/cookbox/internal/json"
	"github.com/matt-dz/cookbox/internal/recipe"

	"github.com/go-playground/validator/v10"
)

const (
	maxFormMemory   = 32 << 20 // parts beyond this spill to temp files
	maxJSONBodySize = 1 << 20
	recipeIDParam   = "recipeID"
)

// Handler serves the recipe routes from the dependencies in its environment.
type Handler struct {
	env      *env.Env
	validate *validator.Validate
}

func NewHandler(e *env.Env) *Handler {
	return &Handler{
		env:      e,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// CreateRecipe godoc
//
//	@Summary		Create a recipe
//	@Description	Stores the submitted media files and creates a recipe whose media URLs point at them.
//	@Tags			Recipes
//	@Accept			multipart/form-data
//	@Accept			x-www-form-urlencoded
//	@Produce		json
//	@Param			title		formData	string	true	"Recipe title"
//	@Param			description	formData	string	false	"Recipe description"
//	@Param			image		formData	file	false	"Image attachment"
//	@Param			video		formData	file	false	"Video attachment"
//	@Param			audio		formData	file	false	"Audio attachment"
//	@Success		200			{object}	RecipeResponse
//	@Failure		400			{object}	apiError.Error
//	@Failure		413			{object}	apiError.Error
//	@Failure		500			{object}	apiError.Error
//	@Router			/recipes [POST]
func (h *Handler) CreateRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestid.String(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, h.env.Config.Fileserver.MaxUploadSize)
	err := r.ParseMultipartForm(maxFormMemory)
	if errors.Is(err, http.ErrNotMultipart) {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.env.Logger.WarnContext(ctx, "request body too large", slog.Int64("limit", tooLarge.Limit))
			_ = apiError.EncodeError(w, apiError.RequestTooLarge, "request body too large", requestID)
			return
		}
		h.env.Logger.ErrorContext(ctx, "failed to parse form", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid form body", requestID)
		return
	}

	request := CreateRecipeRequest{
		Title:       form.Value(r.PostForm, "title"),
		Description: form.Value(r.PostForm, "description"),
	}
	if err := h.validate.Struct(request); err != nil {
		h.env.Logger.ErrorContext(ctx, "invalid create recipe request", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "title is required", requestID)
		return
	}

	h.env.Logger.DebugContext(ctx, "storing media")
	media, err := recipe.IngestMedia(ctx, h.env.Logger, h.env.FileStore, r.MultipartForm)
	if errors.Is(err, form.ErrTooManyFiles) {
		h.env.Logger.ErrorContext(ctx, "too many files in a media field", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, err.Error(), requestID)
		return
	} else if err != nil {
		h.env.Logger.ErrorContext(ctx, "failed to store media", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID, err)
		return
	}

	scheme, host := requestOrigin(r, h.env.Config.Server.TrustProxy)
	fs := h.env.FileStore

	h.env.Logger.DebugContext(ctx, "creating recipe")
	created, err := h.env.Database.CreateRecipe(ctx, database.CreateRecipeParams{
		Title:       *request.Title,
		Description: request.Description,
		ImageURL:    fs.ResolveURL(scheme, host, media.Image),
		VideoURL:    fs.ResolveURL(scheme, host, media.Video),
		AudioURL:    fs.ResolveURL(scheme, host, media.Audio),
	})
	if err != nil {
		h.env.Logger.ErrorContext(ctx, "failed to create recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID, err)
		return
	}

	if err := mJson.WriteJSON(w, http.StatusOK, RecipeResponse(created)); err != nil {
		h.env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// ListRecipes godoc
//
//	@Summary	List recipes
//	@Tags		Recipes
//	@Produce	json
//	@Success	200	{array}		RecipeResponse
//	@Failure	500	{object}	apiError.Error
//	@Router		/recipes [GET]
func (h *Handler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.env.Database.ListRecipes)
}

// ListFavorites godoc
//
//	@Summary	List favorite recipes
//	@Tags		Recipes
//	@Produce	json
//	@Success	200	{array}		RecipeResponse
//	@Failure	500	{object}	apiError.Error
//	@Router		/favorites [GET]
func (h *Handler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.env.Database.ListFavoriteRecipes)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request, query func(ctx context.Context) ([]database.Recipe, error)) {
	ctx := r.Context()

	recipes, err := query(ctx)
	if err != nil {
		h.env.Logger.ErrorContext(ctx, "failed to list recipes", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestid.String(ctx), err)
		return
	}

	resp := make([]RecipeResponse, len(recipes))
	for i, rec := range recipes {
		resp[i] = RecipeResponse(rec)
	}
	if err := mJson.WriteJSON(w, http.StatusOK, resp); err != nil {
		h.env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// SetFavorite godoc
//
//	@Summary	Set the favorite flag of a recipe
//	@Tags		Recipes
//	@Accept		json
//	@Produce	json
//	@Param		recipeID	path		int					true	"Recipe ID"
//	@Param		request		body		SetFavoriteRequest	true	"Favorite flag"
//	@Success	200			{object}	RecipeResponse
//	@Failure	400			{object}	apiError.Error
//	@Failure	404			{object}	apiError.Error
//	@Failure	500			{object}	apiError.Error
//	@Router		/recipes/{recipeID}/favorite [PATCH]
func (h *Handler) SetFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestid.String(ctx)

	id, err := parseRecipeID(chi.URLParam(r, recipeIDParam))
	if err != nil {
		h.env.Logger.ErrorContext(ctx, "invalid recipe id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, err.Error(), requestID)
		return
	}

	var request SetFavoriteRequest
	if err := mJson.DecodeJSON(&request, http.MaxBytesReader(w, r.Body, maxJSONBodySize)); err != nil {
		h.env.Logger.ErrorContext(ctx, "failed to decode request", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "invalid request body", requestID)
		return
	}
	if err := h.validate.Struct(request); err != nil {
		h.env.Logger.ErrorContext(ctx, "invalid set favorite request", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, "favorite must be a boolean", requestID)
		return
	}

	updated, err := h.env.Database.SetRecipeFavorite(ctx, database.SetRecipeFavoriteParams{
		ID:       id,
		Favorite: *request.Favorite,
	})
	if errors.Is(err, database.ErrRecipeNotFound) {
		h.env.Logger.ErrorContext(ctx, "recipe not found", slog.Int64("recipe_id", id))
		_ = apiError.EncodeError(w, apiError.RecipeNotFound, "recipe not found", requestID)
		return
	} else if err != nil {
		h.env.Logger.ErrorContext(ctx, "failed to set favorite", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID, err)
		return
	}

	if err := mJson.WriteJSON(w, http.StatusOK, RecipeResponse(updated)); err != nil {
		h.env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// DeleteRecipe godoc
//
//	@Summary		Delete a recipe
//	@Description	Deleting a recipe that does not exist succeeds.
//	@Tags			Recipes
//	@Produce		json
//	@Param			recipeID	path		int	true	"Recipe ID"
//	@Success		200			{object}	DeleteRecipeResponse
//	@Failure		400			{object}	apiError.Error
//	@Failure		500			{object}	apiError.Error
//	@Router			/recipes/{recipeID} [DELETE]
func (h *Handler) DeleteRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestid.String(ctx)

	id, err := parseRecipeID(chi.URLParam(r, recipeIDParam))
	if err != nil {
		h.env.Logger.ErrorContext(ctx, "invalid recipe id", slog.Any("error", err))
		_ = apiError.EncodeError(w, apiError.BadRequest, err.Error(), requestID)
		return
	}

	if err := h.env.Database.DeleteRecipe(ctx, id); err != nil {
		h.env.Logger.ErrorContext(ctx, "failed to delete recipe", slog.Any("error", err))
		_ = apiError.EncodeInternalError(w, requestID, err)
		return
	}

	if err := mJson.WriteJSON(w, http.StatusOK, DeleteRecipeResponse{Message: "recipe deleted"}); err != nil {
		h.env.Logger.ErrorContext(ctx, "failed to write response", slog.Any("error", err))
	}
}

// requestOrigin returns the scheme and host the client used to reach the
// service. Forwarded headers are honored only behind a trusted proxy.
func requestOrigin(r *http.Request, trustProxy bool) (scheme, host string) {
	scheme, host = "http", r.Host
	if r.TLS != nil {
		scheme = "https"
	}
	if !trustProxy {
		return scheme, host
	}
	if v := firstValue(r.Header.Get("X-Forwarded-Proto")); v != "" {
		scheme = strings.ToLower(v)
	}
	if v := firstValue(r.Header.Get("X-Forwarded-Host")); v != "" {
		host = v
	}
	return scheme, host
}

func firstValue(header string) string {
	first, _, _ := strings.Cut(header, ",")
	return strings.TrimSpace(first)
}
