package recipes

import (
	"github.com/matt-dz/cookbox/internal/database"
)

type RecipeResponse database.Recipe

type DeleteRecipeResponse struct {
	Message string `json:"message"`
}
