package recipes

import (
	"errors"
	"strconv"
	"strings"
)

var errRecipeIDNotInteger = errors.New("recipe id should be an integer")

func parseRecipeID(raw string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, errRecipeIDNotInteger
	}
	return v, nil
}

// CreateRecipeRequest holds the text fields of a recipe submission. Title is
// required to be present but may be empty.
type CreateRecipeRequest struct {
	Title       *string `validate:"required"`
	Description *string `validate:"omitempty"`
}

type SetFavoriteRequest struct {
	Favorite *bool `json:"favorite" validate:"required"`
}
