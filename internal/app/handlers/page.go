package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/linemk/shop-catalog/internal/domain/models"
)

// pageQuery: параметры пагинации из query string
type pageQuery struct {
	Limit  int64 `query:"limit" validate:"gte=1"`
	Offset int64 `query:"offset" validate:"gte=0"`
}

// parsePage читает limit/offset, подставляя значения по умолчанию.
// Ошибка содержит имя параметра и подходит для ответа 400.
func parsePage(r *http.Request, defaultLimit int64) (models.Page, error) {
	q := pageQuery{Limit: defaultLimit}

	values := r.URL.Query()
	if raw := values.Get("limit"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return models.Page{}, fmt.Errorf("invalid query parameter limit: %q is not an integer", raw)
		}
		q.Limit = v
	}
	if raw := values.Get("offset"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return models.Page{}, fmt.Errorf("invalid query parameter offset: %q is not an integer", raw)
		}
		q.Offset = v
	}

	if err := validate.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return models.Page{}, fmt.Errorf("invalid query parameter %s: must be >= %s", fe.Field(), fe.Param())
		}
		return models.Page{}, fmt.Errorf("invalid query parameters: %w", err)
	}

	return models.Page{Limit: q.Limit, Offset: q.Offset}, nil
}
