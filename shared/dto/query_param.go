package dto

import (
	"fmt"
	"net/http"
	"strings"
)

const (
	SortDirAsc  = "asc"
	SortDirDesc = "desc"
)

// OrderParams captures the ordering of a collection read. The backend's
// order expression syntax is "column.direction".
type OrderParams struct {
	SortBy  string `json:"sort_by"  validate:"omitempty"`
	SortDir string `json:"sort_dir" validate:"omitempty,oneof=asc desc"`
}

// FromRequest populates OrderParams from the HTTP request query.
func (o *OrderParams) FromRequest(r *http.Request) {
	query := r.URL.Query()

	if sortBy := query.Get("sort_by"); sortBy != "" {
		o.SortBy = sortBy
	}

	if sortDir := strings.ToLower(query.Get("sort_dir")); sortDir == SortDirAsc || sortDir == SortDirDesc {
		o.SortDir = sortDir
	}
}

// Expression renders the backend-native order fragment, or "" when unset.
func (o *OrderParams) Expression() string {
	if o.SortBy == "" {
		return ""
	}

	dir := o.SortDir
	if dir == "" {
		dir = SortDirAsc
	}

	return fmt.Sprintf("%s.%s", o.SortBy, dir)
}

// OrderBy builds an OrderParams for a fixed column and direction.
func OrderBy(column, direction string) OrderParams {
	return OrderParams{
		SortBy:  column,
		SortDir: direction,
	}
}
