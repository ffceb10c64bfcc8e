package dto

import (
	"fmt"
	"net/url"
	"strings"
)

// Filter operators map onto the backend's native predicate syntax
// (`field=eq.value`). No SQL is ever assembled client-side; the backend
// owns query planning and row-level access control.
const (
	FilterOperatorEq        = "eq"
	FilterOperatorNotEq     = "neq"
	FilterOperatorLike      = "like"
	FilterOperatorIn        = "in"
	FilterOperatorLessEq    = "lte"
	FilterOperatorGreaterEq = "gte"
	FilterOperatorLess      = "lt"
	FilterOperatorGreater   = "gt"
	FilterOperatorIs        = "is"
)

const (
	FilterGroupOperatorAnd = "and"
	FilterGroupOperatorOr  = "or"
)

type Filter struct {
	Field    string
	Value    any
	Operator string `validate:"required,oneof=eq neq like in lte gte lt gt is"`
}

// Predicate renders the filter as a single backend predicate fragment,
// e.g. "room_id=eq.3" or "status=in.(Booked,CheckedIn)".
func (f *Filter) Predicate() string {
	return fmt.Sprintf("%s=%s.%s", f.Field, f.Operator, url.QueryEscape(f.renderValue()))
}

// condition renders the filter in the nested form used inside grouped
// predicates, e.g. "room_id.eq.3".
func (f *Filter) condition() string {
	return fmt.Sprintf("%s.%s.%s", f.Field, f.Operator, f.renderValue())
}

func (f *Filter) renderValue() string {
	if values, ok := f.Value.([]string); ok && f.Operator == FilterOperatorIn {
		return "(" + strings.Join(values, ",") + ")"
	}

	if values, ok := f.Value.([]int64); ok && f.Operator == FilterOperatorIn {
		rendered := make([]string, len(values))
		for i, v := range values {
			rendered[i] = fmt.Sprintf("%d", v)
		}

		return "(" + strings.Join(rendered, ",") + ")"
	}

	return fmt.Sprintf("%v", f.Value)
}

// FilterGroup combines filters with a single logical operator. Flat AND
// groups render as separate query fragments; OR groups render as a single
// grouped predicate ("or=(a.eq.1,b.eq.2)").
type FilterGroup struct {
	Operator string `validate:"omitempty,oneof=and or"`
	Filters  []Filter
}

// Predicates renders the group as backend query-string fragments.
func (g *FilterGroup) Predicates() []string {
	if len(g.Filters) == 0 {
		return nil
	}

	if g.Operator == FilterGroupOperatorOr {
		conditions := make([]string, len(g.Filters))
		for i := range g.Filters {
			conditions[i] = g.Filters[i].condition()
		}

		return []string{"or=(" + url.QueryEscape(strings.Join(conditions, ",")) + ")"}
	}

	predicates := make([]string, len(g.Filters))
	for i := range g.Filters {
		predicates[i] = g.Filters[i].Predicate()
	}

	return predicates
}

// Encode joins the group's fragments into a query-string suffix.
func (g *FilterGroup) Encode() string {
	return strings.Join(g.Predicates(), "&")
}

// Empty reports whether the group holds no filters at all.
func (g *FilterGroup) Empty() bool {
	return len(g.Filters) == 0
}

// FilterBy builds a single-filter equality group.
func FilterBy(field string, value any) FilterGroup {
	return FilterGroup{
		Operator: FilterGroupOperatorAnd,
		Filters: []Filter{
			{
				Field:    field,
				Operator: FilterOperatorEq,
				Value:    value,
			},
		},
	}
}
