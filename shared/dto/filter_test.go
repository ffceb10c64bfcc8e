package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"innkeep/shared/dto"
)

func TestFilter_Predicate(t *testing.T) {
	tests := []struct {
		name   string
		filter dto.Filter
		want   string
	}{
		{
			name:   "equality",
			filter: dto.Filter{Field: "room_id", Operator: dto.FilterOperatorEq, Value: int64(3)},
			want:   "room_id=eq.3",
		},
		{
			name:   "string equality",
			filter: dto.Filter{Field: "email", Operator: dto.FilterOperatorEq, Value: "ana@example.com"},
			want:   "email=eq.ana%40example.com",
		},
		{
			name:   "in list of statuses",
			filter: dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{"Booked", "CheckedIn"}},
			want:   "status=in.%28Booked%2CCheckedIn%29",
		},
		{
			name:   "in list of ids",
			filter: dto.Filter{Field: "reservation_id", Operator: dto.FilterOperatorIn, Value: []int64{5, 9}},
			want:   "reservation_id=in.%285%2C9%29",
		},
		{
			name:   "date upper bound",
			filter: dto.Filter{Field: "check_out", Operator: dto.FilterOperatorLessEq, Value: "2025-07-03"},
			want:   "check_out=lte.2025-07-03",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Predicate())
		})
	}
}

func TestFilterGroup_Predicates(t *testing.T) {
	t.Run("and group renders separate fragments", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorAnd,
			Filters: []dto.Filter{
				{Field: "room_id", Operator: dto.FilterOperatorEq, Value: int64(1)},
				{Field: "status", Operator: dto.FilterOperatorNotEq, Value: "Cancelled"},
			},
		}

		assert.Equal(t, []string{"room_id=eq.1", "status=neq.Cancelled"}, group.Predicates())
		assert.Equal(t, "room_id=eq.1&status=neq.Cancelled", group.Encode())
	})

	t.Run("or group renders one grouped fragment", func(t *testing.T) {
		group := dto.FilterGroup{
			Operator: dto.FilterGroupOperatorOr,
			Filters: []dto.Filter{
				{Field: "status", Operator: dto.FilterOperatorEq, Value: "Booked"},
				{Field: "status", Operator: dto.FilterOperatorEq, Value: "CheckedIn"},
			},
		}

		predicates := group.Predicates()
		assert.Len(t, predicates, 1)
		assert.Equal(t, "or=(status.eq.Booked%2Cstatus.eq.CheckedIn)", predicates[0])
	})

	t.Run("empty group", func(t *testing.T) {
		group := dto.FilterGroup{}

		assert.True(t, group.Empty())
		assert.Nil(t, group.Predicates())
	})
}

func TestOrderParams_Expression(t *testing.T) {
	assert.Equal(t, "", (&dto.OrderParams{}).Expression())

	order := dto.OrderBy("created_at", dto.SortDirDesc)
	assert.Equal(t, "created_at.desc", order.Expression())

	defaulted := dto.OrderParams{SortBy: "check_in"}
	assert.Equal(t, "check_in.asc", defaulted.Expression())
}
