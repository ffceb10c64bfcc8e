package state_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"innkeep/internal/domains/reservation/model"
	"innkeep/internal/domains/reservation/state"
	roomModel "innkeep/internal/domains/room/model"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}

	return t
}

func TestCanTransition(t *testing.T) {
	legal := [][2]string{
		{model.StatusPending, model.StatusBooked},
		{model.StatusPending, model.StatusCancelled},
		{model.StatusBooked, model.StatusCheckedIn},
		{model.StatusBooked, model.StatusCancelled},
		{model.StatusCheckedIn, model.StatusCheckedOut},
		{model.StatusCheckedIn, model.StatusCancelled},
	}

	for _, step := range legal {
		assert.True(t, state.CanTransition(step[0], step[1]), "%s -> %s should be legal", step[0], step[1])
	}

	illegal := [][2]string{
		{model.StatusPending, model.StatusCheckedIn},
		{model.StatusPending, model.StatusCheckedOut},
		{model.StatusBooked, model.StatusCheckedOut},
		{model.StatusBooked, model.StatusPending},
		{model.StatusCheckedIn, model.StatusBooked},
		{model.StatusCheckedOut, model.StatusCancelled},
		{model.StatusCheckedOut, model.StatusBooked},
		{model.StatusCancelled, model.StatusPending},
		{model.StatusCancelled, model.StatusBooked},
	}

	for _, step := range illegal {
		assert.False(t, state.CanTransition(step[0], step[1]), "%s -> %s should be rejected", step[0], step[1])
	}
}

func TestActionFor(t *testing.T) {
	assert.Equal(t, model.ActionApproved, state.ActionFor(model.StatusPending, model.StatusBooked))
	assert.Equal(t, model.ActionRejected, state.ActionFor(model.StatusPending, model.StatusCancelled))
	assert.Equal(t, model.ActionCheckedIn, state.ActionFor(model.StatusBooked, model.StatusCheckedIn))
	assert.Equal(t, model.ActionCheckedOut, state.ActionFor(model.StatusCheckedIn, model.StatusCheckedOut))
	assert.Equal(t, model.ActionCancelled, state.ActionFor(model.StatusBooked, model.StatusCancelled))
}

func TestRoomStatusAfter(t *testing.T) {
	status, ok := state.RoomStatusAfter(model.StatusCheckedIn)
	assert.True(t, ok)
	assert.Equal(t, roomModel.StatusOccupied, status)

	status, ok = state.RoomStatusAfter(model.StatusCheckedOut)
	assert.True(t, ok)
	assert.Equal(t, roomModel.StatusAvailable, status)

	status, ok = state.RoomStatusAfter(model.StatusCancelled)
	assert.True(t, ok)
	assert.Equal(t, roomModel.StatusAvailable, status)

	_, ok = state.RoomStatusAfter(model.StatusBooked)
	assert.False(t, ok)
}

func TestShouldAutoCheckIn(t *testing.T) {
	assert.True(t, state.ShouldAutoCheckIn(date("2025-07-01"), date("2025-07-01")))
	assert.True(t, state.ShouldAutoCheckIn(date("2025-06-30"), date("2025-07-01")))
	assert.False(t, state.ShouldAutoCheckIn(date("2025-07-02"), date("2025-07-01")))
}

func TestDueForCheckout(t *testing.T) {
	today := date("2025-07-03")

	base := model.Reservation{
		RoomID:   1,
		CheckIn:  date("2025-07-01"),
		CheckOut: date("2025-07-03"),
	}

	for _, status := range []string{model.StatusBooked, model.StatusCheckedIn} {
		res := base
		res.Status = status
		assert.True(t, state.DueForCheckout(res, today), status)
	}

	for _, status := range []string{model.StatusPending, model.StatusCheckedOut, model.StatusCancelled} {
		res := base
		res.Status = status
		assert.False(t, state.DueForCheckout(res, today), status)
	}

	future := base
	future.Status = model.StatusCheckedIn
	future.CheckOut = date("2025-07-04")
	assert.False(t, state.DueForCheckout(future, today))
}

func TestIsAvailable(t *testing.T) {
	existing := []model.Reservation{
		{ID: 1, RoomID: 101, Status: model.StatusBooked, CheckIn: date("2025-07-10"), CheckOut: date("2025-07-15")},
		{ID: 2, RoomID: 101, Status: model.StatusCancelled, CheckIn: date("2025-07-01"), CheckOut: date("2025-07-31")},
		{ID: 3, RoomID: 101, Status: model.StatusCheckedOut, CheckIn: date("2025-07-01"), CheckOut: date("2025-07-31")},
		{ID: 4, RoomID: 202, Status: model.StatusBooked, CheckIn: date("2025-07-10"), CheckOut: date("2025-07-15")},
	}

	tests := []struct {
		name     string
		roomID   int64
		checkIn  string
		checkOut string
		want     bool
	}{
		{"overlap start", 101, "2025-07-08", "2025-07-11", false},
		{"overlap end", 101, "2025-07-14", "2025-07-20", false},
		{"contained", 101, "2025-07-11", "2025-07-12", false},
		{"containing", 101, "2025-07-09", "2025-07-16", false},
		{"adjacent before is not a conflict", 101, "2025-07-05", "2025-07-10", true},
		{"adjacent after is not a conflict", 101, "2025-07-15", "2025-07-20", true},
		{"terminal statuses never conflict", 101, "2025-07-20", "2025-07-25", true},
		{"other room does not conflict", 303, "2025-07-10", "2025-07-15", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := state.IsAvailable(existing, tt.roomID, date(tt.checkIn), date(tt.checkOut))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnavailableDates(t *testing.T) {
	reservations := []model.Reservation{
		{ID: 1, RoomID: 101, Status: model.StatusBooked, CheckIn: date("2025-07-01"), CheckOut: date("2025-07-03")},
		{ID: 2, RoomID: 101, Status: model.StatusPending, CheckIn: date("2025-07-02"), CheckOut: date("2025-07-05")},
		{ID: 3, RoomID: 101, Status: model.StatusCancelled, CheckIn: date("2025-07-10"), CheckOut: date("2025-07-12")},
		{ID: 4, RoomID: 202, Status: model.StatusBooked, CheckIn: date("2025-07-01"), CheckOut: date("2025-07-02")},
	}

	dates := state.UnavailableDates(reservations, 101)

	assert.Len(t, dates, 4)

	byDay := map[string]bool{}
	for _, day := range dates {
		byDay[day.Date.Format("2006-01-02")] = day.Pending
	}

	// confirmed wins on the overlapping day
	assert.Equal(t, false, byDay["2025-07-01"])
	assert.Equal(t, false, byDay["2025-07-02"])
	assert.Equal(t, true, byDay["2025-07-03"])
	assert.Equal(t, true, byDay["2025-07-04"])

	// cancelled range contributes nothing
	assert.NotContains(t, byDay, "2025-07-10")

	// sorted ascending
	for i := 1; i < len(dates); i++ {
		assert.True(t, dates[i-1].Date.Before(dates[i].Date))
	}
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  string
		checkOut string
		want     int
	}{
		{"two nights", "2025-07-01", "2025-07-03", 2},
		{"one night", "2025-07-01", "2025-07-02", 1},
		{"same day clamps to one", "2025-07-01", "2025-07-01", 1},
		{"inverted clamps to one", "2025-07-03", "2025-07-01", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, state.Nights(date(tt.checkIn), date(tt.checkOut)))
		})
	}
}

func TestComputeTotal(t *testing.T) {
	assert.Equal(t, 5400.0, state.ComputeTotal(1800, date("2025-07-01"), date("2025-07-04")))
	assert.Equal(t, 2400.0, state.ComputeTotal(1200, date("2025-07-01"), date("2025-07-03")))
	assert.Equal(t, 1200.0, state.ComputeTotal(1200, date("2025-07-01"), date("2025-07-01")))
}
