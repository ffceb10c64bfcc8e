// Package state holds the pure reservation rules: the status state
// machine, date-range availability, and pricing. Nothing here touches
// the backend or the in-memory collections.
package state

import (
	"math"
	"sort"
	"time"

	"innkeep/internal/domains/reservation/model"
	roomModel "innkeep/internal/domains/room/model"
)

var transitions = map[string][]string{
	model.StatusPending:   {model.StatusBooked, model.StatusCancelled},
	model.StatusBooked:    {model.StatusCheckedIn, model.StatusCancelled},
	model.StatusCheckedIn: {model.StatusCheckedOut, model.StatusCancelled},
}

// CanTransition reports whether from → to is a legal single step.
// Terminal statuses have no outgoing edges.
func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}

	return false
}

// ActionFor names the audit-log action a transition records.
func ActionFor(from, to string) string {
	switch {
	case from == model.StatusPending && to == model.StatusBooked:
		return model.ActionApproved
	case from == model.StatusPending && to == model.StatusCancelled:
		return model.ActionRejected
	case to == model.StatusCheckedIn:
		return model.ActionCheckedIn
	case to == model.StatusCheckedOut:
		return model.ActionCheckedOut
	case to == model.StatusCancelled:
		return model.ActionCancelled
	}

	return to
}

// RoomStatusAfter returns the derived room status a transition implies,
// or false when the room is untouched. Cancellation frees the room
// defensively even when it was never marked occupied.
func RoomStatusAfter(to string) (string, bool) {
	switch to {
	case model.StatusCheckedIn:
		return roomModel.StatusOccupied, true
	case model.StatusCheckedOut, model.StatusCancelled:
		return roomModel.StatusAvailable, true
	}

	return "", false
}

// ShouldAutoCheckIn reports whether an approval must immediately
// re-promote to CheckedIn: the stay has already started, date-only.
func ShouldAutoCheckIn(checkIn, today time.Time) bool {
	return !checkIn.After(today)
}

// DueForCheckout reports whether the sweep must force-expire the
// reservation: an occupying status whose check-out date is today or
// earlier, time of day ignored.
func DueForCheckout(res model.Reservation, today time.Time) bool {
	if !model.Active(res.Status) {
		return false
	}

	return !res.CheckOut.After(today)
}

// Overlaps applies half-open interval semantics: [aStart, aEnd) and
// [bStart, bEnd) conflict iff aStart < bEnd and aEnd > bStart, so
// back-to-back stays sharing a boundary date never collide.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}

// Conflicts reports whether an existing reservation blocks the
// candidate range on the given room. Terminal reservations never
// conflict regardless of dates.
func Conflicts(res model.Reservation, roomID int64, checkIn, checkOut time.Time) bool {
	if res.RoomID != roomID || model.Terminal(res.Status) {
		return false
	}

	return Overlaps(checkIn, checkOut, res.CheckIn, res.CheckOut)
}

// IsAvailable scans the reservation collection for a conflict on the
// room and candidate range. Maintenance is a room-level override
// checked separately by the caller.
func IsAvailable(reservations []model.Reservation, roomID int64, checkIn, checkOut time.Time) bool {
	for _, res := range reservations {
		if Conflicts(res, roomID, checkIn, checkOut) {
			return false
		}
	}

	return true
}

// UnavailableDate is one blocked calendar day with its severity:
// a confirmed stay (Booked/CheckedIn) or a pending request.
type UnavailableDate struct {
	Date    time.Time
	Pending bool
}

// UnavailableDates expands every non-terminal reservation's range on
// the room into individual days. A day covered by both a confirmed
// stay and a pending request reports as confirmed.
func UnavailableDates(reservations []model.Reservation, roomID int64) []UnavailableDate {
	severity := map[time.Time]bool{}

	for _, res := range reservations {
		if res.RoomID != roomID || model.Terminal(res.Status) {
			continue
		}

		pending := res.Status == model.StatusPending
		for day := res.CheckIn; day.Before(res.CheckOut); day = day.AddDate(0, 0, 1) {
			if current, seen := severity[day]; seen && !current {
				continue
			}

			severity[day] = pending
		}
	}

	dates := make([]UnavailableDate, 0, len(severity))
	for day, pending := range severity {
		dates = append(dates, UnavailableDate{Date: day, Pending: pending})
	}

	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Date.Before(dates[j].Date)
	})

	return dates
}

// Nights computes the billable night count: the ceiling of the date
// difference, clamped to a minimum of one night when the range is
// inverted or empty.
func Nights(checkIn, checkOut time.Time) int {
	nights := int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
	if nights < 1 {
		return 1
	}

	return nights
}

// ComputeTotal prices a stay at the room's current nightly rate.
func ComputeTotal(rate float64, checkIn, checkOut time.Time) float64 {
	return rate * float64(Nights(checkIn, checkOut))
}
