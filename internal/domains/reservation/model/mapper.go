package model

import (
	"fmt"
	"time"

	guestModel "innkeep/internal/domains/guest/model"
	roomModel "innkeep/internal/domains/room/model"
	staffModel "innkeep/internal/domains/staff/model"
	"innkeep/shared/constant"
	"innkeep/shared/timezone"
)

// Related carries the sibling collections a reservation record's
// foreign keys are resolved against. The data gateway reads one
// collection at a time, so relational assembly happens here.
type Related struct {
	Rooms    map[int64]roomModel.Room
	Staff    map[int64]staffModel.Staff
	Guests   map[int64]guestModel.Guest
	Links    map[int64][]GuestLinkRecord
	Payments map[int64][]PaymentRecord
}

// IndexLinks groups guest links by reservation id.
func IndexLinks(links []GuestLinkRecord) map[int64][]GuestLinkRecord {
	index := make(map[int64][]GuestLinkRecord)
	for _, link := range links {
		index[link.ReservationID] = append(index[link.ReservationID], link)
	}

	return index
}

// IndexPayments groups payments by reservation id.
func IndexPayments(payments []PaymentRecord) map[int64][]PaymentRecord {
	index := make(map[int64][]PaymentRecord)
	for _, payment := range payments {
		index[payment.ReservationID] = append(index[payment.ReservationID], payment)
	}

	return index
}

// IndexRooms keys rooms by id.
func IndexRooms(rooms []roomModel.Room) map[int64]roomModel.Room {
	index := make(map[int64]roomModel.Room, len(rooms))
	for _, room := range rooms {
		index[room.ID] = room
	}

	return index
}

// IndexStaff keys staff by id.
func IndexStaff(staff []staffModel.Staff) map[int64]staffModel.Staff {
	index := make(map[int64]staffModel.Staff, len(staff))
	for _, member := range staff {
		index[member.ID] = member
	}

	return index
}

// IndexGuests keys guests by id.
func IndexGuests(guests []guestModel.Guest) map[int64]guestModel.Guest {
	index := make(map[int64]guestModel.Guest, len(guests))
	for _, guest := range guests {
		index[guest.ID] = guest
	}

	return index
}

// FromWire assembles the domain reservation from its flat record.
// Unknown foreign keys resolve to nil relations rather than failing
// the read; only unparseable dates are an error.
func FromWire(rec ReservationRecord, rel Related) (Reservation, error) {
	checkIn, err := ParseDate(rec.CheckIn)
	if err != nil {
		return Reservation{}, fmt.Errorf("reservation %d: invalid check_in: %w", rec.ID, err)
	}

	checkOut, err := ParseDate(rec.CheckOut)
	if err != nil {
		return Reservation{}, fmt.Errorf("reservation %d: invalid check_out: %w", rec.ID, err)
	}

	res := Reservation{
		ID:          rec.ID,
		RoomID:      rec.RoomID,
		StaffID:     rec.StaffID,
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		Status:      rec.Status,
		TotalAmount: rec.TotalAmount,
	}

	if room, ok := rel.Rooms[rec.RoomID]; ok {
		res.Room = &room
	}

	if rec.StaffID != nil {
		if member, ok := rel.Staff[*rec.StaffID]; ok {
			res.Staff = &member
		}
	}

	for _, link := range rel.Links[rec.ID] {
		guest, ok := rel.Guests[link.GuestID]
		if !ok {
			continue
		}

		res.Guests = append(res.Guests, ReservationGuest{
			Guest:     guest,
			GuestType: link.GuestType,
		})
	}

	res.Payments = rel.Payments[rec.ID]

	return res, nil
}

// ParseDate accepts the backend's date-only form and the timestamp
// form some columns round-trip as. Either way the result is midnight
// in the application timezone: lifecycle comparisons (auto check-in,
// the checkout sweep) are date-only against timezone.Today(), so both
// sides must share a location.
func ParseDate(value string) (time.Time, error) {
	if t, err := timezone.Parse(constant.DateFormat, value); err == nil {
		return t, nil
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}

	return timezone.Midnight(t), nil
}

// FormatDate renders the wire date-only form.
func FormatDate(t time.Time) string {
	return timezone.Format(t, constant.DateFormat)
}
