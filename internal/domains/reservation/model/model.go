package model

import (
	"time"

	guestModel "innkeep/internal/domains/guest/model"
	roomModel "innkeep/internal/domains/room/model"
	staffModel "innkeep/internal/domains/staff/model"
)

const (
	TableName  = "reservation"
	EntityName = "reservation"

	FieldID       = "reservation_id"
	FieldRoomID   = "room_id"
	FieldStaffID  = "staff_id"
	FieldCheckIn  = "check_in"
	FieldCheckOut = "check_out"
	FieldStatus   = "status"
	FieldTotal    = "total_amount"

	PaymentTableName   = "payment"
	GuestLinkTableName = "reservationguest"
	LogTableName       = "reservationlog"
)

const (
	StatusPending    = "Pending"
	StatusBooked     = "Booked"
	StatusCheckedIn  = "CheckedIn"
	StatusCheckedOut = "CheckedOut"
	StatusCancelled  = "Cancelled"
)

const (
	PaymentMethodCash   = "Cash"
	PaymentMethodCard   = "Card"
	PaymentMethodGCash  = "GCash"
	PaymentMethodPayPal = "PayPal"

	PaymentStatusPending = "Pending"
	PaymentStatusPaid    = "Paid"
)

const (
	GuestTypePrimary   = "Primary"
	GuestTypeCompanion = "Companion"
)

const (
	ActionApproved     = "Approved"
	ActionRejected     = "Rejected"
	ActionCheckedIn    = "Checked In"
	ActionCheckedOut   = "Checked Out"
	ActionCancelled    = "Cancelled"
	ActionWalkIn       = "Walk-In Created"
	ActionAutoCheckout = "Auto Checked Out"
)

// ReservationRecord is the flat wire shape; dates travel as date-only
// strings.
type ReservationRecord struct {
	ID          int64   `json:"reservation_id"`
	RoomID      int64   `json:"room_id"`
	StaffID     *int64  `json:"staff_id"`
	CheckIn     string  `json:"check_in"`
	CheckOut    string  `json:"check_out"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
}

type PaymentRecord struct {
	ID            int64   `json:"payment_id"`
	ReservationID int64   `json:"reservation_id"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	Status        string  `json:"status"`
}

type GuestLinkRecord struct {
	ID            int64  `json:"resguest_id"`
	ReservationID int64  `json:"reservation_id"`
	GuestID       int64  `json:"guest_id"`
	GuestType     string `json:"guest_type"`
}

type LogRecord struct {
	ReservationID  int64  `json:"reservation_id"`
	StaffID        *int64 `json:"staff_id"`
	Action         string `json:"action"`
	PreviousStatus string `json:"previous_status"`
	NewStatus      string `json:"new_status"`
}

// Reservation is the assembled domain entity with its relations
// resolved in memory.
type Reservation struct {
	ID          int64
	RoomID      int64
	StaffID     *int64
	CheckIn     time.Time
	CheckOut    time.Time
	Status      string
	TotalAmount float64

	Room     *roomModel.Room
	Staff    *staffModel.Staff
	Guests   []ReservationGuest
	Payments []PaymentRecord

	// Version increases on every authoritative write applied to this
	// row, so a stale patch can never clobber fresher state.
	Version uint64
}

type ReservationGuest struct {
	Guest     guestModel.Guest
	GuestType string
}

// PrimaryGuest returns the primary occupant when linked.
func (r Reservation) PrimaryGuest() (guestModel.Guest, bool) {
	for _, link := range r.Guests {
		if link.GuestType == GuestTypePrimary {
			return link.Guest, true
		}
	}

	if len(r.Guests) > 0 {
		return r.Guests[0].Guest, true
	}

	return guestModel.Guest{}, false
}

// Terminal reports whether the status has no outgoing transitions.
func Terminal(status string) bool {
	return status == StatusCheckedOut || status == StatusCancelled
}

// Active reports the statuses that occupy a room for revenue purposes.
func Active(status string) bool {
	return status == StatusBooked || status == StatusCheckedIn
}

// CountsTowardRevenue reports whether the reservation's amount belongs
// in revenue figures.
func CountsTowardRevenue(status string) bool {
	return status == StatusBooked || status == StatusCheckedIn || status == StatusCheckedOut
}

func ValidPaymentMethod(method string) bool {
	switch method {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodGCash, PaymentMethodPayPal:
		return true
	}

	return false
}
