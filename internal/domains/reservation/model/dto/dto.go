package dto

import (
	"time"

	guestDto "innkeep/internal/domains/guest/model/dto"
	"innkeep/internal/domains/reservation/model"
	roomDto "innkeep/internal/domains/room/model/dto"
	staffModel "innkeep/internal/domains/staff/model"
)

type CreateReservationRequest struct {
	RoomID        int64  `json:"roomId"        validate:"required,min=1"`
	CheckIn       string `json:"checkIn"       validate:"required,datetime=2006-01-02"`
	CheckOut      string `json:"checkOut"      validate:"required,datetime=2006-01-02"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=Cash Card GCash PayPal"`
}

func (c *CreateReservationRequest) Dates() (time.Time, time.Time, error) {
	checkIn, err := model.ParseDate(c.CheckIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	checkOut, err := model.ParseDate(c.CheckOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	return checkIn, checkOut, nil
}

type WalkInReservationRequest struct {
	Guest         guestDto.WalkInGuestRequest `json:"guest"         validate:"required"`
	RoomID        int64                       `json:"roomId"        validate:"required,min=1"`
	CheckIn       string                      `json:"checkIn"       validate:"required,datetime=2006-01-02"`
	CheckOut      string                      `json:"checkOut"      validate:"required,datetime=2006-01-02"`
	PaymentMethod string                      `json:"paymentMethod" validate:"required,oneof=Cash Card GCash PayPal"`
}

func (w *WalkInReservationRequest) Dates() (time.Time, time.Time, error) {
	req := CreateReservationRequest{CheckIn: w.CheckIn, CheckOut: w.CheckOut}

	return req.Dates()
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Booked CheckedIn CheckedOut Cancelled"`
}

type AvailabilityRequest struct {
	RoomID   int64  `json:"roomId"   validate:"required,min=1"`
	CheckIn  string `json:"checkIn"  validate:"required,datetime=2006-01-02"`
	CheckOut string `json:"checkOut" validate:"required,datetime=2006-01-02"`
}

type AvailabilityResponse struct {
	RoomID    int64 `json:"roomId"`
	Available bool  `json:"available"`
}

type UnavailableDateResponse struct {
	Date     string `json:"date"`
	Severity string `json:"severity"`
}

type PaymentResponse struct {
	ID     int64   `json:"paymentId"`
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
	Status string  `json:"status"`
}

type StaffResponse struct {
	ID       int64  `json:"staffId"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

type ReservationGuestResponse struct {
	Guest     guestDto.GuestResponse `json:"guest"`
	GuestType string                 `json:"guestType"`
}

type ReservationResponse struct {
	ID          int64                      `json:"reservationId"`
	Room        *roomDto.RoomResponse      `json:"room,omitempty"`
	Staff       *StaffResponse             `json:"staff,omitempty"`
	Guests      []ReservationGuestResponse `json:"guests"`
	Payments    []PaymentResponse          `json:"payments"`
	CheckIn     string                     `json:"checkIn"`
	CheckOut    string                     `json:"checkOut"`
	Nights      int                        `json:"nights"`
	Status      string                     `json:"status"`
	TotalAmount float64                    `json:"totalAmount"`
}

func newStaffResponse(staff *staffModel.Staff) *StaffResponse {
	if staff == nil {
		return nil
	}

	return &StaffResponse{
		ID:       staff.ID,
		FullName: staff.FullName(),
		Role:     staff.Role,
	}
}

func NewReservationResponse(res model.Reservation, nights int) ReservationResponse {
	out := ReservationResponse{
		ID:          res.ID,
		Staff:       newStaffResponse(res.Staff),
		Guests:      make([]ReservationGuestResponse, 0, len(res.Guests)),
		Payments:    make([]PaymentResponse, 0, len(res.Payments)),
		CheckIn:     model.FormatDate(res.CheckIn),
		CheckOut:    model.FormatDate(res.CheckOut),
		Nights:      nights,
		Status:      res.Status,
		TotalAmount: res.TotalAmount,
	}

	if res.Room != nil {
		room := roomDto.NewRoomResponse(*res.Room)
		out.Room = &room
	}

	for _, link := range res.Guests {
		out.Guests = append(out.Guests, ReservationGuestResponse{
			Guest:     guestDto.NewGuestResponse(link.Guest),
			GuestType: link.GuestType,
		})
	}

	for _, payment := range res.Payments {
		out.Payments = append(out.Payments, PaymentResponse{
			ID:     payment.ID,
			Amount: payment.Amount,
			Method: payment.Method,
			Status: payment.Status,
		})
	}

	return out
}
