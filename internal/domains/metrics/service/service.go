package service

import (
	"context"

	"innkeep/infras/otel"
	"innkeep/internal/domains/reservation/model"
	resService "innkeep/internal/domains/reservation/service"
	roomModel "innkeep/internal/domains/room/model"
	"innkeep/shared/constant"
)

type Dashboard struct {
	TotalRevenue       float64            `json:"totalRevenue"`
	ActiveReservations int                `json:"activeReservations"`
	AvailableRooms     int                `json:"availableRooms"`
	AverageStayNights  float64            `json:"averageStayNights"`
	PaymentBreakdown   map[string]float64 `json:"paymentBreakdown"`
	PaymentsPaid       float64            `json:"paymentsPaid"`
	PaymentsPending    float64            `json:"paymentsPending"`
}

// Metrics derives dashboard figures from the lifecycle manager's
// collections. Pure and recomputed on every read; nothing is stored.
type Metrics interface {
	Dashboard(ctx context.Context) (Dashboard, error)
}

type serviceImpl struct {
	reservations resService.Reservation
	otel         otel.Otel
}

func New(reservations resService.Reservation, otel otel.Otel) Metrics {
	return &serviceImpl{
		reservations: reservations,
		otel:         otel,
	}
}

func (s *serviceImpl) Dashboard(ctx context.Context) (res Dashboard, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Dashboard")
	defer scope.End()
	defer scope.TraceIfError(err)

	snapshot, err := s.reservations.Snapshot(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	return compute(snapshot), nil
}

func compute(snapshot resService.Snapshot) Dashboard {
	dashboard := Dashboard{
		PaymentBreakdown: map[string]float64{},
	}

	// which reservations settle revenue, keyed for the breakdown
	settled := map[int64]bool{}
	totalNights := 0.0

	for _, res := range snapshot.Reservations {
		if model.CountsTowardRevenue(res.Status) {
			dashboard.TotalRevenue += res.TotalAmount
			settled[res.ID] = true
		}

		if model.Active(res.Status) {
			dashboard.ActiveReservations++
		}

		nights := res.CheckOut.Sub(res.CheckIn).Hours() / 24
		if nights < 0 {
			nights = 0
		}

		totalNights += nights
	}

	if len(snapshot.Reservations) > 0 {
		dashboard.AverageStayNights = totalNights / float64(len(snapshot.Reservations))
	}

	for _, room := range snapshot.Rooms {
		if room.Status == roomModel.StatusAvailable {
			dashboard.AvailableRooms++
		}
	}

	for _, payment := range snapshot.Payments {
		if settled[payment.ReservationID] {
			dashboard.PaymentBreakdown[payment.Method] += payment.Amount
		}

		switch payment.Status {
		case model.PaymentStatusPaid:
			dashboard.PaymentsPaid += payment.Amount
		case model.PaymentStatusPending:
			dashboard.PaymentsPending += payment.Amount
		}
	}

	return dashboard
}
