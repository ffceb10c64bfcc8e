package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"innkeep/infras/backend"
	"innkeep/infras/otel"
	"innkeep/internal/domains/reservation/model"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
)

type Reservation interface {
	GetAll(ctx context.Context, filter gDto.FilterGroup) ([]model.ReservationRecord, error)
	Insert(ctx context.Context, row NewReservation) (model.ReservationRecord, error)
	Update(ctx context.Context, id int64, patch map[string]any) error
	GetAllPayments(ctx context.Context) ([]model.PaymentRecord, error)
	InsertPayment(ctx context.Context, row NewPayment) error
	GetAllGuestLinks(ctx context.Context) ([]model.GuestLinkRecord, error)
	InsertGuestLink(ctx context.Context, row NewGuestLink) error
	InsertLog(ctx context.Context, row model.LogRecord) error
}

// NewReservation is the insert shape; the backend assigns the id.
type NewReservation struct {
	RoomID      int64   `json:"room_id"`
	StaffID     *int64  `json:"staff_id,omitempty"`
	CheckIn     string  `json:"check_in"`
	CheckOut    string  `json:"check_out"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
}

type NewPayment struct {
	ReservationID int64   `json:"reservation_id"`
	Amount        float64 `json:"amount"`
	Method        string  `json:"method"`
	Status        string  `json:"status"`
}

type NewGuestLink struct {
	ReservationID int64  `json:"reservation_id"`
	GuestID       int64  `json:"guest_id"`
	GuestType     string `json:"guest_type"`
}

type repositoryImpl struct {
	client backend.Client
	otel   otel.Otel
}

func New(client backend.Client, otel otel.Otel) Reservation {
	return &repositoryImpl{
		client: client,
		otel:   otel,
	}
}

func (r *repositoryImpl) GetAll(ctx context.Context, filter gDto.FilterGroup) (res []model.ReservationRecord, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "reservation:GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := r.client.Query(ctx, model.TableName, backend.QueryOptions{
		Filter: filter,
		Order:  gDto.OrderBy(model.FieldID, gDto.SortDirAsc),
	})
	if err != nil {
		return nil, err
	}

	return backend.Decode[model.ReservationRecord](raw)
}

func (r *repositoryImpl) Insert(ctx context.Context, row NewReservation) (res model.ReservationRecord, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "reservation:Insert")
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := r.client.Mutate(ctx, model.TableName, backend.VerbCreate, backend.MutateOptions{
		Body:       row,
		ReturnRows: true,
	})
	if err != nil {
		return model.ReservationRecord{}, err
	}

	return backend.DecodeOne[model.ReservationRecord](raw)
}

func (r *repositoryImpl) Update(ctx context.Context, id int64, patch map[string]any) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "reservation:Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	_, err = r.client.Mutate(ctx, model.TableName, backend.VerbUpdate, backend.MutateOptions{
		Body:   patch,
		Filter: gDto.FilterBy(model.FieldID, id),
	})

	return err
}

func (r *repositoryImpl) GetAllPayments(ctx context.Context) (res []model.PaymentRecord, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "reservation:GetAllPayments")
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := r.client.Query(ctx, model.PaymentTableName, backend.QueryOptions{})
	if err != nil {
		return nil, err
	}

	return backend.Decode[model.PaymentRecord](raw)
}

func (r *repositoryImpl) InsertPayment(ctx context.Context, row NewPayment) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "reservation:InsertPayment")
	defer scope.End()
	defer scope.TraceIfError(err)

	_, err = r.client.Mutate(ctx, model.PaymentTableName, backend.VerbCreate, backend.MutateOptions{
		Body: row,
	})

	return err
}

func (r *repositoryImpl) GetAllGuestLinks(ctx context.Context) (res []model.GuestLinkRecord, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "reservation:GetAllGuestLinks")
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := r.client.Query(ctx, model.GuestLinkTableName, backend.QueryOptions{})
	if err != nil {
		return nil, err
	}

	return backend.Decode[model.GuestLinkRecord](raw)
}

func (r *repositoryImpl) InsertGuestLink(ctx context.Context, row NewGuestLink) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "reservation:InsertGuestLink")
	defer scope.End()
	defer scope.TraceIfError(err)

	_, err = r.client.Mutate(ctx, model.GuestLinkTableName, backend.VerbCreate, backend.MutateOptions{
		Body: row,
	})

	return err
}

func (r *repositoryImpl) InsertLog(ctx context.Context, row model.LogRecord) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "reservation:InsertLog")
	defer scope.End()
	defer scope.TraceIfError(err)

	_, err = r.client.Mutate(ctx, model.LogTableName, backend.VerbCreate, backend.MutateOptions{
		Body: row,
	})

	return err
}
