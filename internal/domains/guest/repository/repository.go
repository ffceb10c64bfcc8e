package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"innkeep/infras/backend"
	"innkeep/infras/otel"
	"innkeep/internal/domains/guest/model"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/failure"
)

type Guest interface {
	ResolveByID(ctx context.Context, id int64) (model.Guest, error)
	ResolveByEmail(ctx context.Context, email string) (model.Guest, error)
	Upsert(ctx context.Context, guest model.Guest) (model.Guest, error)
	Update(ctx context.Context, patch map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	client backend.Client
	otel   otel.Otel
}

func New(client backend.Client, otel otel.Otel) Guest {
	return &repositoryImpl{
		client: client,
		otel:   otel,
	}
}

// guestRow is the insert shape; the backend assigns guest_id.
type guestRow struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

func (r *repositoryImpl) ResolveByID(ctx context.Context, id int64) (res model.Guest, err error) {
	return r.resolve(ctx, "guest:ResolveByID", gDto.FilterBy(model.FieldID, id))
}

func (r *repositoryImpl) ResolveByEmail(ctx context.Context, email string) (res model.Guest, err error) {
	return r.resolve(ctx, "guest:ResolveByEmail", gDto.FilterBy(model.FieldEmail, email))
}

func (r *repositoryImpl) resolve(ctx context.Context, operation string, filter gDto.FilterGroup) (res model.Guest, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, operation)
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := r.client.Query(ctx, model.TableName, backend.QueryOptions{Filter: filter})
	if err != nil {
		return model.Guest{}, err
	}

	rows, err := backend.Decode[model.Guest](raw)
	if err != nil {
		return model.Guest{}, err
	}

	if len(rows) == 0 {
		return model.Guest{}, failure.NotFound(model.EntityName)
	}

	return rows[0], nil
}

// Upsert inserts the guest or merges onto the existing row keyed by
// email, so repeat walk-ins never duplicate a guest.
func (r *repositoryImpl) Upsert(ctx context.Context, guest model.Guest) (res model.Guest, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "guest:Upsert")
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := r.client.Mutate(ctx, model.TableName, backend.VerbCreate, backend.MutateOptions{
		Body: guestRow{
			FirstName:  guest.FirstName,
			MiddleName: guest.MiddleName,
			LastName:   guest.LastName,
			Email:      guest.Email,
			Phone:      guest.Phone,
			Address:    guest.Address,
			City:       guest.City,
			PostalCode: guest.PostalCode,
		},
		ReturnRows: true,
		OnConflict: model.FieldEmail,
	})
	if err != nil {
		return model.Guest{}, err
	}

	return backend.DecodeOne[model.Guest](raw)
}

func (r *repositoryImpl) Update(ctx context.Context, patch map[string]any, filter gDto.FilterGroup) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "guest:Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	_, err = r.client.Mutate(ctx, model.TableName, backend.VerbUpdate, backend.MutateOptions{
		Body:   patch,
		Filter: filter,
	})

	return err
}
