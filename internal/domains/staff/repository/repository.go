package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"net/http"

	"innkeep/infras/backend"
	"innkeep/infras/otel"
	"innkeep/internal/domains/staff/model"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/failure"
)

type Staff interface {
	GetAll(ctx context.Context) ([]model.Staff, error)
	ResolveByEmail(ctx context.Context, email string) (model.Staff, error)
	ExistByEmail(ctx context.Context, email string) (bool, error)
}

type repositoryImpl struct {
	client backend.Client
	otel   otel.Otel
}

func New(client backend.Client, otel otel.Otel) Staff {
	return &repositoryImpl{
		client: client,
		otel:   otel,
	}
}

func (r *repositoryImpl) GetAll(ctx context.Context) (res []model.Staff, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "staff:GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := r.client.Query(ctx, model.TableName, backend.QueryOptions{
		Order: gDto.OrderBy(model.FieldID, gDto.SortDirAsc),
	})
	if err != nil {
		return nil, err
	}

	return backend.Decode[model.Staff](raw)
}

func (r *repositoryImpl) ResolveByEmail(ctx context.Context, email string) (res model.Staff, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "staff:ResolveByEmail")
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := r.client.Query(ctx, model.TableName, backend.QueryOptions{
		Filter: gDto.FilterBy(model.FieldEmail, email),
	})
	if err != nil {
		return model.Staff{}, err
	}

	rows, err := backend.Decode[model.Staff](raw)
	if err != nil {
		return model.Staff{}, err
	}

	if len(rows) == 0 {
		return model.Staff{}, failure.NotFound(model.EntityName)
	}

	return rows[0], nil
}

func (r *repositoryImpl) ExistByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.ResolveByEmail(ctx, email)
	if err != nil {
		if failure.GetCode(err) == http.StatusNotFound {
			return false, nil
		}

		return false, err
	}

	return true, nil
}
