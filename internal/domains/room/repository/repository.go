package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"innkeep/infras/backend"
	"innkeep/infras/otel"
	"innkeep/internal/domains/room/model"
	"innkeep/shared/constant"
	gDto "innkeep/shared/dto"
	"innkeep/shared/failure"
)

type Room interface {
	GetAll(ctx context.Context, filter gDto.FilterGroup) ([]model.Room, error)
	ResolveByID(ctx context.Context, id int64) (model.Room, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	GetAllTypes(ctx context.Context) ([]model.RoomType, error)
}

type repositoryImpl struct {
	client backend.Client
	otel   otel.Otel
}

func New(client backend.Client, otel otel.Otel) Room {
	return &repositoryImpl{
		client: client,
		otel:   otel,
	}
}

func (r *repositoryImpl) GetAll(ctx context.Context, filter gDto.FilterGroup) (res []model.Room, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "room:GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := r.client.Query(ctx, model.TableName, backend.QueryOptions{
		Filter: filter,
		Order:  gDto.OrderBy(model.FieldNumber, gDto.SortDirAsc),
	})
	if err != nil {
		return nil, err
	}

	return backend.Decode[model.Room](raw)
}

func (r *repositoryImpl) ResolveByID(ctx context.Context, id int64) (res model.Room, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "room:ResolveByID")
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := r.client.Query(ctx, model.TableName, backend.QueryOptions{
		Filter: gDto.FilterBy(model.FieldID, id),
	})
	if err != nil {
		return model.Room{}, err
	}

	rows, err := backend.Decode[model.Room](raw)
	if err != nil {
		return model.Room{}, err
	}

	if len(rows) == 0 {
		return model.Room{}, failure.NotFound(model.EntityName)
	}

	return rows[0], nil
}

func (r *repositoryImpl) UpdateStatus(ctx context.Context, id int64, status string) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "room:UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	_, err = r.client.Mutate(ctx, model.TableName, backend.VerbUpdate, backend.MutateOptions{
		Body:   map[string]any{model.FieldStatus: status},
		Filter: gDto.FilterBy(model.FieldID, id),
	})

	return err
}

func (r *repositoryImpl) GetAllTypes(ctx context.Context) (res []model.RoomType, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, "room:GetAllTypes")
	defer scope.End()
	defer scope.TraceIfError(err)

	raw, err := r.client.Query(ctx, model.TypeTableName, backend.QueryOptions{
		Order: gDto.OrderBy(model.FieldTypeID, gDto.SortDirAsc),
	})
	if err != nil {
		return nil, err
	}

	return backend.Decode[model.RoomType](raw)
}
