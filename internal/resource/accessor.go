package resource

import (
	"context"
	"errors"
)

// ErrUnsupported — ресурс не поддерживает операцию (например, создание заказа).
var ErrUnsupported = errors.New("resource: операция не поддерживается")

// Accessor — операции backend над коллекцией записей T с черновиком D.
// filter — текущий фильтр списка (статус заказа, id команды-владельца).
type Accessor[T, D any] interface {
	List(ctx context.Context, filter string) ([]T, error)
	Create(ctx context.Context, draft D) error
	Update(ctx context.Context, id string, draft D) error
	Delete(ctx context.Context, id string) error
}

// Funcs — Accessor из набора функций. Отсутствующая функция даёт ErrUnsupported.
type Funcs[T, D any] struct {
	ListFn   func(ctx context.Context, filter string) ([]T, error)
	CreateFn func(ctx context.Context, draft D) error
	UpdateFn func(ctx context.Context, id string, draft D) error
	DeleteFn func(ctx context.Context, id string) error
}

func (f Funcs[T, D]) List(ctx context.Context, filter string) ([]T, error) {
	if f.ListFn == nil {
		return nil, ErrUnsupported
	}
	return f.ListFn(ctx, filter)
}

func (f Funcs[T, D]) Create(ctx context.Context, draft D) error {
	if f.CreateFn == nil {
		return ErrUnsupported
	}
	return f.CreateFn(ctx, draft)
}

func (f Funcs[T, D]) Update(ctx context.Context, id string, draft D) error {
	if f.UpdateFn == nil {
		return ErrUnsupported
	}
	return f.UpdateFn(ctx, id, draft)
}

func (f Funcs[T, D]) Delete(ctx context.Context, id string) error {
	if f.DeleteFn == nil {
		return ErrUnsupported
	}
	return f.DeleteFn(ctx, id)
}
