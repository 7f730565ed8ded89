package resource

import (
	"context"
	"sync"
)

// Lookup — справочник, загружаемый вместе со списком (соревнования и
// команды для формы матча, категории для формы товара).
type Lookup interface {
	// Name — имя справочника для логов.
	Name() string
	// fetch загружает данные и возвращает функцию их фиксации.
	fetch(ctx context.Context) (commit func(), err error)
}

// LookupOf — типизированный справочник.
type LookupOf[L any] struct {
	name string
	load func(ctx context.Context) ([]L, error)

	mu    sync.RWMutex
	items []L
}

// NewLookup создаёт справочник.
func NewLookup[L any](name string, load func(ctx context.Context) ([]L, error)) *LookupOf[L] {
	return &LookupOf[L]{name: name, load: load}
}

// Name возвращает имя справочника.
func (l *LookupOf[L]) Name() string { return l.name }

// Items возвращает последние зафиксированные записи.
func (l *LookupOf[L]) Items() []L {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.items
}

func (l *LookupOf[L]) fetch(ctx context.Context) (func(), error) {
	items, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	return func() {
		l.mu.Lock()
		l.items = items
		l.mu.Unlock()
	}, nil
}
