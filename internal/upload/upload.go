// Пакет upload — загрузка файлов, выбранных в формах (логотипы, изображения).
// Загрузчик возвращает сохранённый путь, который записывается в поле черновика.
package upload

import (
	"context"
	"errors"

	"github.com/ahmad115kobane-wq/adminapp/internal/apiclient"
	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
)

var (
	// ErrEmptyFile — файл не выбран или пуст.
	ErrEmptyFile = errors.New("upload: пустой файл")
	// ErrNoUploader — выбран файл, но загрузчик не настроен.
	ErrNoUploader = errors.New("upload: загрузчик не настроен")
)

// Uploader сохраняет файл и возвращает сохранённый путь или адрес.
type Uploader interface {
	Upload(ctx context.Context, f *model.File) (string, error)
}

// Discarder — загрузчик, умеющий удалить уже загруженный файл.
// Используется, когда запись не сохранилась после успешной загрузки.
type Discarder interface {
	Discard(ctx context.Context, stored string) error
}

// Factory создаёт загрузчик для клиента API, привязанного к сессии оператора.
type Factory func(api *apiclient.Client) Uploader

// Backend — загрузка через POST /store/upload backend.
// Backend не умеет удалять файлы, поэтому Discarder не реализован.
type Backend struct {
	store *apiclient.StoreAPI
}

// NewBackend создаёт загрузчик через backend API.
func NewBackend(api *apiclient.Client) *Backend {
	return &Backend{store: api.Store()}
}

// Upload загружает изображение и возвращает imageUrl.
func (b *Backend) Upload(ctx context.Context, f *model.File) (string, error) {
	if f.Empty() {
		return "", ErrEmptyFile
	}
	return b.store.UploadImage(ctx, f)
}

// BackendFactory — фабрика загрузчиков через backend API.
func BackendFactory(api *apiclient.Client) Uploader {
	return NewBackend(api)
}

// Shared — фабрика, возвращающая общий загрузчик независимо от сессии.
func Shared(u Uploader) Factory {
	return func(*apiclient.Client) Uploader { return u }
}
