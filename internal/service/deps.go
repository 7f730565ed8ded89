// Пакет service — привязка обобщённого контроллера ресурсов к сущностям
// платформы: какие запросы backend выполняет каждая страница, значения
// форм по умолчанию, проверки перед отправкой и уведомления.
package service

import (
	"log/slog"
	"time"

	"github.com/ahmad115kobane-wq/adminapp/internal/apiclient"
	"github.com/ahmad115kobane-wq/adminapp/internal/resource"
	"github.com/ahmad115kobane-wq/adminapp/internal/upload"
)

// DefaultEventLimit — сколько записей журнала событий запрашивается по умолчанию.
const DefaultEventLimit = 100

// Deps — зависимости страниц одного оператора.
type Deps struct {
	// API — клиент, подписывающий запросы токеном оператора.
	API *apiclient.Client
	// Uploader — загрузчик логотипов и изображений.
	Uploader upload.Uploader
	// Location — часовой пояс расписания матчей.
	Location *time.Location
	// EventLimit — размер журнала событий.
	EventLimit int
	Logger     *slog.Logger
}

func (d Deps) options(extra ...resource.Option) []resource.Option {
	opts := []resource.Option{resource.WithLogger(d.logger())}
	if d.Uploader != nil {
		opts = append(opts, resource.WithUploader(d.Uploader))
	}
	return append(opts, extra...)
}

func (d Deps) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

func (d Deps) location() *time.Location {
	if d.Location == nil {
		return time.Local
	}
	return d.Location
}

func (d Deps) eventLimit() int {
	if d.EventLimit <= 0 {
		return DefaultEventLimit
	}
	return d.EventLimit
}
