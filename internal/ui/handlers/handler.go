// Пакет handlers — HTTP-обработчики Admin Dashboard.
// handler.go — общие зависимости страниц, разбор форм и отрисовка.
package handlers

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/ahmad115kobane-wq/adminapp/internal/apiclient"
	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
	"github.com/ahmad115kobane-wq/adminapp/internal/service"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/auth"
	uimiddleware "github.com/ahmad115kobane-wq/adminapp/internal/ui/middleware"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/pages"
	"github.com/ahmad115kobane-wq/adminapp/internal/ui/state"
	"github.com/ahmad115kobane-wq/adminapp/internal/upload"
)

// DefaultMaxUploadBytes — ограничение размера multipart-формы по умолчанию.
const DefaultMaxUploadBytes = 50 << 20

// freshness — список, загруженный не раньше этого срока, не перезапрашивается
// (GET сразу после redirect по мутации).
const freshness = 5 * time.Second

// PageDeps — зависимости обработчиков страниц.
type PageDeps struct {
	// API — клиент backend без токена; для сессии создаётся копия WithToken.
	API *apiclient.Client
	// Uploads — фабрика загрузчиков файлов (nil — только через backend).
	Uploads upload.Factory
	// Store — состояние страниц сессий.
	Store *state.Store
	// Location — часовой пояс расписания матчей и отображения времени.
	Location *time.Location
	// EventLimit — размер журнала событий.
	EventLimit int
	// MaxUploadBytes — ограничение размера формы с файлами.
	MaxUploadBytes int64
}

// Page — раздел панели со своим префиксом маршрутов.
type Page interface {
	Path() string
	Routes(r chi.Router)
}

// Pages создаёт обработчики всех разделов панели в порядке меню.
func Pages(deps *PageDeps, logger *slog.Logger) []Page {
	return []Page{
		NewMatchesHandler(deps, logger),
		NewTeamsHandler(deps, logger),
		NewCompetitionsHandler(deps, logger),
		NewOperatorsHandler(deps, logger),
		NewSupervisorsHandler(deps, logger),
		NewProductsHandler(deps, logger),
		NewBannersHandler(deps, logger),
		NewOrdersHandler(deps, logger),
		NewSlidersHandler(deps, logger),
		NewVideoAdsHandler(deps, logger),
		NewEventsHandler(deps, logger),
	}
}

// service собирает зависимости контроллеров страниц для сессии.
func (d *PageDeps) service(session *auth.SessionData, logger *slog.Logger) service.Deps {
	api := d.API.WithToken(session.Token)
	factory := d.Uploads
	if factory == nil {
		factory = upload.BackendFactory
	}
	return service.Deps{
		API:        api,
		Uploader:   factory(api),
		Location:   d.Location,
		EventLimit: d.EventLimit,
		Logger:     logger,
	}
}

// chrome собирает данные каркаса страницы.
func (d *PageDeps) chrome(session *auth.SessionData, active string) pages.Chrome {
	return pages.Chrome{
		Name:      session.Name,
		Email:     session.Email,
		Active:    active,
		MediaBase: d.API.BaseURL(),
		Location:  d.Location,
	}
}

func (d *PageDeps) maxUpload() int64 {
	if d.MaxUploadBytes <= 0 {
		return DefaultMaxUploadBytes
	}
	return d.MaxUploadBytes
}

// requireSession извлекает сессию из контекста или перенаправляет на вход.
func requireSession(w http.ResponseWriter, r *http.Request) *auth.SessionData {
	session := uimiddleware.SessionFromContext(r.Context())
	if session == nil {
		http.Redirect(w, r, uimiddleware.LoginPath, http.StatusFound)
	}
	return session
}

// renderPage отрисовывает страницу целиком.
func renderPage(w http.ResponseWriter, r *http.Request, logger *slog.Logger, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		logger.Error("Ошибка рендеринга страницы",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Ошибка рендеринга страницы", http.StatusInternalServerError)
	}
}

// seeOther — redirect после POST (POST → redirect → GET).
func seeOther(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// errFormTooLarge — форма превышает MaxUploadBytes.
var errFormTooLarge = errors.New("форма превышает допустимый размер")

// parseForm разбирает multipart или urlencoded форму с ограничением размера.
// Тип формы выбирается по Content-Type: ParseMultipartForm теряет ошибку
// чтения urlencoded-тела, поэтому вызывается только для multipart.
func parseForm(w http.ResponseWriter, r *http.Request, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	var err error
	if mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(maxBytes)
	} else {
		err = r.ParseForm()
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errFormTooLarge
	}
	return err
}

// --- Значения формы ---

func formString(r *http.Request, name string) string {
	return strings.TrimSpace(r.FormValue(name))
}

// formBool — флажок со скрытым полем "false": отмечен, если среди значений есть "true".
func formBool(r *http.Request, name string) bool {
	for _, v := range r.Form[name] {
		if v == "true" || v == "on" {
			return true
		}
	}
	return false
}

// formInt возвращает целое или fallback, если поле пустое или не число.
func formInt(r *http.Request, name string, fallback int) int {
	n, err := strconv.Atoi(formString(r, name))
	if err != nil {
		return fallback
	}
	return n
}

// formFloat возвращает число или 0.
func formFloat(r *http.Request, name string) float64 {
	f, err := strconv.ParseFloat(formString(r, name), 64)
	if err != nil {
		return 0
	}
	return f
}

// formStrings возвращает непустые значения поля с повторяющимся именем.
func formStrings(r *http.Request, name string) []string {
	out := []string{}
	for _, v := range r.Form[name] {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// formFile читает выбранный файл; nil — файл не выбран, остаётся current.
func formFile(r *http.Request, name string, current *model.File) *model.File {
	if r.MultipartForm == nil {
		return current
	}
	headers := r.MultipartForm.File[name]
	if len(headers) == 0 || headers[0].Size == 0 {
		return current
	}
	f, err := readFile(headers[0])
	if err != nil {
		return current
	}
	return f
}

func readFile(fh *multipart.FileHeader) (*model.File, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &model.File{Name: fh.Filename, ContentType: contentType, Data: data}, nil
}
