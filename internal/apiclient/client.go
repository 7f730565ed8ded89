// Пакет apiclient — HTTP-клиент REST API платформы (спорт + магазин).
// Один Client на процесс; для каждого запроса оператора создаётся копия
// с его токеном (WithToken), сессия передаётся явно.
//
// Формат ответов backend:
//   - список:  {"data": [ ... ]}
//   - запись:  {"data": { ... }}
//   - ошибка:  {"message": "..."} с кодом 4xx/5xx
package apiclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
)

// maxErrorBody — сколько байт тела ошибки читается для извлечения сообщения.
const maxErrorBody = 64 << 10

// ErrNotAuthenticated — запрос требует токен, а он не задан.
var ErrNotAuthenticated = errors.New("apiclient: токен не задан")

// APIError — ответ backend с кодом 4xx/5xx.
type APIError struct {
	// Op — операция клиента (например, "matches.update").
	Op string
	// StatusCode — HTTP-код ответа.
	StatusCode int
	// Message — человекочитаемое сообщение backend (может быть пустым).
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: backend вернул статус %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: backend вернул статус %d: %s", e.Op, e.StatusCode, e.Message)
}

// Message возвращает сообщение backend из цепочки ошибок или "".
// Используется дословно в уведомлении оператору.
func Message(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

// IsUnauthorized сообщает, что backend отклонил токен (401).
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// envelope — обёртка {"data": ...} всех успешных ответов.
type envelope[T any] struct {
	Data T `json:"data"`
}

// errorBody — тело ответа с ошибкой.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Client — HTTP-клиент backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	logger     *slog.Logger
}

// New создаёт клиента.
// baseURL — адрес API (например, https://sports-live.up.railway.app/api).
// caCertPath — путь к CA-сертификату (пустая строка — системный пул).
// timeout — таймаут одного запроса.
func New(baseURL, caCertPath string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	httpClient := &http.Client{Timeout: timeout}

	if caCertPath != "" {
		tlsConfig, err := buildTLSConfig(caCertPath)
		if err != nil {
			return nil, fmt.Errorf("загрузка CA-сертификата API: %w", err)
		}
		httpClient.Transport = &http.Transport{
			TLSClientConfig: tlsConfig,
		}
		logger.Info("CA-сертификат API добавлен в пул доверия",
			slog.String("ca_cert", caCertPath),
		)
	}

	return NewWithHTTPClient(baseURL, httpClient, logger), nil
}

// NewWithHTTPClient создаёт клиента с готовым *http.Client (тесты, кастомный транспорт).
func NewWithHTTPClient(baseURL string, httpClient *http.Client, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger.With(slog.String("component", "api_client")),
	}
}

// buildTLSConfig создаёт TLS-конфигурацию с кастомным CA.
func buildTLSConfig(caCertPath string) (*tls.Config, error) {
	caCert, err := os.ReadFile(caCertPath)
	if err != nil {
		return nil, fmt.Errorf("чтение CA-сертификата: %w", err)
	}

	caCertPool, err := x509.SystemCertPool()
	if err != nil {
		caCertPool = x509.NewCertPool()
	}
	caCertPool.AppendCertsFromPEM(caCert)

	return &tls.Config{
		RootCAs: caCertPool,
	}, nil
}

// WithToken возвращает копию клиента, подписывающую запросы токеном оператора.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// BaseURL возвращает адрес API без завершающего слеша.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// HTTPClient возвращает нижележащий *http.Client (для загрузчиков и проверок).
func (c *Client) HTTPClient() *http.Client {
	return c.httpClient
}

// request описывает один вызов backend.
type request struct {
	op     string
	method string
	path   string
	query  url.Values
	// body — JSON-тело (nil — без тела).
	body any
	// form — multipart-тело (взаимоисключающе с body).
	form *model.Form
	// public — не требует токена (логин).
	public bool
}

// do выполняет запрос и декодирует {"data": ...} в out (out может быть nil).
func (c *Client) do(ctx context.Context, r request, out any) error {
	if !r.public && c.token == "" {
		return fmt.Errorf("%s: %w", r.op, ErrNotAuthenticated)
	}

	reqURL := c.baseURL + r.path
	if len(r.query) > 0 {
		reqURL += "?" + r.query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case r.form != nil:
		buf, ct, err := encodeMultipart(r.form)
		if err != nil {
			return fmt.Errorf("%s: сборка multipart: %w", r.op, err)
		}
		body, contentType = buf, ct
	case r.body != nil:
		raw, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("%s: сериализация тела: %w", r.op, err)
		}
		body, contentType = bytes.NewReader(raw), "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, r.method, reqURL, body)
	if err != nil {
		return fmt.Errorf("%s: создание запроса: %w", r.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: запрос к API: %w", r.op, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Запрос к API выполнен",
		slog.String("op", r.op),
		slog.String("method", r.method),
		slog.String("path", r.path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(r.op, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: декодирование ответа: %w", r.op, err)
	}
	return nil
}

// decodeError извлекает сообщение backend из тела ответа с ошибкой.
func decodeError(op string, resp *http.Response) error {
	apiErr := &APIError{Op: op, StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var body errorBody
	if json.Unmarshal(raw, &body) == nil {
		apiErr.Message = body.Message
		if apiErr.Message == "" {
			apiErr.Message = body.Error
		}
	}
	return apiErr
}

// list выполняет GET и возвращает массив из {"data": [...]}.
// null вместо массива трактуется как пустой список.
func list[T any](ctx context.Context, c *Client, op, path string, query url.Values) ([]T, error) {
	var env envelope[[]T]
	if err := c.do(ctx, request{op: op, method: http.MethodGet, path: path, query: query}, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []T{}, nil
	}
	return env.Data, nil
}

// single выполняет запрос и возвращает запись из {"data": {...}}.
func single[T any](ctx context.Context, c *Client, r request) (T, error) {
	var env envelope[T]
	err := c.do(ctx, r, &env)
	return env.Data, err
}

// quoteEscaper экранирует кавычки в заголовке Content-Disposition.
var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// encodeMultipart собирает multipart/form-data из модели формы.
// Файлы передаются с исходным Content-Type (видео, изображения).
func encodeMultipart(form *model.Form) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	for _, f := range form.Fields {
		if err := w.WriteField(f.Name, f.Value); err != nil {
			return nil, "", err
		}
	}

	for _, ff := range form.Files {
		contentType := ff.File.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(ff.Field), quoteEscaper.Replace(ff.File.Name)))
		h.Set("Content-Type", contentType)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(ff.File.Data); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

// ResolveMediaURL превращает сохранённый путь файла в адрес для отображения.
// Абсолютные адреса (http...) возвращаются как есть; относительные
// дополняются адресом API без суффикса /api. Хранимое значение не меняется.
func ResolveMediaURL(apiBaseURL, stored string) string {
	if stored == "" || strings.HasPrefix(stored, "http") {
		return stored
	}
	base := strings.TrimSuffix(strings.TrimRight(apiBaseURL, "/"), "/api")
	if !strings.HasPrefix(stored, "/") {
		stored = "/" + stored
	}
	return base + stored
}

// escape экранирует идентификатор для сегмента пути.
func escape(id string) string {
	return url.PathEscape(id)
}
