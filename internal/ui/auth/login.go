// login.go — вход оператора через backend и проверка выданного токена.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ahmad115kobane-wq/adminapp/internal/apiclient"
)

var (
	// ErrInvalidToken — токен backend не прошёл проверку подписи или claims.
	ErrInvalidToken = errors.New("токен backend не прошёл проверку")
	// ErrRoleNotAllowed — роль пользователя не допускает вход в панель.
	ErrRoleNotAllowed = errors.New("роль не допускает вход в панель")
)

// backendClaims — claims токена, выданного backend.
type backendClaims struct {
	jwt.RegisteredClaims
	// UserID — id пользователя (если backend кладёт его отдельно от sub).
	UserID string `json:"userId,omitempty"`
	Name   string `json:"name,omitempty"`
	Email  string `json:"email,omitempty"`
	Role   string `json:"role,omitempty"`
}

// TokenVerifier проверяет подпись токена backend (JWKS или общий секрет).
type TokenVerifier struct {
	keyfunc jwt.Keyfunc
	methods []string
	issuer  string
}

// NewJWKSVerifier создаёт проверку через JWKS с фоновым обновлением ключей.
// Старт не блокируется недоступностью JWKS endpoint.
func NewJWKSVerifier(jwksURL, issuer string, httpClient *http.Client, refreshInterval time.Duration, logger *slog.Logger) (*TokenVerifier, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	storage, err := jwkset.NewStorageFromHTTP(jwksURL, jwkset.HTTPClientStorageOptions{
		Client:                    httpClient,
		NoErrorReturnFirstHTTPReq: true,
		RefreshInterval:           refreshInterval,
		RefreshErrorHandler: func(_ context.Context, err error) {
			logger.Error("Ошибка обновления JWKS",
				slog.String("error", err.Error()),
				slog.String("url", jwksURL),
			)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("создание JWKS storage: %w", err)
	}

	k, err := keyfunc.New(keyfunc.Options{Storage: storage})
	if err != nil {
		return nil, fmt.Errorf("создание keyfunc: %w", err)
	}
	return NewVerifierWithKeyfunc(k, issuer), nil
}

// NewVerifierWithKeyfunc создаёт проверку с готовой keyfunc (тесты, статический JWKS).
func NewVerifierWithKeyfunc(k keyfunc.Keyfunc, issuer string) *TokenVerifier {
	return &TokenVerifier{
		keyfunc: k.Keyfunc,
		methods: []string{"RS256", "RS384", "RS512", "ES256", "ES384", "EdDSA"},
		issuer:  issuer,
	}
}

// NewHMACVerifier создаёт проверку HS256-токенов общим секретом.
func NewHMACVerifier(secret, issuer string) *TokenVerifier {
	key := []byte(secret)
	return &TokenVerifier{
		keyfunc: func(*jwt.Token) (any, error) { return key, nil },
		methods: []string{"HS256", "HS384", "HS512"},
		issuer:  issuer,
	}
}

// parse проверяет подпись и срок действия токена.
func (v *TokenVerifier) parse(token string) (*backendClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods(v.methods)}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	claims := &backendClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, v.keyfunc, opts...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}

// Authenticator выполняет вход оператора и собирает SessionData.
type Authenticator struct {
	api          *apiclient.Client
	verifier     *TokenVerifier
	sessions     *SessionManager
	allowedRoles []string
	logger       *slog.Logger
}

// NewAuthenticator создаёт Authenticator.
// verifier — может быть nil: тогда claims читаются без проверки подписи.
// allowedRoles — роли, допущенные в панель (пустой список — любая роль).
func NewAuthenticator(api *apiclient.Client, verifier *TokenVerifier, sessions *SessionManager, allowedRoles []string, logger *slog.Logger) *Authenticator {
	return &Authenticator{
		api:          api,
		verifier:     verifier,
		sessions:     sessions,
		allowedRoles: allowedRoles,
		logger:       logger.With(slog.String("component", "ui_login")),
	}
}

// Login обменивает email и пароль на токен backend и создаёт сессию.
func (a *Authenticator) Login(ctx context.Context, email, password string) (*SessionData, error) {
	res, err := a.api.Auth().Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}
	if res.Token == "" {
		return nil, fmt.Errorf("%w: пустой токен", ErrInvalidToken)
	}

	claims, err := a.claims(res.Token)
	if err != nil {
		return nil, err
	}

	now := a.sessions.Now()
	expiresAt := now.Add(a.sessions.TTL())
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(expiresAt) {
		expiresAt = claims.ExpiresAt.Time
	}

	session := &SessionData{
		ID:        uuid.NewString(),
		Token:     res.Token,
		ExpiresAt: expiresAt.Unix(),
		UserID:    firstNonEmpty(res.User.ID, claims.UserID, claims.Subject),
		Name:      firstNonEmpty(res.User.Name, claims.Name),
		Email:     firstNonEmpty(res.User.Email, claims.Email, email),
		Role:      firstNonEmpty(res.User.Role, claims.Role),
	}

	if !a.roleAllowed(session.Role) {
		a.logger.Warn("Вход отклонён: роль не допущена",
			slog.String("email", session.Email),
			slog.String("role", session.Role),
		)
		return nil, fmt.Errorf("%w: %q", ErrRoleNotAllowed, session.Role)
	}

	a.logger.Info("Оператор вошёл",
		slog.String("user_id", session.UserID),
		slog.String("role", session.Role),
	)
	return session, nil
}

// claims извлекает claims токена: с проверкой, если она настроена,
// иначе без проверки подписи. Непрозрачный токен без проверки допустим.
func (a *Authenticator) claims(token string) (*backendClaims, error) {
	if a.verifier != nil {
		return a.verifier.parse(token)
	}
	claims := &backendClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		a.logger.Debug("Токен backend не является JWT", slog.String("error", err.Error()))
		return &backendClaims{}, nil
	}
	return claims, nil
}

func (a *Authenticator) roleAllowed(role string) bool {
	if len(a.allowedRoles) == 0 {
		return true
	}
	for _, r := range a.allowedRoles {
		if strings.EqualFold(r, role) {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
