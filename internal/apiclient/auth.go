package apiclient

import (
	"context"
	"net/http"
)

// User — учётная запись, вернувшаяся при входе.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// LoginResult — ответ POST /auth/login.
type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthAPI — вход в систему (токен не требуется).
type AuthAPI struct{ c *Client }

// Auth возвращает аксессор аутентификации.
func (c *Client) Auth() *AuthAPI { return &AuthAPI{c: c} }

// Login обменивает email и пароль на токен.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (LoginResult, error) {
	return single[LoginResult](ctx, a.c, request{
		op:     "auth.login",
		method: http.MethodPost,
		path:   "/auth/login",
		body:   loginRequest{Email: email, Password: password},
		public: true,
	})
}
