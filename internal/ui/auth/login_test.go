package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"

	"github.com/ahmad115kobane-wq/adminapp/internal/apiclient"
)

const testKeyID = "test-key-ad"

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// buildJWKSetJSON строит JWKS JSON из RSA публичного ключа.
func buildJWKSetJSON(pub *rsa.PublicKey, kid string) json.RawMessage {
	jwks := map[string]any{
		"keys": []map[string]any{{
			"kty": "RSA",
			"kid": kid,
			"use": "sig",
			"alg": "RS256",
			"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
		}},
	}
	data, _ := json.Marshal(jwks)
	return data
}

// newLoginBackend поднимает mock-backend /auth/login, выдающий token.
func newLoginBackend(t *testing.T, token, role string) *apiclient.Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			http.NotFound(w, r)
			return
		}
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		if body.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"message":"بيانات الدخول غير صحيحة"}`)
			return
		}
		fmt.Fprintf(w, `{"data":{"token":%q,"user":{"id":"u1","name":"Admin","email":%q,"role":%q}}}`,
			token, body.Email, role)
	}))
	t.Cleanup(server.Close)

	api, err := apiclient.New(server.URL, "", 5*time.Second, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	return api
}

func hmacToken(t *testing.T, secret string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "u1",
		"role": "admin",
		"exp":  jwt.NewNumericDate(exp),
	})
	s, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// TestLogin_HMAC проверяет вход с проверкой HS256 и срок сессии по exp токена.
func TestLogin_HMAC(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	api := newLoginBackend(t, hmacToken(t, "shh", exp), "admin")
	sm, _ := NewSessionManager("k", false, 24*time.Hour, nil)
	a := NewAuthenticator(api, NewHMACVerifier("shh", ""), sm, []string{"admin"}, testLogger())

	s, err := a.Login(context.Background(), " admin@example.com ", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if s.ID == "" || s.UserID != "u1" || s.Email != "admin@example.com" || s.Role != "admin" {
		t.Errorf("сессия = %+v", s)
	}
	if s.ExpiresAt != exp.Unix() {
		t.Errorf("ExpiresAt = %d, ожидается %d", s.ExpiresAt, exp.Unix())
	}
}

// TestLogin_Rejections проверяет отказ backend, неверную подпись и роль.
func TestLogin_Rejections(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	sm, _ := NewSessionManager("k", false, time.Hour, nil)

	t.Run("неверный пароль", func(t *testing.T) {
		a := NewAuthenticator(newLoginBackend(t, "x", "admin"), nil, sm, nil, testLogger())
		_, err := a.Login(context.Background(), "a@b.c", "wrong")
		if !apiclient.IsUnauthorized(err) {
			t.Fatalf("ожидалась 401, получено %v", err)
		}
		if apiclient.Message(err) != "بيانات الدخول غير صحيحة" {
			t.Errorf("Message = %q", apiclient.Message(err))
		}
	})

	t.Run("чужая подпись", func(t *testing.T) {
		api := newLoginBackend(t, hmacToken(t, "other", exp), "admin")
		a := NewAuthenticator(api, NewHMACVerifier("shh", ""), sm, nil, testLogger())
		if _, err := a.Login(context.Background(), "a@b.c", "secret"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("ожидалась ErrInvalidToken, получено %v", err)
		}
	})

	t.Run("роль не допущена", func(t *testing.T) {
		api := newLoginBackend(t, "opaque-token", "user")
		a := NewAuthenticator(api, nil, sm, []string{"admin"}, testLogger())
		if _, err := a.Login(context.Background(), "a@b.c", "secret"); !errors.Is(err, ErrRoleNotAllowed) {
			t.Errorf("ожидалась ErrRoleNotAllowed, получено %v", err)
		}
	})
}

// TestLogin_OpaqueToken проверяет непрозрачный токен без проверки подписи.
func TestLogin_OpaqueToken(t *testing.T) {
	clock := clockwork.NewFakeClock()
	sm, _ := NewSessionManager("k", false, time.Hour, clock)
	a := NewAuthenticator(newLoginBackend(t, "opaque-token", "ADMIN"), nil, sm, []string{"admin"}, testLogger())

	s, err := a.Login(context.Background(), "a@b.c", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if s.Token != "opaque-token" {
		t.Errorf("Token = %q", s.Token)
	}
	if s.ExpiresAt != clock.Now().Add(time.Hour).Unix() {
		t.Errorf("ExpiresAt = %d, ожидается now+TTL", s.ExpiresAt)
	}
}

// TestLogin_JWKS проверяет проверку RS256 через JWKS.
func TestLogin_JWKS(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatal(err)
	}
	kf, err := keyfunc.NewJWKSetJSON(buildJWKSetJSON(&key.PublicKey, testKeyID))
	if err != nil {
		t.Fatalf("не удалось создать keyfunc: %v", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub":  "u1",
		"iss":  "https://sports-live.test",
		"name": "Admin",
		"exp":  jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token.Header["kid"] = testKeyID
	signed, err := token.SignedString(key)
	if err != nil {
		t.Fatal(err)
	}

	sm, _ := NewSessionManager("k", false, time.Hour, nil)
	api := newLoginBackend(t, signed, "admin")

	a := NewAuthenticator(api, NewVerifierWithKeyfunc(kf, "https://sports-live.test"), sm, nil, testLogger())
	if _, err := a.Login(context.Background(), "a@b.c", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	wrongIssuer := NewAuthenticator(api, NewVerifierWithKeyfunc(kf, "https://other.test"), sm, nil, testLogger())
	if _, err := wrongIssuer.Login(context.Background(), "a@b.c", "secret"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("ожидалась ErrInvalidToken для чужого issuer, получено %v", err)
	}
}
