// Пакет auth — аутентификация операторов и управление сессиями Admin Dashboard.
// Шифрование сессий AES-256-GCM, вход через backend /auth/login.
package auth

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
)

// Имя cookie для зашифрованной сессии.
const SessionCookieName = "ad_session"

// DefaultSessionTTL — время жизни сессии по умолчанию.
const DefaultSessionTTL = 24 * time.Hour

// SessionData — данные сессии оператора, хранящиеся в зашифрованном cookie.
// Передаётся явно в обработчики страниц и клиент backend.
type SessionData struct {
	// ID — идентификатор сессии (ключ состояния страниц).
	ID string `json:"id"`
	// Token — токен backend, которым подписываются запросы оператора.
	Token string `json:"token"`
	// ExpiresAt — время истечения сессии (Unix timestamp).
	ExpiresAt int64 `json:"expires_at"`
	// UserID — id пользователя backend.
	UserID string `json:"user_id"`
	// Name — отображаемое имя оператора.
	Name string `json:"name"`
	// Email — email оператора.
	Email string `json:"email"`
	// Role — роль из ответа backend.
	Role string `json:"role"`
}

// IsExpired проверяет, истекла ли сессия на момент now.
func (s *SessionData) IsExpired(now time.Time) bool {
	return now.Unix() >= s.ExpiresAt
}

// SessionManager — менеджер сессий.
// Шифрует/дешифрует SessionData в HTTP cookies через AES-256-GCM.
type SessionManager struct {
	gcm    cipher.AEAD
	secure bool
	ttl    time.Duration
	clock  clockwork.Clock
}

// NewSessionManager создаёт новый менеджер сессий.
// key — ключ AES-256-GCM (base64 32 байта или произвольная строка).
// Если key пустой — генерируется случайный ключ (непостоянный между рестартами).
func NewSessionManager(key string, secure bool, ttl time.Duration, clock clockwork.Clock) (*SessionManager, error) {
	var keyBytes []byte

	if key == "" {
		keyBytes = make([]byte, 32)
		if _, err := io.ReadFull(rand.Reader, keyBytes); err != nil {
			return nil, fmt.Errorf("ошибка генерации ключа сессии: %w", err)
		}
	} else {
		var err error
		keyBytes, err = base64.StdEncoding.DecodeString(key)
		if err != nil || len(keyBytes) != 32 {
			keyBytes = sha256Key(key)
		}
	}

	block, err := aes.NewCipher(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания AES cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания GCM: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &SessionManager{
		gcm:    gcm,
		secure: secure,
		ttl:    ttl,
		clock:  clock,
	}, nil
}

// TTL возвращает время жизни новой сессии.
func (sm *SessionManager) TTL() time.Duration {
	return sm.ttl
}

// Now возвращает текущее время часов менеджера.
func (sm *SessionManager) Now() time.Time {
	return sm.clock.Now()
}

// Encrypt шифрует SessionData и возвращает base64-строку.
func (sm *SessionManager) Encrypt(data *SessionData) (string, error) {
	plaintext, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации сессии: %w", err)
	}

	nonce := make([]byte, sm.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("ошибка генерации nonce: %w", err)
	}

	ciphertext := sm.gcm.Seal(nonce, nonce, plaintext, nil)
	return base64.URLEncoding.EncodeToString(ciphertext), nil
}

// Decrypt дешифрует base64-строку обратно в SessionData.
func (sm *SessionManager) Decrypt(encrypted string) (*SessionData, error) {
	ciphertext, err := base64.URLEncoding.DecodeString(encrypted)
	if err != nil {
		return nil, fmt.Errorf("ошибка декодирования base64: %w", err)
	}

	nonceSize := sm.gcm.NonceSize()
	if len(ciphertext) < nonceSize {
		return nil, errors.New("зашифрованные данные слишком короткие")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := sm.gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка дешифрования сессии: %w", err)
	}

	var data SessionData
	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, fmt.Errorf("ошибка десериализации сессии: %w", err)
	}

	return &data, nil
}

// SetSessionCookie устанавливает зашифрованный session cookie в ответ.
// MaxAge cookie совпадает с оставшимся временем жизни сессии.
func (sm *SessionManager) SetSessionCookie(w http.ResponseWriter, data *SessionData) error {
	encrypted, err := sm.Encrypt(data)
	if err != nil {
		return err
	}

	maxAge := int(data.ExpiresAt - sm.clock.Now().Unix())
	if maxAge <= 0 {
		maxAge = -1
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    encrypted,
		Path:     "/admin",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// GetSessionFromRequest извлекает и дешифрует SessionData из cookie запроса.
// Возвращает nil, nil если cookie отсутствует.
func (sm *SessionManager) GetSessionFromRequest(r *http.Request) (*SessionData, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, err
	}

	return sm.Decrypt(cookie.Value)
}

// ClearSessionCookie удаляет session cookie из ответа (logout).
func (sm *SessionManager) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/admin",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// sha256Key хеширует строковый ключ в 32 bytes через SHA-256.
func sha256Key(key string) []byte {
	h := sha256.Sum256([]byte(key))
	return h[:]
}
