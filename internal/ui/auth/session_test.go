package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

// TestSessionEncryptDecryptRoundTrip проверяет шифрование и дешифрование SessionData.
func TestSessionEncryptDecryptRoundTrip(t *testing.T) {
	sm, err := NewSessionManager("", false, time.Hour, nil)
	if err != nil {
		t.Fatalf("Ошибка создания SessionManager: %v", err)
	}

	original := &SessionData{
		ID:        "s1",
		Token:     "backend-token",
		ExpiresAt: time.Now().Add(5 * time.Minute).Unix(),
		UserID:    "u1",
		Name:      "مدير",
		Email:     "admin@example.com",
		Role:      "admin",
	}

	encrypted, err := sm.Encrypt(original)
	if err != nil {
		t.Fatalf("Ошибка шифрования: %v", err)
	}

	decrypted, err := sm.Decrypt(encrypted)
	if err != nil {
		t.Fatalf("Ошибка дешифрования: %v", err)
	}
	if *decrypted != *original {
		t.Errorf("сессия = %+v, ожидается %+v", decrypted, original)
	}
}

// TestSessionManagerWithStringKey проверяет, что ключ из строки стабилен между экземплярами.
func TestSessionManagerWithStringKey(t *testing.T) {
	sm1, err := NewSessionManager("my-secret-key-for-testing", false, 0, nil)
	if err != nil {
		t.Fatalf("Ошибка создания SessionManager: %v", err)
	}
	sm2, _ := NewSessionManager("my-secret-key-for-testing", false, 0, nil)

	encrypted, err := sm1.Encrypt(&SessionData{Token: "t", Role: "admin"})
	if err != nil {
		t.Fatalf("Ошибка шифрования: %v", err)
	}
	if _, err := sm2.Decrypt(encrypted); err != nil {
		t.Errorf("сессия должна дешифроваться тем же ключом: %v", err)
	}
	if sm1.TTL() != DefaultSessionTTL {
		t.Errorf("TTL = %v, ожидается %v", sm1.TTL(), DefaultSessionTTL)
	}
}

// TestSessionDecryptTampered проверяет отказ для повреждённых данных.
func TestSessionDecryptTampered(t *testing.T) {
	sm, _ := NewSessionManager("k", false, 0, nil)
	other, _ := NewSessionManager("другой ключ", false, 0, nil)

	encrypted, _ := other.Encrypt(&SessionData{Token: "t"})
	for _, in := range []string{"", "!!!", "c2hvcnQ=", encrypted} {
		if _, err := sm.Decrypt(in); err == nil {
			t.Errorf("Decrypt(%q): ожидалась ошибка", in)
		}
	}
}

// TestSessionIsExpired проверяет истечение сессии по часам.
func TestSessionIsExpired(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC))
	s := &SessionData{ExpiresAt: clock.Now().Add(time.Minute).Unix()}

	if s.IsExpired(clock.Now()) {
		t.Error("сессия не должна быть истёкшей")
	}
	clock.Advance(time.Minute)
	if !s.IsExpired(clock.Now()) {
		t.Error("сессия должна истечь")
	}
}

// TestSessionCookie проверяет установку, чтение и очистку cookie.
func TestSessionCookie(t *testing.T) {
	clock := clockwork.NewFakeClock()
	sm, _ := NewSessionManager("k", true, time.Hour, clock)
	data := &SessionData{ID: "s1", Token: "t", ExpiresAt: clock.Now().Add(30 * time.Minute).Unix()}

	rec := httptest.NewRecorder()
	if err := sm.SetSessionCookie(rec, data); err != nil {
		t.Fatalf("SetSessionCookie: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("cookies = %d, ожидается 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != SessionCookieName || c.Path != "/admin" || !c.HttpOnly || !c.Secure {
		t.Errorf("cookie = %+v", c)
	}
	if c.MaxAge != 30*60 {
		t.Errorf("MaxAge = %d, ожидается %d", c.MaxAge, 30*60)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	req.AddCookie(c)
	got, err := sm.GetSessionFromRequest(req)
	if err != nil || got == nil || got.ID != "s1" {
		t.Errorf("GetSessionFromRequest = %+v, %v", got, err)
	}

	none, err := sm.GetSessionFromRequest(httptest.NewRequest(http.MethodGet, "/admin/", nil))
	if none != nil || err != nil {
		t.Errorf("без cookie ожидается nil, nil; получено %+v, %v", none, err)
	}

	rec = httptest.NewRecorder()
	sm.ClearSessionCookie(rec)
	if cleared := rec.Result().Cookies()[0]; cleared.MaxAge >= 0 {
		t.Errorf("MaxAge очистки = %d", cleared.MaxAge)
	}
}
