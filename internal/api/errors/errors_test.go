package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name     string
		write    func(w http.ResponseWriter)
		wantCode int
		wantErr  string
	}{
		{"not found", func(w http.ResponseWriter) { NotFound(w, nil) }, http.StatusNotFound, CodeNotFound},
		{"method", func(w http.ResponseWriter) { MethodNotAllowed(w, nil) }, http.StatusMethodNotAllowed, CodeMethodNotAllowed},
		{"unavailable", func(w http.ResponseWriter) { Unavailable(w, "нет") }, http.StatusServiceUnavailable, CodeUnavailable},
		{"internal", func(w http.ResponseWriter) { InternalError(w, "сбой") }, http.StatusInternalServerError, CodeInternalError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec)

			if rec.Code != tt.wantCode {
				t.Errorf("код ответа = %d, ожидается %d", rec.Code, tt.wantCode)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q, ожидается application/json", ct)
			}
			var body errorBody
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("разбор ответа: %v", err)
			}
			if body.Error.Code != tt.wantErr || body.Error.Message == "" {
				t.Errorf("ошибка = %+v, ожидается код %s", body.Error, tt.wantErr)
			}
		})
	}
}
