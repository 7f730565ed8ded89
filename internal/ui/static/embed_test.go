package static

import (
	"io/fs"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFS_ContainsStyles(t *testing.T) {
	data, err := fs.ReadFile(FS(), "css/app.css")
	if err != nil {
		t.Fatalf("css/app.css: %v", err)
	}
	if len(data) == 0 {
		t.Error("css/app.css пустой")
	}
}

func TestFileSystem_Serve(t *testing.T) {
	h := http.StripPrefix("/static/", http.FileServer(FileSystem()))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/static/css/app.css", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("код ответа = %d, ожидается %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/css; charset=utf-8" {
		t.Errorf("Content-Type = %q, ожидается text/css", ct)
	}
}
