package upload

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/ahmad115kobane-wq/adminapp/internal/apiclient"
	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
)

// testLogger создаёт logger для тестов.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeStore — in-memory S3.
type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	putErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (s *fakeStore) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if s.putErr != nil {
		return nil, s.putErr
	}
	data, _ := io.ReadAll(in.Body)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[aws.ToString(in.Key)] = data
	s.types[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (s *fakeStore) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

// TestS3_UploadAndDiscard проверяет загрузку и удаление по публичному адресу.
func TestS3_UploadAndDiscard(t *testing.T) {
	store := newFakeStore()
	u := newS3WithClient(store, S3Config{Bucket: "media", PublicBaseURL: "https://cdn.example.com/", Prefix: "/logos/"}, testLogger())

	url, err := u.Upload(context.Background(), &model.File{Name: "Logo.PNG", ContentType: "image/png", Data: []byte("x")})
	if err != nil {
		t.Fatalf("Ошибка Upload: %v", err)
	}
	if !strings.HasPrefix(url, "https://cdn.example.com/logos/") || !strings.HasSuffix(url, ".png") {
		t.Errorf("url = %q", url)
	}
	if len(store.objects) != 1 {
		t.Fatalf("объектов = %d, ожидается 1", len(store.objects))
	}
	for k, ct := range store.types {
		if ct != "image/png" {
			t.Errorf("ContentType %s = %q", k, ct)
		}
	}

	if err := u.Discard(context.Background(), url); err != nil {
		t.Fatalf("Ошибка Discard: %v", err)
	}
	if len(store.objects) != 0 {
		t.Errorf("объект не удалён: %v", store.objects)
	}
}

// TestS3_DiscardForeignURL проверяет, что чужие адреса не трогаются.
func TestS3_DiscardForeignURL(t *testing.T) {
	store := newFakeStore()
	store.objects["keep"] = []byte("x")
	u := newS3WithClient(store, S3Config{Bucket: "media", PublicBaseURL: "https://cdn.example.com"}, testLogger())

	if err := u.Discard(context.Background(), "/uploads/keep"); err != nil {
		t.Fatalf("Ошибка Discard: %v", err)
	}
	if len(store.objects) != 1 {
		t.Error("чужой объект не должен удаляться")
	}
}

// TestS3_Errors проверяет пустой файл и ошибку хранилища.
func TestS3_Errors(t *testing.T) {
	store := newFakeStore()
	u := newS3WithClient(store, S3Config{Bucket: "media", PublicBaseURL: "https://cdn"}, testLogger())

	if _, err := u.Upload(context.Background(), nil); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("ожидалась ErrEmptyFile, получена %v", err)
	}

	store.putErr = errors.New("denied")
	if _, err := u.Upload(context.Background(), &model.File{Name: "a", Data: []byte{1}}); err == nil {
		t.Error("ожидалась ошибка PutObject")
	}
}

// TestNewS3_Validation проверяет обязательные поля конфигурации.
func TestNewS3_Validation(t *testing.T) {
	if _, err := NewS3(context.Background(), S3Config{Bucket: "b"}, testLogger()); err == nil {
		t.Error("ожидалась ошибка неполной конфигурации")
	}
}

// TestBackend_Upload проверяет загрузку через backend и отсутствие Discarder.
func TestBackend_Upload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/store/upload" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		io.WriteString(w, `{"data":{"imageUrl":"/uploads/a.png"}}`)
	}))
	t.Cleanup(server.Close)

	api, err := apiclient.New(server.URL, "", time.Second, testLogger())
	if err != nil {
		t.Fatal(err)
	}
	u := BackendFactory(api.WithToken("tok"))

	got, err := u.Upload(context.Background(), &model.File{Name: "a.png", Data: []byte{1}})
	if err != nil {
		t.Fatalf("Ошибка Upload: %v", err)
	}
	if got != "/uploads/a.png" {
		t.Errorf("url = %q", got)
	}
	if _, ok := u.(Discarder); ok {
		t.Error("загрузчик backend не должен реализовывать Discarder")
	}
	if _, err := u.Upload(context.Background(), &model.File{}); !errors.Is(err, ErrEmptyFile) {
		t.Errorf("ожидалась ErrEmptyFile, получена %v", err)
	}
}

// TestShared проверяет, что общая фабрика игнорирует клиента.
func TestShared(t *testing.T) {
	u := newS3WithClient(newFakeStore(), S3Config{Bucket: "b", PublicBaseURL: "https://cdn"}, testLogger())
	f := Shared(u)
	if f(nil) != Uploader(u) {
		t.Error("Shared должна возвращать тот же загрузчик")
	}
}
