package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/ahmad115kobane-wq/adminapp/internal/domain/model"
)

// S3Config — параметры S3-совместимого хранилища (AWS S3, Cloudflare R2, MinIO).
type S3Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	// PublicBaseURL — адрес, по которому объекты доступны приложению.
	PublicBaseURL string
	// Prefix — каталог ключей внутри бакета.
	Prefix string
}

// objectStore — операции S3-клиента, используемые загрузчиком.
type objectStore interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3 — загрузка напрямую в S3-совместимое хранилище. Реализует Discarder.
type S3 struct {
	client        objectStore
	bucket        string
	publicBaseURL string
	prefix        string
	logger        *slog.Logger
}

// NewS3 создаёт загрузчик S3.
func NewS3(ctx context.Context, cfg S3Config, logger *slog.Logger) (*S3, error) {
	if cfg.Bucket == "" || cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" || cfg.PublicBaseURL == "" {
		return nil, errors.New("конфигурация S3 неполна: bucket, ключи доступа и публичный адрес обязательны")
	}
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	sdkCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("загрузка конфигурации AWS SDK: %w", err)
	}

	client := s3.NewFromConfig(sdkCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3WithClient(client, cfg, logger), nil
}

func newS3WithClient(client objectStore, cfg S3Config, logger *slog.Logger) *S3 {
	return &S3{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		prefix:        strings.Trim(cfg.Prefix, "/"),
		logger:        logger.With(slog.String("component", "s3_uploader")),
	}
}

// objectKey формирует уникальный ключ с расширением исходного файла.
func (u *S3) objectKey(name string) string {
	key := uuid.NewString() + strings.ToLower(path.Ext(name))
	if u.prefix != "" {
		key = u.prefix + "/" + key
	}
	return key
}

// Upload кладёт файл в бакет и возвращает публичный адрес.
func (u *S3) Upload(ctx context.Context, f *model.File) (string, error) {
	if f.Empty() {
		return "", ErrEmptyFile
	}
	key := u.objectKey(f.Name)
	contentType := f.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(f.Data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("загрузка объекта %s: %w", key, err)
	}

	u.logger.Debug("Файл загружен",
		slog.String("key", key),
		slog.Int("size", len(f.Data)),
	)
	return u.publicBaseURL + "/" + key, nil
}

// Discard удаляет ранее загруженный объект по его публичному адресу.
// Адреса вне PublicBaseURL игнорируются.
func (u *S3) Discard(ctx context.Context, stored string) error {
	key, ok := strings.CutPrefix(stored, u.publicBaseURL+"/")
	if !ok || key == "" {
		return nil
	}
	if _, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return fmt.Errorf("удаление объекта %s: %w", key, err)
	}
	u.logger.Info("Загруженный файл удалён после неудачного сохранения",
		slog.String("key", key),
	)
	return nil
}
