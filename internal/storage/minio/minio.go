// minio предоставляет реализацию storage.PagesStorage на базе MinIO/S3.
// minio.go - конструктор клиента MinIO: нормализует endpoint,
// настраивает Secure/creds и проверяет наличие целевого бакета.
// pages.go — чтение и запись страниц как отдельных объектов "<prefix><PageKey>".
package minio

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pribylovaa/tenders-service/internal/config"
	"github.com/pribylovaa/tenders-service/internal/storage"
)

// PagesStorage — адаптер MinIO для хранения страниц.
type PagesStorage struct {
	cfg    config.S3Config
	client *mclient.Client
}

// New создает и инициализирует клиент MinIO.
// Делает endpoint-перенастройку (убирает схему), подбирает Secure по схеме
// и выполняет fail-fast-проверку доступности бакета.
func New(ctx context.Context, cfg config.S3Config) (*PagesStorage, error) {
	const op = "storage.minio.New"

	endpoint := cfg.Endpoint
	secure := strings.HasPrefix(endpoint, "https://")

	if u, err := url.Parse(endpoint); err == nil && u.Scheme != "" {
		endpoint = u.Host
		secure = u.Scheme == "https"
	}

	client, err := mclient.New(endpoint, &mclient.Options{
		Creds:  credentials.NewStaticV4(cfg.RootUser, cfg.RootPassword, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if !exists {
		return nil, fmt.Errorf("%s: bucket %q does not exist", op, cfg.Bucket)
	}

	return &PagesStorage{cfg: cfg, client: client}, nil
}

// objectKey — ключ объекта страницы с учётом префикса.
func (s *PagesStorage) objectKey(pageNumber int) string {
	prefix := strings.Trim(s.cfg.Prefix, "/")
	if prefix == "" {
		return storage.PageKey(pageNumber)
	}

	return prefix + "/" + storage.PageKey(pageNumber)
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.PagesStorage = (*PagesStorage)(nil)
