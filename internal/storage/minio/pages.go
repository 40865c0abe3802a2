package minio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	mclient "github.com/minio/minio-go/v7"
	"github.com/pribylovaa/tenders-service/internal/models"
	"github.com/pribylovaa/tenders-service/internal/storage"
	"github.com/pribylovaa/tenders-service/pkg/log"
)

// TryReadPage скачивает объект страницы и разбирает его.
// NoSuchKey — штатное отсутствие, прочие ошибки логируются.
func (s *PagesStorage) TryReadPage(ctx context.Context, pageNumber int) (*models.TendersPage, bool) {
	const op = "storage.minio.TryReadPage"

	if pageNumber < 1 || ctx.Err() != nil {
		return nil, false
	}

	key := s.objectKey(pageNumber)

	obj, err := s.client.GetObject(ctx, s.cfg.Bucket, key, mclient.GetObjectOptions{})
	if err != nil {
		s.logReadError(ctx, op, pageNumber, key, err)
		return nil, false
	}
	defer obj.Close()

	// Для GetObject ошибка «нет ключа» приходит только при чтении.
	data, err := io.ReadAll(obj)
	if err != nil {
		s.logReadError(ctx, op, pageNumber, key, err)
		return nil, false
	}

	var page models.TendersPage
	if err := json.Unmarshal(data, &page); err != nil {
		log.From(ctx).Warn("page_decode_failed",
			slog.String("op", op),
			slog.Int("page", pageNumber),
			slog.String("key", key),
			slog.String("err", err.Error()),
		)

		return nil, false
	}

	return &page, true
}

func (s *PagesStorage) logReadError(ctx context.Context, op string, pageNumber int, key string, err error) {
	errResp := mclient.ToErrorResponse(err)
	if errResp.Code == "NoSuchKey" || errResp.StatusCode == http.StatusNotFound || ctx.Err() != nil {
		return
	}

	log.From(ctx).Warn("page_read_failed",
		slog.String("op", op),
		slog.Int("page", pageNumber),
		slog.String("key", key),
		slog.String("err", err.Error()),
	)
}

// WritePage кладёт страницу одним PutObject: объект становится видимым
// только после полной загрузки, старая версия заменяется целиком.
func (s *PagesStorage) WritePage(ctx context.Context, pageNumber int, page *models.TendersPage) error {
	const op = "storage.minio.WritePage"

	if pageNumber < 1 {
		return fmt.Errorf("%s: %w", op, storage.ErrInvalidPageNumber)
	}

	if page == nil {
		return fmt.Errorf("%s: nil page", op)
	}

	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", op, err)
	}

	_, err = s.client.PutObject(ctx, s.cfg.Bucket, s.objectKey(pageNumber),
		bytes.NewReader(data), int64(len(data)),
		mclient.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
