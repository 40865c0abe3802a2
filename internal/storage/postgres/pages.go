package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/pribylovaa/tenders-service/internal/models"
	"github.com/pribylovaa/tenders-service/internal/storage"
	"github.com/pribylovaa/tenders-service/pkg/log"
)

// TryReadPage читает страницу по номеру.
// Отсутствие строки — штатно; ошибки БД и разбора логируются и считаются отсутствием.
func (s *PagesStorage) TryReadPage(ctx context.Context, pageNumber int) (*models.TendersPage, bool) {
	const op = "storage.postgres.TryReadPage"

	if pageNumber < 1 || ctx.Err() != nil {
		return nil, false
	}

	var payload []byte
	err := s.db.QueryRow(ctx, `
	SELECT payload
	FROM tender_pages
	WHERE page_number = $1
	`, pageNumber).Scan(&payload)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) && ctx.Err() == nil {
			log.From(ctx).Warn("page_read_failed",
				slog.String("op", op),
				slog.Int("page", pageNumber),
				slog.String("err", err.Error()),
			)
		}

		return nil, false
	}

	var page models.TendersPage
	if err := json.Unmarshal(payload, &page); err != nil {
		log.From(ctx).Warn("page_decode_failed",
			slog.String("op", op),
			slog.Int("page", pageNumber),
			slog.String("err", err.Error()),
		)

		return nil, false
	}

	return &page, true
}

// WritePage сохраняет страницу одним upsert-ом: строка заменяется целиком
// в рамках одной транзакции, частичная запись невидима читателям.
func (s *PagesStorage) WritePage(ctx context.Context, pageNumber int, page *models.TendersPage) error {
	const op = "storage.postgres.WritePage"

	if pageNumber < 1 {
		return fmt.Errorf("%s: %w", op, storage.ErrInvalidPageNumber)
	}

	if page == nil {
		return fmt.Errorf("%s: nil page", op)
	}

	payload, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", op, err)
	}

	_, err = s.db.Exec(ctx, `
	INSERT INTO tender_pages (page_number, payload, stored_at)
	VALUES ($1, $2, now())
	ON CONFLICT (page_number) DO UPDATE
	SET payload = EXCLUDED.payload,
		stored_at = EXCLUDED.stored_at
	`, pageNumber, payload)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
