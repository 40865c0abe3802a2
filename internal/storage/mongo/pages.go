package mongo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pribylovaa/tenders-service/internal/models"
	"github.com/pribylovaa/tenders-service/internal/storage"
	"github.com/pribylovaa/tenders-service/pkg/log"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// pageDoc — документ страницы. Payload хранится JSON-строкой в формате
// источника, чтобы разбор совпадал с остальными хранилищами.
type pageDoc struct {
	ID       int       `bson:"_id"`
	Payload  string    `bson:"payload"`
	StoredAt time.Time `bson:"stored_at"`
}

// TryReadPage ищет документ по номеру страницы.
func (s *PagesStorage) TryReadPage(ctx context.Context, pageNumber int) (*models.TendersPage, bool) {
	const op = "storage.mongo.TryReadPage"

	if pageNumber < 1 || ctx.Err() != nil {
		return nil, false
	}

	var doc pageDoc
	err := s.pages.FindOne(ctx, bson.M{"_id": pageNumber}).Decode(&doc)
	if err != nil {
		if !errors.Is(err, mongodriver.ErrNoDocuments) && ctx.Err() == nil {
			log.From(ctx).Warn("page_read_failed",
				slog.String("op", op),
				slog.Int("page", pageNumber),
				slog.String("err", err.Error()),
			)
		}

		return nil, false
	}

	var page models.TendersPage
	if err := json.Unmarshal([]byte(doc.Payload), &page); err != nil {
		log.From(ctx).Warn("page_decode_failed",
			slog.String("op", op),
			slog.Int("page", pageNumber),
			slog.String("err", err.Error()),
		)

		return nil, false
	}

	return &page, true
}

// WritePage заменяет документ страницы целиком (upsert).
// Замена одного документа в MongoDB атомарна.
func (s *PagesStorage) WritePage(ctx context.Context, pageNumber int, page *models.TendersPage) error {
	const op = "storage.mongo.WritePage"

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

	doc := pageDoc{
		ID:       pageNumber,
		Payload:  string(payload),
		StoredAt: time.Now().UTC(),
	}

	_, err = s.pages.ReplaceOne(ctx, bson.M{"_id": pageNumber}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
