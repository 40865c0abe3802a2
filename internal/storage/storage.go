// storage определяет контракт долговременного хранилища страниц источника.
// Хранилище — оптимизация, а не источник истины: ошибки чтения трактуются
// как отсутствие страницы, ошибки записи логируются вызывающей стороной.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/pribylovaa/tenders-service/internal/models"
)

//go:generate mockgen -source=storage.go -destination=../../mocks/mock_pages_storage.go -package=mocks

// ErrInvalidPageNumber — номер страницы меньше 1.
var ErrInvalidPageNumber = errors.New("invalid page number")

// PagesStorage описывает постраничное хранение «сырых» выдач источника.
type PagesStorage interface {
	// TryReadPage возвращает ранее сохранённую страницу.
	// ok=false, если хранение выключено, страница не записывалась
	// или её содержимое не разбирается. Ошибки не пробрасываются.
	TryReadPage(ctx context.Context, pageNumber int) (page *models.TendersPage, ok bool)
	// WritePage атомарно заменяет сохранённую копию страницы.
	// Читатель никогда не видит частично записанную страницу.
	WritePage(ctx context.Context, pageNumber int, page *models.TendersPage) error
}

// PageKey — имя страницы в хранилище: фиксированная ширина, нули слева.
// Повторная загрузка той же страницы перезаписывает старую копию.
func PageKey(pageNumber int) string {
	return fmt.Sprintf("tenders-page-%03d.json", pageNumber)
}

// Disabled — хранилище для PERSIST_PAGES=false: ничего не хранит.
type Disabled struct{}

// TryReadPage всегда сообщает об отсутствии страницы.
func (Disabled) TryReadPage(context.Context, int) (*models.TendersPage, bool) { return nil, false }

// WritePage ничего не делает.
func (Disabled) WritePage(context.Context, int, *models.TendersPage) error { return nil }

var _ PagesStorage = Disabled{}
