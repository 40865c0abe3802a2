// file предоставляет реализацию storage.PagesStorage на локальном диске.
// Каждая страница — отдельный JSON-файл в каталоге dir; запись идёт через
// временный файл в том же каталоге и rename поверх итогового имени.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pribylovaa/tenders-service/internal/models"
	"github.com/pribylovaa/tenders-service/internal/storage"
	"github.com/pribylovaa/tenders-service/pkg/log"
)

// PagesStorage — файловое хранилище страниц.
type PagesStorage struct {
	dir string
}

// New создаёт каталог dir (если его нет) и возвращает хранилище.
func New(dir string) (*PagesStorage, error) {
	const op = "storage.file.New"

	if dir == "" {
		return nil, fmt.Errorf("%s: empty dir", op)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &PagesStorage{dir: dir}, nil
}

// Dir возвращает каталог хранилища.
func (s *PagesStorage) Dir() string { return s.dir }

func (s *PagesStorage) pagePath(pageNumber int) string {
	return filepath.Join(s.dir, storage.PageKey(pageNumber))
}

// TryReadPage читает страницу с диска.
// Отсутствующий файл — штатная ситуация, битый JSON логируется и считается отсутствием.
func (s *PagesStorage) TryReadPage(ctx context.Context, pageNumber int) (*models.TendersPage, bool) {
	const op = "storage.file.TryReadPage"

	if pageNumber < 1 || ctx.Err() != nil {
		return nil, false
	}

	lg := log.From(ctx)
	path := s.pagePath(pageNumber)

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			lg.Warn("page_read_failed",
				slog.String("op", op),
				slog.Int("page", pageNumber),
				slog.String("path", path),
				slog.String("err", err.Error()),
			)
		}

		return nil, false
	}

	var page models.TendersPage
	if err := json.Unmarshal(data, &page); err != nil {
		lg.Warn("page_decode_failed",
			slog.String("op", op),
			slog.Int("page", pageNumber),
			slog.String("path", path),
			slog.String("err", err.Error()),
		)

		return nil, false
	}

	return &page, true
}

// WritePage сериализует страницу во временный файл и переименовывает его
// в итоговое имя. При любой ошибке временный файл удаляется.
func (s *PagesStorage) WritePage(ctx context.Context, pageNumber int, page *models.TendersPage) (err error) {
	const op = "storage.file.WritePage"

	if pageNumber < 1 {
		return fmt.Errorf("%s: %w", op, storage.ErrInvalidPageNumber)
	}

	if page == nil {
		return fmt.Errorf("%s: nil page", op)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", op, err)
	}

	tmp, err := os.CreateTemp(s.dir, storage.PageKey(pageNumber)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%s: create temp: %w", op, err)
	}

	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("%s: write: %w", op, err)
	}

	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("%s: sync: %w", op, err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("%s: close: %w", op, err)
	}

	if err = os.Rename(tmpName, s.pagePath(pageNumber)); err != nil {
		return fmt.Errorf("%s: rename: %w", op, err)
	}

	return nil
}

// Проверка выполнения контракта верхнего уровня.
var _ storage.PagesStorage = (*PagesStorage)(nil)
