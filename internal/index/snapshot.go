// index — неизменяемый снапшот тендеров и выборка по нему.
// Снапшот строится один раз при пересборке и дальше только читается,
// поэтому читателям не нужны блокировки.
package index

import (
	"slices"
	"time"

	"github.com/pribylovaa/tenders-service/internal/models"
)

// Source — откуда собран снапшот.
type Source string

const (
	// SourceAPI — пересборка через источник (с возможным добором с диска).
	SourceAPI Source = "api"
	// SourceDisk — прогрев из хранилища страниц без сети.
	SourceDisk Source = "disk"
)

// BuildInfo — метаданные сборки снапшота.
type BuildInfo struct {
	BuildID string
	Source  Source
	BuiltAt time.Time
	// PageLimit — сколько страниц запрашивалось (1..N).
	PageLimit int
	// PagesLoaded — сколько страниц вошло в снапшот, из них PagesFromDisk — с диска.
	PagesLoaded   int
	PagesFromDisk int
	// FailedPages — страницы, отброшенные после повтора и без копии на диске.
	FailedPages []int
}

// Degraded сообщает, что снапшот собран не из всех запрошенных страниц.
func (b BuildInfo) Degraded() bool {
	return len(b.FailedPages) > 0
}

// Snapshot — опубликованное состояние индекса.
type Snapshot struct {
	tenders []models.Tender
	// firstByID — позиция первого тендера с данным id.
	firstByID map[int]int
	info      BuildInfo
}

// NewSnapshot собирает снапшот. Входной срез копируется, дальнейшие
// изменения вызывающей стороной на снапшот не влияют.
func NewSnapshot(tenders []models.Tender, info BuildInfo) *Snapshot {
	owned := make([]models.Tender, len(tenders))
	firstByID := make(map[int]int, len(tenders))

	for i, t := range tenders {
		t.Suppliers = slices.Clone(t.Suppliers)
		owned[i] = t

		if _, ok := firstByID[t.ID]; !ok {
			firstByID[t.ID] = i
		}
	}

	info.FailedPages = slices.Clone(info.FailedPages)

	return &Snapshot{tenders: owned, firstByID: firstByID, info: info}
}

// Len — число тендеров в снапшоте.
func (s *Snapshot) Len() int {
	return len(s.tenders)
}

// Info возвращает копию метаданных сборки.
func (s *Snapshot) Info() BuildInfo {
	info := s.info
	info.FailedPages = slices.Clone(s.info.FailedPages)
	return info
}

// ByID возвращает первый тендер с данным id.
func (s *Snapshot) ByID(id int) (models.Tender, bool) {
	i, ok := s.firstByID[id]
	if !ok {
		return models.Tender{}, false
	}

	return cloneTender(s.tenders[i]), true
}

func cloneTender(t models.Tender) models.Tender {
	t.Suppliers = slices.Clone(t.Suppliers)
	return t
}
