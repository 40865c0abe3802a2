package service

import (
	"context"
	"sync"
	"time"

	"github.com/pribylovaa/tenders-service/internal/config"
	"github.com/pribylovaa/tenders-service/internal/models"
	"github.com/shopspring/decimal"
)

// testConfig — конфигурация сервиса для тестов: быстрый повтор, 2 потока.
func testConfig(maxPages int) config.Config {
	return config.Config{
		Source: config.SourceConfig{
			MaxPages:       maxPages,
			MaxConcurrency: 2,
		},
		Refresh: config.RefreshConfig{
			Interval:   time.Hour,
			RetryDelay: time.Millisecond,
		},
		Limits: config.LimitsConfig{Default: 100, Max: 1000},
	}
}

func strPtr(s string) *string { return &s }

// rawItem — «сырой» тендер с суммой и поставщиками.
func rawItem(id int, date models.Date, amount string, suppliers ...models.SupplierItem) models.TenderItem {
	item := models.TenderItem{
		ID:    models.FlexInt(id),
		Date:  date,
		Title: strPtr("tender"),
	}

	if amount != "" {
		item.AwardedValueEur = models.SomeDecimal(decimal.RequireFromString(amount))
	}

	if len(suppliers) > 0 {
		item.Awarded = []models.AwardedGroup{{Suppliers: suppliers}}
	}

	return item
}

// rawPage — страница с одним тендером, id которого равен номеру страницы.
func rawPage(n int) *models.TendersPage {
	return &models.TendersPage{
		PageNumber: n,
		PageSize:   1,
		Data:       []models.TenderItem{rawItem(n, models.NewDate(2024, 1, n), "10")},
	}
}

// stubSource — источник на функциях; считает вызовы и одновременные запросы.
type stubSource struct {
	page func(ctx context.Context, n int) (*models.TendersPage, error)
	byID func(ctx context.Context, id int) (*models.TenderItem, error)

	mu       sync.Mutex
	calls    map[int]int
	inFlight int
	peak     int
}

func (s *stubSource) TendersPage(ctx context.Context, n int) (*models.TendersPage, error) {
	s.mu.Lock()
	if s.calls == nil {
		s.calls = make(map[int]int)
	}
	s.calls[n]++
	s.inFlight++
	s.peak = max(s.peak, s.inFlight)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}()

	if s.page == nil {
		return rawPage(n), nil
	}

	return s.page(ctx, n)
}

func (s *stubSource) TenderByID(ctx context.Context, id int) (*models.TenderItem, error) {
	return s.byID(ctx, id)
}

func (s *stubSource) callsFor(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[n]
}

func (s *stubSource) totalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, c := range s.calls {
		total += c
	}
	return total
}

func (s *stubSource) peakInFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.peak
}

// memPages — хранилище страниц в памяти.
type memPages struct {
	mu       sync.Mutex
	pages    map[int]*models.TendersPage
	writes   int
	writeErr error
}

func newMemPages(pages ...*models.TendersPage) *memPages {
	m := &memPages{pages: make(map[int]*models.TendersPage)}
	for _, p := range pages {
		m.pages[p.PageNumber] = p
	}
	return m
}

func (m *memPages) TryReadPage(_ context.Context, n int) (*models.TendersPage, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.pages[n]
	return p, ok
}

func (m *memPages) WritePage(_ context.Context, n int, page *models.TendersPage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes++
	if m.writeErr != nil {
		return m.writeErr
	}
	m.pages[n] = page
	return nil
}

func (m *memPages) writeCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
