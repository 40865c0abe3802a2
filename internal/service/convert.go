package service

import (
	"strings"

	"github.com/pribylovaa/tenders-service/internal/index"
	"github.com/pribylovaa/tenders-service/internal/models"
	"github.com/shopspring/decimal"
)

// toDomain доводит «сырую» запись источника до инвариантов домена:
//   - ID обязателен и > 0, иначе запись отбрасывается;
//   - Title/Description := "" при отсутствии;
//   - Amount := 0 при отсутствии или отрицательном значении;
//   - Suppliers: все группы подряд, без id <= 0 и пустых (в т.ч. из пробелов) имён,
//     дедупликация по id с сохранением первого имени как есть.
//
// Возвращает (тендер, ok=false если запись следует отбросить).
func toDomain(item models.TenderItem) (models.Tender, bool) {
	if item.ID <= 0 {
		return models.Tender{}, false
	}

	tender := models.Tender{
		ID:          int(item.ID),
		Date:        item.Date,
		Title:       deref(item.Title),
		Description: deref(item.Description),
		Amount:      decimal.Zero,
	}

	if item.AwardedValueEur.Valid && !item.AwardedValueEur.Decimal.IsNegative() {
		tender.Amount = item.AwardedValueEur.Decimal
	}

	seen := make(map[int]struct{})
	for _, group := range item.Awarded {
		for _, sup := range group.Suppliers {
			name := deref(sup.Name)
			if sup.ID <= 0 || strings.TrimSpace(name) == "" {
				continue
			}

			if _, dup := seen[int(sup.ID)]; dup {
				continue
			}

			seen[int(sup.ID)] = struct{}{}
			tender.Suppliers = append(tender.Suppliers, models.Supplier{ID: int(sup.ID), Name: name})
		}
	}

	return tender, true
}

// buildSnapshot разворачивает страницы в снапшот. Дубликаты id между
// страницами не схлопываются: источник считается авторитетным.
func buildSnapshot(pages []fetchedPage, info index.BuildInfo) (*index.Snapshot, int) {
	total := 0
	for _, p := range pages {
		total += len(p.Page.Data)
	}

	tenders := make([]models.Tender, 0, total)
	skipped := 0

	for _, p := range pages {
		for _, item := range p.Page.Data {
			if t, ok := toDomain(item); ok {
				tenders = append(tenders, t)
			} else {
				skipped++
			}
		}
	}

	return index.NewSnapshot(tenders, info), skipped
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
