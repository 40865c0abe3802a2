package index

import (
	"cmp"
	"slices"

	"github.com/pribylovaa/tenders-service/internal/models"
)

// Search фильтрует, сортирует и нарезает снапшот.
//
// Правила:
//   - фильтры объединяются через AND, границы включительные;
//   - сортировка по дате или сумме, при равенстве — по id в том же направлении;
//   - PageNumber/PageSize < 1 приводятся к 1;
//   - страница за пределами выдачи — пустой список с корректными итогами.
func Search(snap *Snapshot, c models.SearchCriteria) models.PagedResult {
	pageNumber := max(c.PageNumber, 1)
	pageSize := max(c.PageSize, 1)

	matched := make([]int, 0, len(snap.tenders))
	for i := range snap.tenders {
		if matches(&snap.tenders[i], c) {
			matched = append(matched, i)
		}
	}

	less := comparator(c.OrderBy, c.Direction)
	slices.SortStableFunc(matched, func(a, b int) int {
		return less(&snap.tenders[a], &snap.tenders[b])
	})

	total := len(matched)
	totalPages := total / pageSize
	if total%pageSize != 0 {
		totalPages++
	}

	result := models.PagedResult{
		Items:      []models.Tender{},
		PageNumber: pageNumber,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}

	if pageNumber > totalPages {
		return result
	}

	from := (pageNumber - 1) * pageSize
	to := min(from+pageSize, total)

	result.Items = make([]models.Tender, 0, to-from)
	for _, i := range matched[from:to] {
		result.Items = append(result.Items, cloneTender(snap.tenders[i]))
	}

	return result
}

// matches проверяет тендер на все заданные фильтры.
func matches(t *models.Tender, c models.SearchCriteria) bool {
	if c.MinAmount != nil && t.Amount.LessThan(*c.MinAmount) {
		return false
	}

	if c.MaxAmount != nil && t.Amount.GreaterThan(*c.MaxAmount) {
		return false
	}

	if c.DateFrom != nil && t.Date.Compare(*c.DateFrom) < 0 {
		return false
	}

	if c.DateTo != nil && t.Date.Compare(*c.DateTo) > 0 {
		return false
	}

	if c.SupplierID != nil && !t.HasSupplier(*c.SupplierID) {
		return false
	}

	return true
}

// comparator возвращает полный порядок: ключ, затем id; направление общее.
// Пустые значения означают дату по убыванию.
func comparator(by models.OrderBy, dir models.OrderDirection) func(a, b *models.Tender) int {
	sign := -1
	if dir == models.OrderAsc {
		sign = 1
	}

	return func(a, b *models.Tender) int {
		var c int
		if by == models.OrderByPrice {
			c = a.Amount.Cmp(b.Amount)
		} else {
			c = a.Date.Compare(b.Date)
		}

		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}

		return sign * c
	}
}
