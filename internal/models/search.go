package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// OrderBy — ключ сортировки выдачи.
type OrderBy string

const (
	// OrderByDate — по дате тендера (по умолчанию).
	OrderByDate OrderBy = "date"
	// OrderByPrice — по сумме присуждения.
	OrderByPrice OrderBy = "price"
)

// OrderDirection — направление сортировки.
type OrderDirection string

const (
	OrderAsc  OrderDirection = "asc"
	OrderDesc OrderDirection = "desc"
)

// SearchCriteria — параметры выборки из индекса.
//
// Особенности:
//   - nil-фильтры не применяются, заданные объединяются через AND;
//   - пустые OrderBy/Direction означают сортировку по дате по убыванию;
//   - PageNumber и PageSize >= 1 (проверяет транспорт).
type SearchCriteria struct {
	MinAmount  *decimal.Decimal
	MaxAmount  *decimal.Decimal
	DateFrom   *Date
	DateTo     *Date
	SupplierID *int
	PageNumber int
	PageSize   int
	OrderBy    OrderBy
	Direction  OrderDirection
}

// PagedResult — страница результатов выборки.
// TotalItems — число записей после фильтрации (до нарезки),
// TotalPages = ceil(TotalItems / PageSize).
type PagedResult struct {
	Items      []Tender
	PageNumber int
	PageSize   int
	TotalItems int
	TotalPages int
}

// ParseOrderBy разбирает ключ сортировки без учёта регистра.
// Пустая строка -> OrderByDate. Принимаются также "priceeur" и числовые 0/1.
func ParseOrderBy(value string) (OrderBy, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "date", "0":
		return OrderByDate, nil
	case "price", "priceeur", "price_eur", "amount", "1":
		return OrderByPrice, nil
	default:
		return "", fmt.Errorf("order_by must be 'date' or 'price', got %q", value)
	}
}

// ParseOrderDirection разбирает направление сортировки без учёта регистра.
// Пустая строка -> OrderDesc. Числовые 0/1 соответствуют asc/desc.
func ParseOrderDirection(value string) (OrderDirection, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "desc", "1":
		return OrderDesc, nil
	case "asc", "0":
		return OrderAsc, nil
	default:
		return "", fmt.Errorf("order_direction must be 'asc' or 'desc', got %q", value)
	}
}
