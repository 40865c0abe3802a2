package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// TendersPage — одна страница выдачи источника tenders.guru.
// Это единица загрузки, повтора и долговременного хранения: в хранилище
// страниц она сохраняется «как пришла», без доменной нормализации.
type TendersPage struct {
	PageCount  int          `json:"page_count"`
	PageNumber int          `json:"page_number"`
	PageSize   int          `json:"page_size"`
	Total      int          `json:"total"`
	Data       []TenderItem `json:"data"`
}

// TenderItem — «сырая» запись тендера в выдаче источника.
type TenderItem struct {
	ID              FlexInt         `json:"id"`
	Date            Date            `json:"date"`
	Title           *string         `json:"title"`
	Description     *string         `json:"description"`
	AwardedValueEur OptionalDecimal `json:"awarded_value_eur"`
	Awarded         []AwardedGroup  `json:"awarded"`
}

// AwardedGroup — группа присуждения со списком поставщиков.
type AwardedGroup struct {
	Suppliers []SupplierItem `json:"suppliers"`
}

// SupplierItem — «сырой» поставщик внутри группы присуждения.
type SupplierItem struct {
	ID   FlexInt `json:"id"`
	Name *string `json:"name"`
}

// FlexInt — целое, которое источник присылает то числом, то строкой.
type FlexInt int

// UnmarshalJSON принимает 42 и "42".
func (n *FlexInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		*n = 0
		return nil
	}

	raw = strings.Trim(raw, `"`)
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("int: invalid value %s", data)
	}

	*n = FlexInt(v)
	return nil
}

// OptionalDecimal — необязательная денежная сумма.
// null, отсутствие поля и пустая строка трактуются как «нет значения».
type OptionalDecimal struct {
	decimal.NullDecimal
}

// SomeDecimal оборачивает значение в заполненный OptionalDecimal.
func SomeDecimal(d decimal.Decimal) OptionalDecimal {
	return OptionalDecimal{NullDecimal: decimal.NewNullDecimal(d)}
}

// UnmarshalJSON принимает число, строку с числом, "" и null.
func (d *OptionalDecimal) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte(`""`)) {
		d.NullDecimal = decimal.NullDecimal{}
		return nil
	}

	return d.NullDecimal.UnmarshalJSON(trimmed)
}

// MarshalJSON пишет сумму строкой (без потери точности) или null.
func (d OptionalDecimal) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}

	return json.Marshal(d.Decimal.String())
}
