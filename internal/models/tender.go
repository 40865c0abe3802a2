// models содержит доменные сущности tenders-сервиса.
// Эти типы используются слоями бизнес-логики, хранилища страниц, индекса и транспорта.
package models

import (
	"github.com/shopspring/decimal"
)

// Supplier — поставщик, которому присуждён тендер.
type Supplier struct {
	// ID — положительный идентификатор поставщика у источника.
	ID int
	// Name — непустое имя поставщика.
	Name string
}

// Tender — доменная сущность тендера.
//
// Особенности:
//   - ID уникален в пределах снапшота индекса;
//   - Title/Description — пустые строки, если источник их не прислал;
//   - Amount — сумма присуждения в EUR, 0 при отсутствии;
//   - Suppliers дедуплицированы по ID (побеждает первое имя), пустые имена отброшены.
type Tender struct {
	ID          int
	Date        Date
	Title       string
	Description string
	Amount      decimal.Decimal
	Suppliers   []Supplier
}

// HasSupplier сообщает, присуждён ли тендер поставщику с данным id.
func (t Tender) HasSupplier(id int) bool {
	for _, s := range t.Suppliers {
		if s.ID == id {
			return true
		}
	}

	return false
}
