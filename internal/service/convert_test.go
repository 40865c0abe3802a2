package service

import (
	"testing"

	"github.com/pribylovaa/tenders-service/internal/index"
	"github.com/pribylovaa/tenders-service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// TestToDomain_Defaults — отсутствующие поля получают значения по умолчанию.
func TestToDomain_Defaults(t *testing.T) {
	t.Parallel()

	got, ok := toDomain(models.TenderItem{ID: 7, Date: models.NewDate(2024, 5, 1)})
	require.True(t, ok)

	require.Equal(t, 7, got.ID)
	require.Equal(t, "2024-05-01", got.Date.String())
	require.Equal(t, "", got.Title)
	require.Equal(t, "", got.Description)
	require.True(t, got.Amount.IsZero())
	require.Empty(t, got.Suppliers)
}

// TestToDomain_CopiesFields — заполненные поля переносятся как есть.
func TestToDomain_CopiesFields(t *testing.T) {
	t.Parallel()

	got, ok := toDomain(models.TenderItem{
		ID:              3,
		Title:           strPtr("Title"),
		Description:     strPtr("Desc"),
		AwardedValueEur: models.SomeDecimal(decimal.RequireFromString("1234.56")),
	})
	require.True(t, ok)
	require.Equal(t, "Title", got.Title)
	require.Equal(t, "Desc", got.Description)
	require.True(t, got.Amount.Equal(decimal.RequireFromString("1234.56")))
}

// TestToDomain_SupplierDedup — первое имя побеждает, пустые имена отбрасываются.
func TestToDomain_SupplierDedup(t *testing.T) {
	t.Parallel()

	item := models.TenderItem{
		ID: 1,
		Awarded: []models.AwardedGroup{
			{Suppliers: []models.SupplierItem{
				{ID: 1, Name: strPtr("A")},
				{ID: 1, Name: strPtr("A(dup)")},
			}},
			{Suppliers: []models.SupplierItem{
				{ID: 2, Name: strPtr("B")},
				{ID: 3, Name: strPtr("   ")},
			}},
		},
	}

	got, ok := toDomain(item)
	require.True(t, ok)
	require.Equal(t, []models.Supplier{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}, got.Suppliers)
}

// TestToDomain_SupplierEdgeCases — nil-имя, id <= 0 и пустое имя не занимают id.
func TestToDomain_SupplierEdgeCases(t *testing.T) {
	t.Parallel()

	got, ok := toDomain(models.TenderItem{
		ID: 1,
		Awarded: []models.AwardedGroup{{Suppliers: []models.SupplierItem{
			{ID: 4, Name: nil},
			{ID: 0, Name: strPtr("zero")},
			{ID: 5, Name: strPtr("")},
			{ID: 5, Name: strPtr("Five")},
			{ID: 4, Name: strPtr("Four")},
		}}},
	})
	require.True(t, ok)
	require.Equal(t, []models.Supplier{{ID: 5, Name: "Five"}, {ID: 4, Name: "Four"}}, got.Suppliers)
}

// TestToDomain_SupplierNameKeptVerbatim — пробелы только отсеивают пустые имена, но не обрезаются.
func TestToDomain_SupplierNameKeptVerbatim(t *testing.T) {
	t.Parallel()

	got, ok := toDomain(models.TenderItem{
		ID: 1,
		Awarded: []models.AwardedGroup{{Suppliers: []models.SupplierItem{
			{ID: 7, Name: strPtr(" \t ")},
			{ID: 7, Name: strPtr("  Acme Sp. z o.o. ")},
			{ID: 7, Name: strPtr("Acme")},
		}}},
	})
	require.True(t, ok)
	require.Equal(t, []models.Supplier{{ID: 7, Name: "  Acme Sp. z o.o. "}}, got.Suppliers)
}

// TestToDomain_Rejects — запись без положительного id отбрасывается.
func TestToDomain_Rejects(t *testing.T) {
	t.Parallel()

	_, ok := toDomain(models.TenderItem{ID: 0})
	require.False(t, ok)

	_, ok = toDomain(models.TenderItem{ID: -3})
	require.False(t, ok)
}

// TestToDomain_NegativeAmount — отрицательная сумма трактуется как отсутствующая.
func TestToDomain_NegativeAmount(t *testing.T) {
	t.Parallel()

	got, ok := toDomain(models.TenderItem{ID: 1, AwardedValueEur: models.SomeDecimal(decimal.NewFromInt(-5))})
	require.True(t, ok)
	require.True(t, got.Amount.IsZero())
}

// TestBuildSnapshot_FlattensPages — все записи всех страниц попадают в снапшот.
func TestBuildSnapshot_FlattensPages(t *testing.T) {
	t.Parallel()

	day := models.NewDate(2024, 1, 1)
	pages := []fetchedPage{
		{Number: 1, Page: &models.TendersPage{Data: []models.TenderItem{rawItem(1, day, "1"), rawItem(2, day, "2")}}},
		{Number: 2, Page: &models.TendersPage{Data: []models.TenderItem{rawItem(3, day, ""), {ID: 0}}}},
		{Number: 3, Page: &models.TendersPage{}},
	}

	snap, skipped := buildSnapshot(pages, index.BuildInfo{BuildID: "b1", PagesLoaded: 3})
	require.Equal(t, 3, snap.Len())
	require.Equal(t, 1, skipped)
	require.Equal(t, "b1", snap.Info().BuildID)

	for _, id := range []int{1, 2, 3} {
		_, ok := snap.ByID(id)
		require.True(t, ok, "id %d", id)
	}
}
