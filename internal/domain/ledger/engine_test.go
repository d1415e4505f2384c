package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"makhzan/internal/core/entity"
	"makhzan/internal/domain/importer"
	"makhzan/internal/domain/ledger"
	"makhzan/internal/infrastructure/storage/memory"
)

func newTestEngine() (*ledger.Engine, *memory.Store) {
	store := memory.NewStore()
	engine := ledger.NewEngine(
		store,
		store.Categories(),
		store.Subcategories(),
		store.Locations(),
		store.Items(),
		store.Movements(),
		store.Snapshots(),
	)
	return engine, store
}

func makeRow(rowNumber int, date, code, name string, qty int64, mt entity.MovementType, from, to string) importer.ImportRow {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		panic(err)
	}
	r := importer.ImportRow{
		Date:         d,
		ItemCode:     code,
		ItemName:     name,
		Quantity:     qty,
		MovementType: mt,
		FromLocation: from,
		ToLocation:   to,
		RowNumber:    rowNumber,
	}
	r.Fingerprint = importer.RowFingerprint(&r)
	return r
}

func onHand(t *testing.T, store *memory.Store, code, locName string) int64 {
	t.Helper()
	ctx := context.Background()

	it, err := store.Items().GetByCode(ctx, code)
	require.NoError(t, err)
	require.NotNil(t, it)

	loc, err := store.Locations().GetByName(ctx, locName)
	require.NoError(t, err)
	require.NotNil(t, loc)

	snap, err := store.Snapshots().Get(ctx, it.ID, loc.ID)
	require.NoError(t, err)
	if snap == nil {
		return 0
	}
	return snap.OnHand
}

func TestImportFreshIn(t *testing.T) {
	engine, store := newTestEngine()
	ctx := context.Background()

	row := makeRow(2, "2024-03-15", "ELEC-001", "لابتوب", 10, entity.MovementIn, "", "المخزن الرئيسي")
	row.Category = "إلكترونيات"
	row.Subcategory = "لابتوبات"
	row.Fingerprint = importer.RowFingerprint(&row)

	summary, err := engine.ImportRows(ctx, []importer.ImportRow{row}, "march.xlsx")
	require.NoError(t, err)

	assert.Equal(t, 1, summary.ItemsCreated)
	assert.Equal(t, 0, summary.ItemsMatched)
	assert.Equal(t, 1, summary.MovementsCreated)
	assert.Equal(t, 1, summary.CategoriesCreated)
	assert.Equal(t, 1, summary.SubcategoriesCreated)
	assert.Equal(t, 1, summary.LocationsCreated)
	assert.Empty(t, summary.Errors)

	assert.Equal(t, int64(10), onHand(t, store, "ELEC-001", "المخزن الرئيسي"))

	it, err := store.Items().GetByCode(ctx, "ELEC-001")
	require.NoError(t, err)
	require.NotNil(t, it)
	assert.Equal(t, "لابتوب", it.Name)
	require.NotNil(t, it.CategoryID)
	require.NotNil(t, it.SubcategoryID)

	m, err := store.Movements().GetByFingerprint(ctx, row.Fingerprint)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, entity.MovementIn, m.Type)
	require.NotNil(t, m.SourceFileName)
	assert.Equal(t, "march.xlsx", *m.SourceFileName)
}

func TestImportIsIdempotent(t *testing.T) {
	engine, store := newTestEngine()
	ctx := context.Background()

	rows := []importer.ImportRow{
		makeRow(2, "2024-03-15", "X1", "Widget", 10, entity.MovementIn, "", "Main"),
	}

	first, err := engine.ImportRows(ctx, rows, "file.xlsx")
	require.NoError(t, err)
	require.Empty(t, first.Errors)
	require.Equal(t, 1, first.MovementsCreated)

	second, err := engine.ImportRows(ctx, rows, "file.xlsx")
	require.NoError(t, err)

	assert.Equal(t, 0, second.MovementsCreated)
	assert.Equal(t, 0, second.ItemsCreated)
	assert.Equal(t, 0, second.LocationsCreated)
	require.Len(t, second.Errors, 1)
	assert.Contains(t, second.Errors[0], "سطر 2")
	assert.Contains(t, second.Errors[0], "موجودة مسبقاً")

	assert.Equal(t, int64(10), onHand(t, store, "X1", "Main"))
}

func TestImportOutExceedingBalance(t *testing.T) {
	engine, store := newTestEngine()
	ctx := context.Background()

	seed := []importer.ImportRow{
		makeRow(2, "2024-03-01", "X1", "Widget", 5, entity.MovementIn, "", "Main"),
	}
	_, err := engine.ImportRows(ctx, seed, "seed.xlsx")
	require.NoError(t, err)

	out := []importer.ImportRow{
		makeRow(2, "2024-03-02", "X1", "Widget", 8, entity.MovementOut, "Main", ""),
	}
	summary, err := engine.ImportRows(ctx, out, "out.xlsx")
	require.NoError(t, err)

	assert.Equal(t, 0, summary.MovementsCreated)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "الرصيد غير كافٍ")
	assert.Contains(t, summary.Errors[0], "5")
	assert.Contains(t, summary.Errors[0], "8")

	assert.Equal(t, int64(5), onHand(t, store, "X1", "Main"))
}

func TestImportOutWithinBalance(t *testing.T) {
	engine, store := newTestEngine()
	ctx := context.Background()

	rows := []importer.ImportRow{
		makeRow(2, "2024-03-01", "X1", "Widget", 10, entity.MovementIn, "", "Main"),
		makeRow(3, "2024-03-02", "X1", "Widget", 4, entity.MovementOut, "Main", ""),
	}
	summary, err := engine.ImportRows(ctx, rows, "file.xlsx")
	require.NoError(t, err)

	assert.Empty(t, summary.Errors)
	assert.Equal(t, 2, summary.MovementsCreated)
	assert.Equal(t, 1, summary.ItemsCreated)
	assert.Equal(t, 1, summary.ItemsMatched)
	assert.Equal(t, int64(6), onHand(t, store, "X1", "Main"))
}

func TestImportTransferConservesTotal(t *testing.T) {
	engine, store := newTestEngine()
	ctx := context.Background()

	rows := []importer.ImportRow{
		makeRow(2, "2024-03-01", "X1", "Widget", 10, entity.MovementIn, "", "A"),
		makeRow(3, "2024-03-02", "X1", "Widget", 4, entity.MovementTransfer, "A", "B"),
	}
	summary, err := engine.ImportRows(ctx, rows, "file.xlsx")
	require.NoError(t, err)

	assert.Empty(t, summary.Errors)
	assert.Equal(t, 2, summary.LocationsCreated)
	assert.Equal(t, int64(6), onHand(t, store, "X1", "A"))
	assert.Equal(t, int64(4), onHand(t, store, "X1", "B"))
}

func TestImportTransferFromEmptyLocation(t *testing.T) {
	engine, store := newTestEngine()
	ctx := context.Background()

	rows := []importer.ImportRow{
		makeRow(2, "2024-03-01", "X1", "Widget", 3, entity.MovementTransfer, "Empty", "Dest"),
	}
	summary, err := engine.ImportRows(ctx, rows, "file.xlsx")
	require.NoError(t, err)

	assert.Equal(t, 0, summary.MovementsCreated)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "الرصيد غير كافٍ")

	// the failed row's transaction rolled back its lazily created catalogs
	assert.Equal(t, 0, summary.LocationsCreated)
	loc, err := store.Locations().GetByName(ctx, "Empty")
	require.NoError(t, err)
	assert.Nil(t, loc)
	it, err := store.Items().GetByCode(ctx, "X1")
	require.NoError(t, err)
	assert.Nil(t, it)
}

func TestImportFailedRowDoesNotAbortBatch(t *testing.T) {
	engine, store := newTestEngine()
	ctx := context.Background()

	rows := []importer.ImportRow{
		makeRow(2, "2024-03-01", "X1", "Widget", 10, entity.MovementIn, "", "Main"),
		makeRow(3, "2024-03-02", "X1", "Widget", 99, entity.MovementOut, "Main", ""),
		makeRow(4, "2024-03-03", "X1", "Widget", 2, entity.MovementOut, "Main", ""),
	}
	summary, err := engine.ImportRows(ctx, rows, "file.xlsx")
	require.NoError(t, err)

	assert.Equal(t, 2, summary.MovementsCreated)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "سطر 3")
	assert.Equal(t, int64(8), onHand(t, store, "X1", "Main"))
}

func TestImportMalformedRowBecomesRowError(t *testing.T) {
	engine, store := newTestEngine()
	ctx := context.Background()

	// An OUT row missing its source location should never reach the
	// ledger, even if it slips past upstream validation.
	rows := []importer.ImportRow{
		makeRow(2, "2024-03-01", "X1", "Widget", 10, entity.MovementIn, "", "Main"),
		makeRow(3, "2024-03-02", "X1", "Widget", 4, entity.MovementOut, "", ""),
	}
	summary, err := engine.ImportRows(ctx, rows, "file.xlsx")
	require.NoError(t, err)

	assert.Equal(t, 1, summary.MovementsCreated)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "سطر 3")
	assert.Equal(t, int64(10), onHand(t, store, "X1", "Main"))
}

func TestImportMatchedItemKeepsCatalogRefs(t *testing.T) {
	engine, store := newTestEngine()
	ctx := context.Background()

	seed := []importer.ImportRow{
		makeRow(2, "2024-03-01", "X1", "الاسم الأصلي", 5, entity.MovementIn, "", "Main"),
	}
	_, err := engine.ImportRows(ctx, seed, "seed.xlsx")
	require.NoError(t, err)

	second := makeRow(2, "2024-03-05", "X1", "اسم آخر", 3, entity.MovementIn, "", "Main")
	second.Category = "فئة جديدة"
	second.Fingerprint = importer.RowFingerprint(&second)

	summary, err := engine.ImportRows(ctx, []importer.ImportRow{second}, "second.xlsx")
	require.NoError(t, err)
	assert.Empty(t, summary.Errors)
	assert.Equal(t, 1, summary.ItemsMatched)
	assert.Equal(t, 1, summary.CategoriesCreated)

	it, err := store.Items().GetByCode(ctx, "X1")
	require.NoError(t, err)
	require.NotNil(t, it)
	assert.Equal(t, "الاسم الأصلي", it.Name)
	assert.Nil(t, it.CategoryID)
}

func TestImportSharedCatalogsCountedOnce(t *testing.T) {
	engine, _ := newTestEngine()
	ctx := context.Background()

	r1 := makeRow(2, "2024-03-01", "X1", "Widget", 5, entity.MovementIn, "", "Main")
	r1.Category = "معدات"
	r1.Fingerprint = importer.RowFingerprint(&r1)

	r2 := makeRow(3, "2024-03-01", "X2", "Gadget", 7, entity.MovementIn, "", "Main")
	r2.Category = "معدات"
	r2.Fingerprint = importer.RowFingerprint(&r2)

	summary, err := engine.ImportRows(ctx, []importer.ImportRow{r1, r2}, "file.xlsx")
	require.NoError(t, err)

	assert.Empty(t, summary.Errors)
	assert.Equal(t, 1, summary.CategoriesCreated)
	assert.Equal(t, 1, summary.LocationsCreated)
	assert.Equal(t, 2, summary.ItemsCreated)
}
