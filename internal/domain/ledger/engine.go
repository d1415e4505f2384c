// Package ledger maintains the movement history and the per-location
// balance snapshots derived from it. The Engine turns validated import
// rows into movements; the Service exposes read operations over both.
package ledger

import (
	"context"
	"fmt"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/entity"
	"makhzan/internal/core/id"
	"makhzan/internal/core/tx"
	"makhzan/internal/domain/catalogs/category"
	"makhzan/internal/domain/catalogs/item"
	"makhzan/internal/domain/catalogs/location"
	"makhzan/internal/domain/importer"
	"makhzan/pkg/logger"
)

// Summary reports what one import batch changed.
type Summary struct {
	ItemsCreated         int      `json:"itemsCreated"`
	ItemsMatched         int      `json:"itemsMatched"`
	MovementsCreated     int      `json:"movementsCreated"`
	CategoriesCreated    int      `json:"categoriesCreated"`
	SubcategoriesCreated int      `json:"subcategoriesCreated"`
	LocationsCreated     int      `json:"locationsCreated"`
	Errors               []string `json:"errors"`
}

// Engine applies validated import rows to the ledger.
type Engine struct {
	txm           tx.Manager
	categories    category.Repository
	subcategories category.SubcategoryRepository
	locations     location.Repository
	items         item.Repository
	movements     MovementRepository
	snapshots     SnapshotRepository
}

// NewEngine creates a new import engine.
func NewEngine(
	txm tx.Manager,
	categories category.Repository,
	subcategories category.SubcategoryRepository,
	locations location.Repository,
	items item.Repository,
	movements MovementRepository,
	snapshots SnapshotRepository,
) *Engine {
	return &Engine{
		txm:           txm,
		categories:    categories,
		subcategories: subcategories,
		locations:     locations,
		items:         items,
		movements:     movements,
		snapshots:     snapshots,
	}
}

// batchCaches map natural keys to ids for the duration of one batch, so
// a name is resolved against storage at most once.
type batchCaches struct {
	categories    map[string]id.ID // by name
	subcategories map[string]id.ID // by "categoryID:name"
	locations     map[string]id.ID // by name
	items         map[string]id.ID // by code
}

// rowEffect accumulates what one row added, so a failed row can be
// undone in the caches (its transaction already rolled back in storage)
// and a committed row can be folded into the summary.
type rowEffect struct {
	categoryKeys    []string
	subcategoryKeys []string
	locationKeys    []string
	itemKeys        []string
	itemsMatched    int
	movements       int
}

func (e *rowEffect) revert(c *batchCaches) {
	for _, k := range e.categoryKeys {
		delete(c.categories, k)
	}
	for _, k := range e.subcategoryKeys {
		delete(c.subcategories, k)
	}
	for _, k := range e.locationKeys {
		delete(c.locations, k)
	}
	for _, k := range e.itemKeys {
		delete(c.items, k)
	}
}

func (e *rowEffect) apply(s *Summary) {
	s.CategoriesCreated += len(e.categoryKeys)
	s.SubcategoriesCreated += len(e.subcategoryKeys)
	s.LocationsCreated += len(e.locationKeys)
	s.ItemsCreated += len(e.itemKeys)
	s.ItemsMatched += e.itemsMatched
	s.MovementsCreated += e.movements
}

// ImportRows applies a batch of validated rows in order. Each row runs
// in its own transaction; a failed row is recorded in Summary.Errors and
// never aborts the batch. Re-running the same file is safe: fingerprints
// make committed rows duplicates the second time around.
func (e *Engine) ImportRows(ctx context.Context, rows []importer.ImportRow, sourceFileName string) (*Summary, error) {
	summary := &Summary{Errors: []string{}}

	caches, err := e.seedCaches(ctx)
	if err != nil {
		return nil, fmt.Errorf("seed import caches: %w", err)
	}

	for i := range rows {
		row := &rows[i]
		effect := &rowEffect{}

		err := e.txm.RunInTransaction(ctx, func(ctx context.Context) error {
			return e.processRow(ctx, row, sourceFileName, caches, effect)
		})
		if err != nil {
			effect.revert(caches)
			summary.Errors = append(summary.Errors, rowErrorMessage(row.RowNumber, err))
			logger.Warn(ctx, "import row rejected",
				"row", row.RowNumber,
				"fingerprint", row.Fingerprint,
				"error", err)
			continue
		}

		effect.apply(summary)
	}

	logger.Info(ctx, "import batch finished",
		"file", sourceFileName,
		"rows", len(rows),
		"movements", summary.MovementsCreated,
		"errors", len(summary.Errors))

	return summary, nil
}

// seedCaches loads every catalog once so per-row resolution is a map hit
// for anything that existed before the batch.
func (e *Engine) seedCaches(ctx context.Context) (*batchCaches, error) {
	c := &batchCaches{
		categories:    make(map[string]id.ID),
		subcategories: make(map[string]id.ID),
		locations:     make(map[string]id.ID),
		items:         make(map[string]id.ID),
	}

	cats, err := e.categories.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	for _, cat := range cats {
		c.categories[cat.Name] = cat.ID
	}

	subs, err := e.subcategories.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subcategories: %w", err)
	}
	for _, sub := range subs {
		c.subcategories[subcategoryKey(sub.CategoryID, sub.Name)] = sub.ID
	}

	locs, err := e.locations.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	for _, loc := range locs {
		c.locations[loc.Name] = loc.ID
	}

	items, err := e.items.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	for _, it := range items {
		c.items[it.Code] = it.ID
	}

	return c, nil
}

// processRow runs inside one transaction. Order matters: catalogs are
// resolved or created first, then the dedupe check, then the balance
// check, then the movement and its snapshot deltas.
func (e *Engine) processRow(ctx context.Context, row *importer.ImportRow, fileName string, c *batchCaches, effect *rowEffect) error {
	// Rows normally arrive validated; re-checking here keeps a malformed
	// row a per-row error instead of letting it fault the batch.
	if err := row.Validate(ctx); err != nil {
		return err
	}

	categoryID, err := e.resolveCategory(ctx, row.Category, c, effect)
	if err != nil {
		return err
	}

	subcategoryID, err := e.resolveSubcategory(ctx, categoryID, row.Subcategory, c, effect)
	if err != nil {
		return err
	}

	var fromID, toID *id.ID
	if row.FromLocation != "" {
		locID, err := e.resolveLocation(ctx, row.FromLocation, c, effect)
		if err != nil {
			return err
		}
		fromID = &locID
	}
	if row.ToLocation != "" {
		locID, err := e.resolveLocation(ctx, row.ToLocation, c, effect)
		if err != nil {
			return err
		}
		toID = &locID
	}

	itemID, err := e.resolveItem(ctx, row, categoryID, subcategoryID, c, effect)
	if err != nil {
		return err
	}

	existing, err := e.movements.GetByFingerprint(ctx, row.Fingerprint)
	if err != nil {
		return fmt.Errorf("check fingerprint: %w", err)
	}
	if existing != nil {
		return apperror.NewDuplicateMovement(row.Fingerprint)
	}

	if row.MovementType.RequiresFrom() {
		if err := e.checkBalance(ctx, itemID, *fromID, row.Quantity); err != nil {
			return err
		}
	}

	movement := &entity.Movement{
		ID:             id.New(),
		Date:           row.Date,
		Type:           row.MovementType,
		Quantity:       row.Quantity,
		ItemID:         itemID,
		FromLocationID: fromID,
		ToLocationID:   toID,
		SourceFileName: &fileName,
		SourceRowHash:  &row.Fingerprint,
		CreatedAt:      nowUTC(),
	}
	if row.Note != "" {
		note := row.Note
		movement.Note = &note
	}

	if err := movement.Validate(ctx); err != nil {
		return err
	}
	if err := e.movements.Create(ctx, movement); err != nil {
		return fmt.Errorf("create movement: %w", err)
	}

	if err := e.applyDeltas(ctx, movement); err != nil {
		return err
	}

	effect.movements++
	return nil
}

func (e *Engine) resolveCategory(ctx context.Context, name string, c *batchCaches, effect *rowEffect) (*id.ID, error) {
	if name == "" {
		return nil, nil
	}
	if catID, ok := c.categories[name]; ok {
		return &catID, nil
	}

	existing, err := e.categories.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if existing != nil {
		c.categories[name] = existing.ID
		return &existing.ID, nil
	}

	cat := category.NewCategory(name)
	if err := e.categories.Create(ctx, cat); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	c.categories[name] = cat.ID
	effect.categoryKeys = append(effect.categoryKeys, name)
	return &cat.ID, nil
}

func (e *Engine) resolveSubcategory(ctx context.Context, categoryID *id.ID, name string, c *batchCaches, effect *rowEffect) (*id.ID, error) {
	// A subcategory without a parent category is dropped, not an error.
	if name == "" || categoryID == nil {
		return nil, nil
	}

	key := subcategoryKey(*categoryID, name)
	if subID, ok := c.subcategories[key]; ok {
		return &subID, nil
	}

	existing, err := e.subcategories.GetByName(ctx, *categoryID, name)
	if err != nil {
		return nil, fmt.Errorf("get subcategory: %w", err)
	}
	if existing != nil {
		c.subcategories[key] = existing.ID
		return &existing.ID, nil
	}

	sub := category.NewSubcategory(*categoryID, name)
	if err := e.subcategories.Create(ctx, sub); err != nil {
		return nil, fmt.Errorf("create subcategory: %w", err)
	}
	c.subcategories[key] = sub.ID
	effect.subcategoryKeys = append(effect.subcategoryKeys, key)
	return &sub.ID, nil
}

func (e *Engine) resolveLocation(ctx context.Context, name string, c *batchCaches, effect *rowEffect) (id.ID, error) {
	if locID, ok := c.locations[name]; ok {
		return locID, nil
	}

	existing, err := e.locations.GetByName(ctx, name)
	if err != nil {
		return id.Nil(), fmt.Errorf("get location: %w", err)
	}
	if existing != nil {
		c.locations[name] = existing.ID
		return existing.ID, nil
	}

	loc := location.NewLocation(name)
	if err := e.locations.Create(ctx, loc); err != nil {
		return id.Nil(), fmt.Errorf("create location: %w", err)
	}
	c.locations[name] = loc.ID
	effect.locationKeys = append(effect.locationKeys, name)
	return loc.ID, nil
}

// resolveItem returns the item for the row's code, creating it when
// unseen. A matched item keeps its stored name and catalog refs; the
// row's values are not written over them.
func (e *Engine) resolveItem(ctx context.Context, row *importer.ImportRow, categoryID, subcategoryID *id.ID, c *batchCaches, effect *rowEffect) (id.ID, error) {
	if itemID, ok := c.items[row.ItemCode]; ok {
		effect.itemsMatched++
		return itemID, nil
	}

	existing, err := e.items.GetByCode(ctx, row.ItemCode)
	if err != nil {
		return id.Nil(), fmt.Errorf("get item: %w", err)
	}
	if existing != nil {
		c.items[row.ItemCode] = existing.ID
		effect.itemsMatched++
		return existing.ID, nil
	}

	it := item.NewItem(row.ItemCode, row.ItemName)
	it.CategoryID = categoryID
	it.SubcategoryID = subcategoryID
	if err := e.items.Create(ctx, it); err != nil {
		return id.Nil(), fmt.Errorf("create item: %w", err)
	}
	c.items[row.ItemCode] = it.ID
	effect.itemKeys = append(effect.itemKeys, row.ItemCode)
	return it.ID, nil
}

// checkBalance verifies the source location can cover the quantity.
// The snapshot read takes a row lock; an absent snapshot reads as zero.
func (e *Engine) checkBalance(ctx context.Context, itemID, fromID id.ID, quantity int64) error {
	snap, err := e.snapshots.GetForUpdate(ctx, itemID, fromID)
	if err != nil {
		return fmt.Errorf("read balance: %w", err)
	}

	var current int64
	if snap != nil {
		current = snap.OnHand
	}
	if current < quantity {
		return apperror.NewInsufficientStock(current, quantity)
	}
	return nil
}

// applyDeltas maintains the snapshots for one movement. TRANSFER debits
// the source before crediting the destination.
func (e *Engine) applyDeltas(ctx context.Context, m *entity.Movement) error {
	debit := func(locID id.ID) error {
		if err := e.snapshots.AddOnHand(ctx, m.ItemID, locID, -m.Quantity); err != nil {
			return fmt.Errorf("debit balance: %w", err)
		}
		return nil
	}
	credit := func(locID id.ID) error {
		if err := e.snapshots.AddOnHand(ctx, m.ItemID, locID, m.Quantity); err != nil {
			return fmt.Errorf("credit balance: %w", err)
		}
		return nil
	}

	switch m.Type {
	case entity.MovementIn:
		return credit(*m.ToLocationID)
	case entity.MovementOut:
		return debit(*m.FromLocationID)
	case entity.MovementTransfer:
		if err := debit(*m.FromLocationID); err != nil {
			return err
		}
		return credit(*m.ToLocationID)
	}
	return nil
}

func subcategoryKey(categoryID id.ID, name string) string {
	return categoryID.String() + ":" + name
}

// rowErrorMessage formats a per-row failure for Summary.Errors, keeping
// the Arabic messages users see in the import report.
func rowErrorMessage(rowNumber int, err error) string {
	if appErr, ok := apperror.AsAppError(err); ok {
		return fmt.Sprintf("سطر %d: %s", rowNumber, appErr.Message)
	}
	return fmt.Sprintf("سطر %d: خطأ غير متوقع", rowNumber)
}
