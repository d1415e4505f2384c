package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/entity"
	"makhzan/internal/core/id"
	"makhzan/internal/domain/catalogs/item"
	"makhzan/internal/domain/catalogs/location"
	"makhzan/internal/domain/ledger"
	"makhzan/internal/infrastructure/storage/memory"
)

func newTestService(t *testing.T) (*ledger.Service, *memory.Store, id.ID, id.ID, id.ID) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	svc := ledger.NewService(store, store.Movements(), store.Snapshots())

	it := item.NewItem("X1", "Widget")
	require.NoError(t, store.Items().Create(ctx, it))
	locA := location.NewLocation("A")
	require.NoError(t, store.Locations().Create(ctx, locA))
	locB := location.NewLocation("B")
	require.NoError(t, store.Locations().Create(ctx, locB))

	return svc, store, it.ID, locA.ID, locB.ID
}

func postIn(t *testing.T, svc *ledger.Service, itemID, toID id.ID, qty int64, day int) {
	t.Helper()
	m := &entity.Movement{
		Date:         time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC),
		Type:         entity.MovementIn,
		Quantity:     qty,
		ItemID:       itemID,
		ToLocationID: &toID,
	}
	require.NoError(t, svc.Post(context.Background(), m))
}

func TestPostUpdatesBalances(t *testing.T) {
	svc, store, itemID, locA, locB := newTestService(t)
	ctx := context.Background()

	postIn(t, svc, itemID, locA, 10, 1)

	transfer := &entity.Movement{
		Date:           time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		Type:           entity.MovementTransfer,
		Quantity:       4,
		ItemID:         itemID,
		FromLocationID: &locA,
		ToLocationID:   &locB,
	}
	require.NoError(t, svc.Post(ctx, transfer))

	snapA, err := store.Snapshots().Get(ctx, itemID, locA)
	require.NoError(t, err)
	require.NotNil(t, snapA)
	assert.Equal(t, int64(6), snapA.OnHand)

	total, err := svc.GetTotalOnHand(ctx, itemID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), total)
}

func TestPostRejectsOverdraft(t *testing.T) {
	svc, store, itemID, locA, _ := newTestService(t)
	ctx := context.Background()

	postIn(t, svc, itemID, locA, 3, 1)

	out := &entity.Movement{
		Date:           time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		Type:           entity.MovementOut,
		Quantity:       5,
		ItemID:         itemID,
		FromLocationID: &locA,
	}
	err := svc.Post(ctx, out)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeInsufficientStock))

	snap, err := store.Snapshots().Get(ctx, itemID, locA)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, int64(3), snap.OnHand)
}

func TestPostRejectsMissingLocations(t *testing.T) {
	svc, _, itemID, _, _ := newTestService(t)

	out := &entity.Movement{
		Date:     time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
		Type:     entity.MovementOut,
		Quantity: 5,
		ItemID:   itemID,
	}
	err := svc.Post(context.Background(), out)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeValidation))
}

func TestPostRejectsDuplicateFingerprint(t *testing.T) {
	svc, _, itemID, locA, _ := newTestService(t)
	ctx := context.Background()

	hash := "2bk7deadbeef"
	first := &entity.Movement{
		Date:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Type:          entity.MovementIn,
		Quantity:      2,
		ItemID:        itemID,
		ToLocationID:  &locA,
		SourceRowHash: &hash,
	}
	require.NoError(t, svc.Post(ctx, first))

	dup := &entity.Movement{
		Date:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Type:          entity.MovementIn,
		Quantity:      2,
		ItemID:        itemID,
		ToLocationID:  &locA,
		SourceRowHash: &hash,
	}
	err := svc.Post(ctx, dup)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeDuplicateMovement))
}

func TestGetMovementHistoryFilters(t *testing.T) {
	svc, _, itemID, locA, locB := newTestService(t)
	ctx := context.Background()

	postIn(t, svc, itemID, locA, 10, 1)
	postIn(t, svc, itemID, locB, 5, 2)

	out := &entity.Movement{
		Date:           time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC),
		Type:           entity.MovementOut,
		Quantity:       1,
		ItemID:         itemID,
		FromLocationID: &locA,
	}
	require.NoError(t, svc.Post(ctx, out))

	all, total, err := svc.GetMovementHistory(ctx, ledger.MovementFilter{ItemID: &itemID})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, all, 3)
	// newest business date first
	assert.Equal(t, entity.MovementOut, all[0].Type)

	outType := entity.MovementOut
	outs, total, err := svc.GetMovementHistory(ctx, ledger.MovementFilter{Type: &outType})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, outs, 1)

	atA, total, err := svc.GetMovementHistory(ctx, ledger.MovementFilter{LocationID: &locA})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, atA, 2)

	from := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	recent, total, err := svc.GetMovementHistory(ctx, ledger.MovementFilter{DateFrom: &from})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, recent, 2)
}
