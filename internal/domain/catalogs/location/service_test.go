package location_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"makhzan/internal/core/apperror"
	"makhzan/internal/core/id"
	"makhzan/internal/domain/catalogs/location"
	"makhzan/internal/infrastructure/storage/memory"
)

func TestCreateRejectsDuplicateName(t *testing.T) {
	store := memory.NewStore()
	svc := location.NewService(store.Locations(), store.Snapshots())
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, location.NewLocation("المخزن الرئيسي")))

	err := svc.Create(ctx, location.NewLocation("المخزن الرئيسي"))
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeDuplicate))
}

func TestDeleteBlockedWhileStockRemains(t *testing.T) {
	store := memory.NewStore()
	svc := location.NewService(store.Locations(), store.Snapshots())
	ctx := context.Background()

	loc := location.NewLocation("فرع الشرق")
	require.NoError(t, svc.Create(ctx, loc))

	itemID := id.New()
	require.NoError(t, store.Snapshots().AddOnHand(ctx, itemID, loc.ID, 7))

	err := svc.Delete(ctx, loc.ID)
	require.Error(t, err)
	assert.True(t, apperror.IsCode(err, apperror.CodeConflict))

	// draining the balance unblocks deletion
	require.NoError(t, store.Snapshots().AddOnHand(ctx, itemID, loc.ID, -7))
	require.NoError(t, svc.Delete(ctx, loc.ID))

	got, err := store.Locations().GetByID(ctx, loc.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDeleteUnknownLocation(t *testing.T) {
	store := memory.NewStore()
	svc := location.NewService(store.Locations(), store.Snapshots())

	err := svc.Delete(context.Background(), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}
