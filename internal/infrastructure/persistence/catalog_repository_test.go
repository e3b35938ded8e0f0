package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/catalog"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/domain/shared"
	"github.com/thirty33/DELICIUS-FOOD-CRM-sub000/internal/testutil"
)

func TestGormProductRepository(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	ctx := context.Background()
	areas := NewGormProductionAreaRepository(db)
	repo := NewGormProductRepository(db)

	kitchen, err := catalog.NewProductionArea("Cocina caliente")
	require.NoError(t, err)
	bakery, err := catalog.NewProductionArea("Panadería")
	require.NoError(t, err)
	require.NoError(t, areas.Save(ctx, kitchen))
	require.NoError(t, areas.Save(ctx, bakery))

	stew, err := catalog.NewProduct("P-001", "Cazuela", *kitchen, *bakery)
	require.NoError(t, err)
	bread, err := catalog.NewProduct("P-002", "Marraqueta")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, stew))
	require.NoError(t, repo.Save(ctx, bread))

	t.Run("finds product with its areas", func(t *testing.T) {
		found, err := repo.FindByID(ctx, stew.ID)
		require.NoError(t, err)
		assert.Equal(t, "P-001", found.Code)
		assert.ElementsMatch(t, []uuid.UUID{kitchen.ID, bakery.ID}, found.AreaIDs())
	})

	t.Run("product without areas has an empty area list", func(t *testing.T) {
		found, err := repo.FindByID(ctx, bread.ID)
		require.NoError(t, err)
		assert.NotNil(t, found.ProductionAreas)
		assert.Empty(t, found.ProductionAreas)
	})

	t.Run("returns ErrNotFound for unknown product", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("FindByIDs skips unknown ids", func(t *testing.T) {
		found, err := repo.FindByIDs(ctx, []uuid.UUID{stew.ID, bread.ID, uuid.New()})
		require.NoError(t, err)
		require.Len(t, found, 2)
		assert.Equal(t, "P-001", found[0].Code)
		assert.Equal(t, "P-002", found[1].Code)
	})

	t.Run("Save replaces area links", func(t *testing.T) {
		stew.ProductionAreas = []catalog.ProductionArea{*bakery}
		require.NoError(t, repo.Save(ctx, stew))

		found, err := repo.FindByID(ctx, stew.ID)
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{bakery.ID}, found.AreaIDs())
	})

	t.Run("area Save renames existing area", func(t *testing.T) {
		kitchen.Name = "Cocina fría"
		require.NoError(t, areas.Save(ctx, kitchen))

		found, err := areas.FindByIDs(ctx, []uuid.UUID{kitchen.ID})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Cocina fría", found[0].Name)
	})
}
