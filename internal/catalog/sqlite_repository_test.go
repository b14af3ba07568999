package catalog

import (
	"context"
	"testing"

	"github.com/palstyle/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	// Use in-memory database for tests
	repo, err := NewSQLiteRepository(":memory:")
	require.NoError(t, err)
	require.NoError(t, repo.RunMigrations("../../migrations/catalog"))
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLite_InsertAndGet(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	p := &domain.Product{ID: "P1", Name: "TEE", Price: 599, Category: "T-Shirts", Stock: 10}
	require.NoError(t, repo.Insert(ctx, p))

	got, err := repo.Get(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, "TEE", got.Name)
	assert.InDelta(t, 599.0, got.Price, 1e-9)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestSQLite_Insert_DuplicateID(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &domain.Product{ID: "P1", Name: "TEE", Price: 599}))
	err := repo.Insert(ctx, &domain.Product{ID: "P1", Name: "OTHER", Price: 1})
	assert.ErrorIs(t, err, ErrDuplicateProduct)
}

func TestSQLite_Get_NotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestSQLite_InsertBulk_KeepsDuplicates(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &domain.Product{ID: "P1", Name: "TEE", Price: 599}))
	require.NoError(t, repo.InsertBulk(ctx, []*domain.Product{
		{ID: "P1", Name: "TEE COPY", Price: 599},
		{ID: "P2", Name: "HOODIE", Price: 899},
	}))

	products, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 3)
}

func TestSQLite_Update(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &domain.Product{ID: "P1", Name: "TEE", Price: 599, Stock: 10}))

	stock := 3
	require.NoError(t, repo.Update(ctx, "P1", domain.ProductUpdate{Stock: &stock}))

	got, err := repo.Get(ctx, "P1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)
	assert.Equal(t, "TEE", got.Name)
}

func TestSQLite_Update_UnknownIDIsNoop(t *testing.T) {
	repo := setupTestDB(t)
	name := "GHOST"
	require.NoError(t, repo.Update(context.Background(), "missing", domain.ProductUpdate{Name: &name}))
}

func TestSQLite_Delete(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &domain.Product{ID: "P1", Name: "TEE", Price: 599}))
	require.NoError(t, repo.Delete(ctx, "P1"))
	require.NoError(t, repo.Delete(ctx, "P1")) // no-op when absent

	_, err := repo.Get(ctx, "P1")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
