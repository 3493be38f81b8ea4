package iocatalog_test

import (
	"context"
	"sync"
	"testing"

	"github.com/gnames/bosdb/internal/iocatalog"
	"github.com/gnames/bosdb/internal/iotesting"
	"github.com/gnames/bosdb/pkg/bosdb"
	"github.com/gnames/bosdb/pkg/catalog"
	"github.com/gnames/bosdb/pkg/config"
	"github.com/gnames/bosdb/pkg/db"
	"github.com/gnames/bosdb/pkg/errcode"
	"github.com/gnames/bosdb/pkg/parserpool"
	"github.com/gnames/bosdb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCatalog(t *testing.T, opts ...config.Option) (bosdb.Catalog, db.Operator) {
	t.Helper()
	cfg := iotesting.GetTestConfig(t)
	cfg.Update(opts)
	op := iotesting.OpenStore(t, cfg)
	pool := parserpool.NewPool(1)
	t.Cleanup(pool.Close)
	return iocatalog.New(op, cfg, pool), op
}

func boolPtr(b bool) *bool { return &b }

func TestAllocate(t *testing.T) {
	cfg := iotesting.GetTestConfig(t)
	op := iotesting.OpenStore(t, cfg)
	tx := op.DB()

	for i := int64(1); i <= 3; i++ {
		id, err := iocatalog.Allocate(tx, "items", 10)
		require.NoError(t, err)
		assert.Equal(t, i, id)
	}

	t.Run("tables have own counters", func(t *testing.T) {
		id, err := iocatalog.Allocate(tx, "effects", 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
	})

	t.Run("counter stops at ceiling", func(t *testing.T) {
		id, err := iocatalog.Allocate(tx, "recipes", 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
		_, err = iocatalog.Allocate(tx, "recipes", 1)
		assert.Equal(t, errcode.StorageExhaustedError, catalog.Code(err))
	})

	t.Run("rolled back allocation is not kept", func(t *testing.T) {
		_ = tx.Transaction(func(tx *gorm.DB) error {
			_, err := iocatalog.Allocate(tx, "authors", 10)
			require.NoError(t, err)
			return assert.AnError
		})
		id, err := iocatalog.Allocate(tx, "authors", 10)
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
	})
}

func TestStorageExhausted(t *testing.T) {
	ctx := context.Background()
	cat, _ := newCatalog(t, config.OptDatabaseMaxID(2))

	_, err := cat.CreateCategory(ctx, "Herbs", "")
	require.NoError(t, err)
	_, err = cat.CreateCategory(ctx, "Teas", "")
	require.NoError(t, err)
	_, err = cat.CreateCategory(ctx, "Oils", "")
	assert.Equal(t, errcode.StorageExhaustedError, catalog.Code(err))

	cats, err := cat.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 2)
}

func TestValidate(t *testing.T) {
	ctx := context.Background()
	cat, _ := newCatalog(t)
	c, err := cat.CreateCategory(ctx, "Herbs", "")
	require.NoError(t, err)

	ok, err := cat.Validate(ctx, "categories", c.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = cat.Validate(ctx, "categories", c.ID+1)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = cat.Validate(ctx, "references", 1)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = cat.Validate(ctx, "users", 1)
	assert.Equal(t, errcode.ValidationError, catalog.Code(err))
}

func TestCategories(t *testing.T) {
	ctx := context.Background()
	cat, _ := newCatalog(t)
	assert := assert.New(t)

	herbs, err := cat.CreateCategory(ctx, " Herbs ", "Various herbs.")
	require.NoError(t, err)
	assert.Equal(int64(1), herbs.ID)
	assert.Equal("Herbs", herbs.Name)
	assert.Equal("Various herbs.", herbs.Note)

	_, err = cat.CreateCategory(ctx, "   ", "note")
	assert.Equal(errcode.ValidationError, catalog.Code(err))

	teas, err := cat.CreateCategory(ctx, "Teas", "")
	require.NoError(t, err)
	assert.Equal(int64(2), teas.ID)

	cats, err := cat.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal([]catalog.Category{herbs, teas}, cats)

	got, err := cat.GetCategory(ctx, teas.ID)
	require.NoError(t, err)
	assert.Equal(teas, got)

	_, err = cat.GetCategory(ctx, 42)
	assert.Equal(errcode.NotFoundError, catalog.Code(err))

	again, err := cat.EnsureCategory(ctx, "Herbs", "other note")
	require.NoError(t, err)
	assert.Equal(herbs, again)

	oils, err := cat.EnsureCategory(ctx, "Oils", "")
	require.NoError(t, err)
	assert.Equal(int64(3), oils.ID)
}

func TestConcurrentWrites(t *testing.T) {
	ctx := context.Background()
	cat, _ := newCatalog(t)

	const n = 20
	var wg sync.WaitGroup
	ids := make([]int64, n)
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := cat.CreateCategory(ctx, "Category", "")
			ids[i], errs[i] = c.ID, err
		}()
	}
	wg.Wait()

	seen := make(map[int64]struct{})
	for i := range n {
		require.NoError(t, errs[i])
		seen[ids[i]] = struct{}{}
	}
	assert.Len(t, seen, n)
}

func TestSchemaModelsMatchCatalog(t *testing.T) {
	_, op := newCatalog(t)
	for _, k := range catalog.Kinds() {
		assert.True(t, op.DB().Migrator().HasTable(k.Table()), string(k))
	}
	assert.True(t, op.DB().Migrator().HasTable(&schema.Identity{}))
}
