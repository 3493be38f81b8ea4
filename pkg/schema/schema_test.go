package schema_test

import (
	"path/filepath"
	"testing"

	"github.com/gnames/bosdb/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "schema.sqlite")
	dsn := path + "?_pragma=foreign_keys(1)"
	db, err := gorm.Open(
		sqlite.Dialector{DriverName: "sqlite", DSN: dsn},
		&gorm.Config{Logger: logger.Discard},
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestTableNames(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("aliases", schema.Alias{}.TableName())
	assert.Equal("reference_info", schema.ReferenceInfo{}.TableName())
	assert.Equal("vocabulary", schema.Vocab{}.TableName())
	assert.Len(schema.TableNames(), len(schema.AllModels()))
}

func TestMigrate(t *testing.T) {
	db := openDB(t)
	require.NoError(t, schema.Migrate(db))

	for _, name := range schema.TableNames() {
		assert.True(t, db.Migrator().HasTable(name), name)
	}

	t.Run("migrate is idempotent", func(t *testing.T) {
		assert.NoError(t, schema.Migrate(db))
	})

	t.Run("columns follow naming strategy", func(t *testing.T) {
		m := db.Migrator()
		assert.True(t, m.HasColumn(&schema.Herb{}, "open_practice"))
		assert.True(t, m.HasColumn(&schema.Herb{}, "canonical_id"))
		assert.True(t, m.HasColumn(&schema.ReferenceInfo{}, "ref_id"))
		assert.True(t, m.HasColumn(&schema.Author{}, "reference_info_id"))
		assert.True(t, m.HasColumn(&schema.RecipeStep{}, "step_number"))
	})
}

func TestForeignKeys(t *testing.T) {
	db := openDB(t)
	require.NoError(t, schema.Migrate(db))

	t.Run("item needs existing category", func(t *testing.T) {
		err := db.Create(&schema.Item{ID: 1, CategoryID: 42, Kind: "herb"}).Error
		assert.Error(t, err)
	})

	t.Run("category with items cannot be removed", func(t *testing.T) {
		require.NoError(t, db.Create(&schema.Category{ID: 1, Name: "Herbs"}).Error)
		require.NoError(t,
			db.Create(&schema.Item{ID: 2, CategoryID: 1, Kind: "herb"}).Error,
		)
		err := db.Exec("DELETE FROM categories WHERE id = ?", 1).Error
		assert.Error(t, err)
	})
}
