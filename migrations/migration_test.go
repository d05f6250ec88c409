package migrations

import (
	"testing"

	"tennis-stats-api/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupMigrator(t *testing.T) (*gorm.DB, *Migrator) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	m, err := NewMigrator(db, logger.NewDiscard().WithField("test", t.Name()))
	require.NoError(t, err)
	return db, m
}

func createTable(name string) MigrationDefinition {
	return MigrationDefinition{
		Name: "create_" + name,
		Up: func(db *gorm.DB) error {
			return db.Exec("CREATE TABLE " + name + " (id INTEGER PRIMARY KEY)").Error
		},
		Down: func(db *gorm.DB) error {
			return db.Exec("DROP TABLE " + name).Error
		},
	}
}

func TestMigrator_MigrateIsIdempotent(t *testing.T) {
	db, m := setupMigrator(t)
	m.AddMigrations([]MigrationDefinition{createTable("alpha"), createTable("beta")})

	require.NoError(t, m.Migrate())
	require.NoError(t, m.Migrate())

	applied, err := m.Applied()
	require.NoError(t, err)
	require.Len(t, applied, 2)
	assert.Equal(t, 1, applied[0].Batch)
	assert.Equal(t, 1, applied[1].Batch)
	assert.True(t, db.Migrator().HasTable("beta"))
}

func TestMigrator_RollbackLastBatch(t *testing.T) {
	db, m := setupMigrator(t)
	m.AddMigration(createTable("alpha"))
	require.NoError(t, m.Migrate())
	m.AddMigration(createTable("beta"))
	require.NoError(t, m.Migrate())

	require.NoError(t, m.Rollback(1))

	assert.True(t, db.Migrator().HasTable("alpha"))
	assert.False(t, db.Migrator().HasTable("beta"))
	pending, err := m.Pending()
	require.NoError(t, err)
	assert.Equal(t, []string{"create_beta"}, pending)
}

func TestMigrator_FailedMigrationIsNotRecorded(t *testing.T) {
	db, m := setupMigrator(t)
	m.AddMigration(MigrationDefinition{
		Name: "broken",
		Up: func(db *gorm.DB) error {
			return db.Exec("CREATE TABLE").Error
		},
	})

	require.Error(t, m.Migrate())

	var count int64
	require.NoError(t, db.Model(&Migration{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMigrator_RollbackWithoutDown(t *testing.T) {
	_, m := setupMigrator(t)
	m.AddMigration(MigrationDefinition{
		Name: "one_way",
		Up:   func(db *gorm.DB) error { return nil },
	})
	require.NoError(t, m.Migrate())

	assert.Error(t, m.Rollback(1))
}

func TestGetAllMigrations_AuthFirstAndUniqueNames(t *testing.T) {
	all := GetAllMigrations()
	require.NotEmpty(t, all)
	assert.Equal(t, GetAuthMigrations()[0].Name, all[0].Name)

	seen := map[string]bool{}
	for _, m := range all {
		assert.False(t, seen[m.Name], m.Name)
		seen[m.Name] = true
		assert.NotNil(t, m.Down, m.Name)
	}
}
