package db

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/packdb-backend/internal/logger"
	"github.com/yungbote/packdb-backend/internal/types"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&types.Domain{}, &types.Field{}))
	return db
}

func TestSeedDefaults_Idempotent(t *testing.T) {
	db := setupSeedTestDB(t)
	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}

	require.NoError(t, SeedDefaults(db, log))

	var domainCount, fieldCount int64
	require.NoError(t, db.Model(&types.Domain{}).Count(&domainCount).Error)
	require.NoError(t, db.Model(&types.Field{}).Count(&fieldCount).Error)
	assert.EqualValues(t, 7, domainCount)
	assert.EqualValues(t, 38, fieldCount)

	// Running again adds nothing.
	require.NoError(t, SeedDefaults(db, log))
	require.NoError(t, db.Model(&types.Domain{}).Count(&domainCount).Error)
	require.NoError(t, db.Model(&types.Field{}).Count(&fieldCount).Error)
	assert.EqualValues(t, 7, domainCount)
	assert.EqualValues(t, 38, fieldCount)
}

func TestSeedDefaults_Content(t *testing.T) {
	db := setupSeedTestDB(t)
	log := &logger.Logger{SugaredLogger: zap.NewNop().Sugar()}
	require.NoError(t, SeedDefaults(db, log))

	var cell types.Domain
	require.NoError(t, db.Where("name = ?", "Cell").First(&cell).Error)
	assert.Equal(t, 1, cell.SortOrder)
	assert.True(t, cell.IsDefault)

	var capacity types.Field
	require.NoError(t, db.Where("domain_id = ? AND name = ?", cell.ID, "cell_capacity_ah").First(&capacity).Error)
	assert.Equal(t, types.DataTypeNumber, capacity.DataType)
	assert.Equal(t, "Ah", capacity.Unit)
	assert.True(t, capacity.IsActive)

	var format types.Field
	require.NoError(t, db.Where("domain_id = ? AND name = ?", cell.ID, "cell_format").First(&format).Error)
	assert.Equal(t, types.DataTypeSelect, format.DataType)
	var options []string
	require.NoError(t, json.Unmarshal(format.SelectOptions, &options))
	assert.Contains(t, options, "Prismatic")
	assert.Contains(t, options, "Cylindrical 4680")
}
