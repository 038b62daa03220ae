package model

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Admin{}, &Token{}, &Tour{}, &User{}, &Registration{}))
	return db
}

func TestIDsAreGeneratedOnCreate(t *testing.T) {
	db := openTestDB(t)

	tour := Tour{Title: "Beach Day", Price: 49.99}
	require.NoError(t, db.Create(&tour).Error)
	assert.NotEmpty(t, tour.ID)

	user := User{Name: "Alice", Email: "alice@test.com"}
	require.NoError(t, db.Create(&user).Error)
	assert.NotEmpty(t, user.ID)
	assert.NotEqual(t, tour.ID, user.ID)
}

func TestProvidedIDIsKept(t *testing.T) {
	db := openTestDB(t)

	tour := Tour{ID: "fixed-id", Title: "Beach Day", Price: 49.99}
	require.NoError(t, db.Create(&tour).Error)
	assert.Equal(t, "fixed-id", tour.ID)
}

func TestTokenValueIsGenerated(t *testing.T) {
	db := openTestDB(t)

	first := Token{AdminID: "admin-1"}
	second := Token{AdminID: "admin-1"}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	assert.NotEmpty(t, first.Token)
	assert.NotEqual(t, first.Token, second.Token)
	assert.False(t, first.CreatedAt.IsZero())
}

func TestUserEmailIsUnique(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, db.Create(&User{Name: "Alice", Email: "alice@test.com"}).Error)
	err := db.Create(&User{Name: "Imposter", Email: "alice@test.com"}).Error
	assert.Error(t, err, "duplicate email must be rejected by the unique index")
}

func TestRegistrationDateDefaultsToNow(t *testing.T) {
	db := openTestDB(t)

	reg := Registration{UserID: "u1", TourID: "t1"}
	require.NoError(t, db.Create(&reg).Error)
	assert.False(t, reg.RegistrationDate.IsZero())
}
