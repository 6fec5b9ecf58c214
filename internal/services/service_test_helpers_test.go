package services

import (
	"testing"

	"github.com/civicfix/civicfix-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A pooled second connection would see an empty in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Complaint{},
		&models.Notification{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name, role string) *models.User {
	user := &models.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    name + "@example.com",
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestComplaint(t *testing.T, db *gorm.DB, owner *models.User, category string) *models.Complaint {
	complaint := &models.Complaint{
		ID:          uuid.New(),
		UserID:      owner.ID,
		Category:    category,
		Description: "Test description",
		Lat:         23.02,
		Lng:         72.57,
		Status:      models.StatusPending,
	}
	require.NoError(t, db.Create(complaint).Error)
	return complaint
}
