package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"order_admin/internal/database"
	"order_admin/internal/models"
	"order_admin/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username, email string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Role:     string(role),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func newOrderFixtures(t *testing.T, db *gorm.DB) (OrderService, repository.OrderRepository) {
	t.Helper()
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)
	return NewOrderService(orderRepo, userRepo), orderRepo
}
