package migrations

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"order_admin/internal/database"
	"order_admin/internal/models"
)

// RunMigrations migrates the schema and makes sure a default admin
// account exists so a fresh install is reachable.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	if err := createDefaultAdmin(db); err != nil {
		log.Printf("Warning: Failed to create default admin: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

func createDefaultAdmin(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", string(models.RoleAdmin)).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: "admin",
		Email:    "admin@example.com",
		Password: string(hash),
		Role:     string(models.RoleAdmin),
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Println("Default admin user created (admin@example.com / admin123)")
	return nil
}
