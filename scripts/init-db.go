package main

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"order_admin/internal/config"
	"order_admin/internal/database"
	"order_admin/internal/models"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Force recreate all tables
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.OrderItem{},
		&models.Order{},
		&models.Product{},
		&models.User{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	fmt.Println("Creating tables...")
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	fmt.Println("Seeding users...")
	users := []struct {
		username string
		email    string
		password string
		role     models.UserRole
	}{
		{"SuperAdmin", "admin1@example.com", "hashedpassword123", models.RoleAdmin},
		{"ChiefAdmin", "admin2@example.com", "hashedpassword456", models.RoleAdmin},
		{"John_Manager", "manager1@example.com", "managerpass123", models.RoleManager},
		{"Sarah_Manager", "manager2@example.com", "managerpass456", models.RoleManager},
		{"Mike_Manager", "manager3@example.com", "managerpass789", models.RoleManager},
		{"Emily_Manager", "manager4@example.com", "managerpass101", models.RoleManager},
		{"David_Manager", "manager5@example.com", "managerpass202", models.RoleManager},
	}
	for _, u := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(u.password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("Failed to hash password:", err)
		}
		user := models.User{
			Username: u.username,
			Email:    u.email,
			Password: string(hash),
			Role:     string(u.role),
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatal("Failed to seed user:", err)
		}
	}

	fmt.Println("Seeding products...")
	products := []models.Product{
		{Name: "Laptop Pro X1", Description: "High-performance laptop with latest processor", Price: 1299.99, Stock: 25},
		{Name: "Wireless Mouse M2", Description: "Ergonomic wireless mouse with long battery life", Price: 29.99, Stock: 150},
		{Name: "Mechanical Keyboard K5", Description: "RGB mechanical keyboard with tactile switches", Price: 89.99, Stock: 75},
		{Name: "4K Monitor U28", Description: "28-inch 4K UHD monitor with HDR support", Price: 349.99, Stock: 40},
		{Name: "USB-C Dock D10", Description: "11-in-1 USB-C docking station", Price: 119.99, Stock: 60},
	}
	if err := db.Create(&products).Error; err != nil {
		log.Fatal("Failed to seed products:", err)
	}

	fmt.Println("Seeding orders...")
	if err := seedOrders(db, products); err != nil {
		log.Fatal("Failed to seed orders:", err)
	}

	fmt.Println("Database initialization completed successfully!")
}

// seedOrders creates a handful of unassigned orders with items so the
// dashboard has data to assign and update.
func seedOrders(db *gorm.DB, products []models.Product) error {
	type line struct {
		productIdx int
		quantity   int
	}
	seeds := []struct {
		status string
		lines  []line
	}{
		{string(models.OrderPending), []line{{0, 1}, {1, 2}}},
		{string(models.OrderPending), []line{{2, 1}}},
		{string(models.OrderCompleted), []line{{3, 2}, {4, 1}}},
		{string(models.OrderPending), []line{{1, 5}}},
		{string(models.OrderCancelled), []line{{0, 1}, {4, 2}}},
	}

	for _, seed := range seeds {
		order := models.Order{Status: seed.status}
		for _, l := range seed.lines {
			p := products[l.productIdx]
			order.Items = append(order.Items, models.OrderItem{
				ProductID: p.ID,
				Quantity:  l.quantity,
				Price:     p.Price,
			})
			order.TotalAmount += p.Price * float64(l.quantity)
		}
		if err := db.Create(&order).Error; err != nil {
			return err
		}
	}
	return nil
}
