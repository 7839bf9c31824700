package repository

import (
	"order_admin/internal/models"

	"gorm.io/gorm"
)

type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetAll() ([]models.Order, error)
	GetByManagerID(managerID uint) ([]models.Order, error)
	GetUnassigned() ([]models.Order, error)
	Update(order *models.Order) error
	AssignManagerBulk(orderIDs []uint, managerID uint) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create persists the order together with its items in one transaction.
func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Manager").Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Manager").Preload("Items").Order("id").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetByManagerID(managerID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Manager").Preload("Items").Where("manager_id = ?", managerID).Order("id").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetUnassigned() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("manager_id IS NULL").Order("id").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

// AssignManagerBulk sets the manager on every given order inside a single
// transaction; any row failure rolls back the whole batch.
func (r *orderRepository) AssignManagerBulk(orderIDs []uint, managerID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, orderID := range orderIDs {
			res := tx.Model(&models.Order{}).Where("id = ?", orderID).Update("manager_id", managerID)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}
