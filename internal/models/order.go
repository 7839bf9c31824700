package models

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Status      string         `json:"status" gorm:"not null;default:'PENDING'"` // PENDING, COMPLETED, CANCELLED
	TotalAmount float64        `json:"totalAmount" gorm:"not null"`
	ManagerID   *uint          `json:"managerId"`
	Manager     *User          `json:"manager,omitempty" gorm:"foreignKey:ManagerID"`
	Items       []OrderItem    `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// ValidOrderStatus reports whether status is a member of the closed status set.
func ValidOrderStatus(status string) bool {
	switch OrderStatus(status) {
	case OrderPending, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}
