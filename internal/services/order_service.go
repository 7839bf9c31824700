package services

import (
	"errors"

	"gorm.io/gorm"

	"order_admin/internal/apperrors"
	"order_admin/internal/models"
	"order_admin/internal/repository"
)

type OrderItemInput struct {
	ProductID uint
	Quantity  int
	Price     float64
}

type OrderService interface {
	CreateOrder(totalAmount float64, items []OrderItemInput) (*models.Order, error)
	GetAllOrders() ([]models.Order, error)
	GetOrdersByManager(managerID uint) ([]models.Order, error)
	AssignAllOrders(managerID uint) (int, error)
	UnassignManager(orderID, managerID uint) error
	SetStatus(orderID uint, status string) (*models.Order, error)
	AssignOrder(orderID, managerID uint) (*models.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
}

func NewOrderService(orderRepo repository.OrderRepository, userRepo repository.UserRepository) OrderService {
	return &orderService{orderRepo: orderRepo, userRepo: userRepo}
}

// CreateOrder persists the order and its items as one unit. Orders start
// unassigned and PENDING.
func (s *orderService) CreateOrder(totalAmount float64, items []OrderItemInput) (*models.Order, error) {
	if len(items) == 0 {
		return nil, apperrors.BadRequest("order must contain at least one item")
	}

	order := &models.Order{
		Status:      string(models.OrderPending),
		TotalAmount: totalAmount,
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, apperrors.BadRequest("item quantity must be positive")
		}
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

func (s *orderService) GetOrdersByManager(managerID uint) ([]models.Order, error) {
	return s.orderRepo.GetByManagerID(managerID)
}

// AssignAllOrders gives every currently-unassigned order to the manager,
// all of them or none. Returns how many orders were assigned.
func (s *orderService) AssignAllOrders(managerID uint) (int, error) {
	manager, err := s.userRepo.GetByID(managerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	if manager == nil || manager.Role != string(models.RoleManager) {
		return 0, apperrors.BadRequest("Invalid manager ID or user is not a manager")
	}

	unassigned, err := s.orderRepo.GetUnassigned()
	if err != nil {
		return 0, err
	}
	if len(unassigned) == 0 {
		return 0, apperrors.BadRequest("No unassigned orders found")
	}

	orderIDs := make([]uint, 0, len(unassigned))
	for _, order := range unassigned {
		orderIDs = append(orderIDs, order.ID)
	}

	if err := s.orderRepo.AssignManagerBulk(orderIDs, managerID); err != nil {
		return 0, err
	}
	return len(orderIDs), nil
}

// UnassignManager clears the manager from an order. An order that has no
// manager assigned is a rejected request, not a silent no-op.
func (s *orderService) UnassignManager(orderID, managerID uint) error {
	if _, err := s.userRepo.GetByID(managerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.BadRequest("Invalid manager ID")
		}
		return err
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.BadRequest("Order not found")
		}
		return err
	}

	if order.ManagerID == nil {
		return apperrors.BadRequest("Order has no manager assigned")
	}

	order.ManagerID = nil
	order.Manager = nil
	return s.orderRepo.Update(order)
}

// SetStatus is the write path behind the realtime status-change event.
func (s *orderService) SetStatus(orderID uint, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, apperrors.BadRequest("invalid order status")
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.BadRequest("Order not found")
		}
		return nil, err
	}

	order.Status = status
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// AssignOrder sets the manager on a single order. The target user must
// hold the MANAGER role.
func (s *orderService) AssignOrder(orderID, managerID uint) (*models.Order, error) {
	manager, err := s.userRepo.GetByID(managerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if manager == nil || manager.Role != string(models.RoleManager) {
		return nil, apperrors.BadRequest("Invalid manager ID or user is not a manager")
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.BadRequest("Order not found")
		}
		return nil, err
	}

	order.ManagerID = &manager.ID
	order.Manager = manager
	if err := s.orderRepo.Update(order); err != nil {
		return nil, err
	}
	return order, nil
}
