package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"order_admin/internal/middleware"
	"order_admin/internal/services"
)

type OrderHandler struct {
	orderService services.OrderService
	userService  services.UserService
}

func NewOrderHandler(orderService services.OrderService, userService services.UserService) *OrderHandler {
	return &OrderHandler{orderService: orderService, userService: userService}
}

type OrderItemInput struct {
	ProductID uint    `json:"productId" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gte=1"`
	Price     float64 `json:"price" binding:"required"`
}

type CreateOrderInput struct {
	TotalAmount float64          `json:"totalAmount" binding:"required"`
	Items       []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

type AssignAllOrdersInput struct {
	ManagerID uint `json:"managerId" binding:"required"`
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(err)
		return
	}

	items := make([]services.OrderItemInput, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, services.OrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	order, err := h.orderService.CreateOrder(input.TotalAmount, items)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Order created successfully!", "data": order})
}

func (h *OrderHandler) GetAllOrders(c *gin.Context) {
	orders, err := h.orderService.GetAllOrders()
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "all orders", "data": orders})
}

func (h *OrderHandler) GetAllManagers(c *gin.Context) {
	managers, err := h.userService.GetManagers()
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "List of managers", "data": managers})
}

// GetAssignedOrders lists the orders assigned to the calling manager.
func (h *OrderHandler) GetAssignedOrders(c *gin.Context) {
	manager := middleware.CurrentUser(c)

	orders, err := h.orderService.GetOrdersByManager(manager.ID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "list of assigned orders to manager", "data": orders})
}

func (h *OrderHandler) AssignAllOrders(c *gin.Context) {
	var input AssignAllOrdersInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(err)
		return
	}

	assigned, err := h.orderService.AssignAllOrders(input.ManagerID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Successfully assigned %d orders to manager", assigned),
	})
}

func (h *OrderHandler) UnassignManager(c *gin.Context) {
	orderID, err := parseIDParam(c, "orderId")
	if err != nil {
		c.Error(err)
		return
	}
	managerID, err := parseIDParam(c, "managerId")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.orderService.UnassignManager(orderID, managerID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Manager successfully unassigned from the order"})
}
