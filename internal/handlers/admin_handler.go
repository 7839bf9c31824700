package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"order_admin/internal/apperrors"
	"order_admin/internal/middleware"
	"order_admin/internal/services"
)

// AdminHandler covers the product and user administration surface.
type AdminHandler struct {
	userService    services.UserService
	productService services.ProductService
}

func NewAdminHandler(userService services.UserService, productService services.ProductService) *AdminHandler {
	return &AdminHandler{userService: userService, productService: productService}
}

type CreateProductInput struct {
	Name        string   `json:"name" binding:"required,min=4,max=255"`
	Description string   `json:"description" binding:"required,min=4,max=255"`
	Price       *float64 `json:"price" binding:"required"`
	Stock       *int     `json:"stock" binding:"required,gte=0"`
}

type UpdateProductInput struct {
	Name        *string  `json:"name" binding:"omitempty,min=4,max=255"`
	Description *string  `json:"description" binding:"omitempty,min=4,max=255"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock" binding:"omitempty,gte=0"`
}

type CreateUserInput struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=ADMIN MANAGER"`
}

/* Products */

func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(err)
		return
	}

	if _, err := h.productService.CreateProduct(input.Name, input.Description, *input.Price, *input.Stock); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "product has been created successfully"})
}

func (h *AdminHandler) GetAllProducts(c *gin.Context) {
	products, err := h.productService.GetAllProducts()
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "all products", "data": products})
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product has been deleted"})
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	var input UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(err)
		return
	}

	product, err := h.productService.UpdateProduct(id, services.UpdateProductInput{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "product has been updated", "data": product})
}

/* User management */

func (h *AdminHandler) ViewAllUsers(c *gin.Context) {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "List of all users", "data": users})
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.Error(err)
		return
	}

	if _, err := h.userService.CreateUser(input.Username, input.Email, input.Password, input.Role); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User has been created successfully!"})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	currentUser := middleware.CurrentUser(c)
	if err := h.userService.DeleteUser(id, currentUser.ID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "user has been deleted"})
}

func (h *AdminHandler) UpdateRole(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		c.Error(err)
		return
	}

	if _, err := h.userService.ToggleRole(id); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User role has been updated"})
}

func parseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.BadRequest("invalid " + name + " parameter")
	}
	return uint(id), nil
}
