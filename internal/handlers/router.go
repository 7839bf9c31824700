package handlers

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"order_admin/internal/middleware"
)

// RouterOptions bundles everything the route table needs.
type RouterOptions struct {
	Log          *zap.Logger
	CORSOrigin   string
	Authenticate gin.HandlerFunc
	Auth         *AuthHandler
	Admin        *AdminHandler
	Order        *OrderHandler
	ServeWS      gin.HandlerFunc
}

// NewRouter builds the gin engine with the full REST and realtime
// surface. Route paths and role gates mirror the admin dashboard client.
func NewRouter(opts RouterOptions) *gin.Engine {
	r := gin.New()

	r.Use(ginzap.Ginzap(opts.Log, time.RFC3339, true))
	r.Use(ginzap.RecoveryWithZap(opts.Log, true))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{opts.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler(opts.Log))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/login", opts.Auth.Login)
		auth.GET("/verify-auth", opts.Authenticate, opts.Auth.VerifyAuth)
		auth.GET("/logout", opts.Auth.Logout)
	}

	admin := api.Group("/admin", opts.Authenticate)
	{
		admin.PUT("/update-role/:id", middleware.RequireAdmin(), opts.Admin.UpdateRole)

		admin.POST("/create-product", middleware.RequireAdmin(), opts.Admin.CreateProduct)
		admin.GET("/all-products", opts.Admin.GetAllProducts)
		admin.DELETE("/delete-product/:id", middleware.RequireAdmin(), opts.Admin.DeleteProduct)
		admin.PUT("/update-product/:id", middleware.RequireAdmin(), opts.Admin.UpdateProduct)

		admin.GET("/view-all-users", opts.Admin.ViewAllUsers)
		admin.POST("/create-user", middleware.RequireAdmin(), opts.Admin.CreateUser)
		admin.DELETE("/delete-user/:id", middleware.RequireAdmin(), opts.Admin.DeleteUser)
	}

	order := api.Group("/order", opts.Authenticate)
	{
		order.POST("/create-order", opts.Order.CreateOrder)
		order.GET("/all-orders", opts.Order.GetAllOrders)
		order.GET("/all-managers", opts.Order.GetAllManagers)
		order.GET("/all-orders-assigned", middleware.RequireManager(), opts.Order.GetAssignedOrders)
		order.POST("/assign-all-orders", middleware.RequireAdmin(), opts.Order.AssignAllOrders)
		order.PUT("/unassignManager/:orderId/:managerId", opts.Order.UnassignManager)
	}

	// The realtime channel runs behind the same auth gate as REST.
	r.GET("/ws", opts.Authenticate, opts.ServeWS)

	return r
}
