package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"order_admin/internal/auth"
	"order_admin/internal/database"
	"order_admin/internal/middleware"
	"order_admin/internal/models"
	"order_admin/internal/repository"
	"order_admin/internal/services"
	"order_admin/internal/session"
)

type apiFixture struct {
	db     *gorm.DB
	router *gin.Engine
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	tokens := auth.NewManager("test-secret", time.Hour)
	sessions := session.NewMemory()

	authSvc := services.NewAuthService(userRepo, sessions, tokens)
	userSvc := services.NewUserService(userRepo)
	productSvc := services.NewProductService(productRepo)
	orderSvc := services.NewOrderService(orderRepo, userRepo)

	log := zap.NewNop()
	router := NewRouter(RouterOptions{
		Log:          log,
		CORSOrigin:   "http://localhost:5173",
		Authenticate: middleware.Authenticate(tokens, sessions, userRepo),
		Auth:         NewAuthHandler(authSvc, tokens, false),
		Admin:        NewAdminHandler(userSvc, productSvc),
		Order:        NewOrderHandler(orderSvc, userSvc),
		ServeWS:      func(c *gin.Context) { c.Status(http.StatusOK) },
	})

	return &apiFixture{db: db, router: router}
}

func (f *apiFixture) seedUser(t *testing.T, username, email, password string, role models.UserRole) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Role:     string(role),
	}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

func (f *apiFixture) do(t *testing.T, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *apiFixture) login(t *testing.T, email, password string) *http.Cookie {
	t.Helper()
	w := f.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"email": email, "password": password})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == middleware.AccessTokenCookie {
			return cookie
		}
	}
	t.Fatal("login response did not set the access token cookie")
	return nil
}

func TestLoginLogoutFlow(t *testing.T) {
	f := newAPIFixture(t)
	f.seedUser(t, "boss", "boss@example.com", "secret123", models.RoleAdmin)

	w := f.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "boss@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Successfully logged in")

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.AccessTokenCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)

	w = f.do(t, http.MethodGet, "/api/v1/auth/verify-auth", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Verification success")

	w = f.do(t, http.MethodGet, "/api/v1/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "logout success")

	// the session is revoked; the old cookie no longer authenticates
	w = f.do(t, http.MethodGet, "/api/v1/auth/verify-auth", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := newAPIFixture(t)
	f.seedUser(t, "boss", "boss@example.com", "secret123", models.RoleAdmin)

	w := f.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "nobody@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid Email/Password. Please try Again!")

	w = f.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{"email": "boss@example.com", "password": "wrongpass"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid Credentials")
}

func TestCreateProductDuplicateViaAPI(t *testing.T) {
	f := newAPIFixture(t)
	f.seedUser(t, "boss", "boss@example.com", "secret123", models.RoleAdmin)
	cookie := f.login(t, "boss@example.com", "secret123")

	body := gin.H{"name": "Widget", "description": "a widget", "price": 10.0, "stock": 5}

	w := f.do(t, http.MethodPost, "/api/v1/admin/create-product", body, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = f.do(t, http.MethodPost, "/api/v1/admin/create-product", body, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Product has been already added")
}

func TestCreateProductValidation(t *testing.T) {
	f := newAPIFixture(t)
	f.seedUser(t, "boss", "boss@example.com", "secret123", models.RoleAdmin)
	cookie := f.login(t, "boss@example.com", "secret123")

	w := f.do(t, http.MethodPost, "/api/v1/admin/create-product", gin.H{"name": "xy"}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Validation failed")
}

func TestRoleGates(t *testing.T) {
	f := newAPIFixture(t)
	f.seedUser(t, "worker", "worker@example.com", "secret123", models.RoleManager)
	cookie := f.login(t, "worker@example.com", "secret123")

	body := gin.H{"name": "Widget", "description": "a widget", "price": 10.0, "stock": 5}
	w := f.do(t, http.MethodPost, "/api/v1/admin/create-product", body, cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// read endpoints stay open to managers
	w = f.do(t, http.MethodGet, "/api/v1/admin/all-products", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	w = f.do(t, http.MethodPost, "/api/v1/order/assign-all-orders", gin.H{"managerId": 1}, cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDeleteOwnAccountRefused(t *testing.T) {
	f := newAPIFixture(t)
	admin := f.seedUser(t, "boss", "boss@example.com", "secret123", models.RoleAdmin)
	cookie := f.login(t, "boss@example.com", "secret123")

	w := f.do(t, http.MethodDelete, "/api/v1/admin/delete-user/"+itoa(admin.ID), nil, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "You cannot delete your own account from UI")
}

func TestOrderLifecycleViaAPI(t *testing.T) {
	f := newAPIFixture(t)
	f.seedUser(t, "boss", "boss@example.com", "secret123", models.RoleAdmin)
	manager := f.seedUser(t, "worker", "worker@example.com", "secret123", models.RoleManager)

	adminCookie := f.login(t, "boss@example.com", "secret123")
	managerCookie := f.login(t, "worker@example.com", "secret123")

	w := f.do(t, http.MethodPost, "/api/v1/order/create-order", gin.H{
		"totalAmount": 25.5,
		"items":       []gin.H{{"productId": 1, "quantity": 2, "price": 12.75}},
	}, adminCookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Order created successfully!")

	w = f.do(t, http.MethodPost, "/api/v1/order/assign-all-orders", gin.H{"managerId": manager.ID}, adminCookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Successfully assigned 1 orders to manager")

	// nothing left to assign on the second pass
	w = f.do(t, http.MethodPost, "/api/v1/order/assign-all-orders", gin.H{"managerId": manager.ID}, adminCookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No unassigned orders found")

	w = f.do(t, http.MethodGet, "/api/v1/order/all-orders-assigned", nil, managerCookie)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	orderID := resp.Data[0].ID

	w = f.do(t, http.MethodPut, "/api/v1/order/unassignManager/"+itoa(orderID)+"/"+itoa(manager.ID), nil, adminCookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Manager successfully unassigned from the order")

	w = f.do(t, http.MethodPut, "/api/v1/order/unassignManager/"+itoa(orderID)+"/"+itoa(manager.ID), nil, adminCookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Order has no manager assigned")
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	f := newAPIFixture(t)

	for _, path := range []string{
		"/api/v1/admin/all-products",
		"/api/v1/order/all-orders",
		"/ws",
	} {
		w := f.do(t, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
