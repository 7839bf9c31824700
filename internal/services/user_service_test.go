package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"order_admin/internal/apperrors"
	"order_admin/internal/models"
	"order_admin/internal/repository"
)

func TestCreateUserDuplicate(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	_, err := svc.CreateUser("alice", "alice@example.com", "password123", "MANAGER")
	require.NoError(t, err)

	// same email
	_, err = svc.CreateUser("alice2", "alice@example.com", "password123", "MANAGER")
	require.Error(t, err)
	assert.Equal(t, "user already exist", err.Error())

	// same username
	_, err = svc.CreateUser("alice", "alice2@example.com", "password123", "MANAGER")
	require.Error(t, err)
	assert.Equal(t, "user already exist", err.Error())
}

func TestCreateUserInvalidRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	_, err := svc.CreateUser("bob", "bob@example.com", "password123", "SUPERVISOR")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Status)
}

func TestToggleRoleIsInvolution(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	user := createTestUser(t, db, "carol", "carol@example.com", models.RoleAdmin)

	flipped, err := svc.ToggleRole(user.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleManager), flipped.Role)

	restored, err := svc.ToggleRole(user.ID)
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleAdmin), restored.Role)
}

func TestToggleRoleUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))

	_, err := svc.ToggleRole(999)
	require.Error(t, err)
	assert.Equal(t, "user not found", err.Error())
}

func TestDeleteUserSelfDeletionForbidden(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	admin := createTestUser(t, db, "admin", "admin@example.com", models.RoleAdmin)
	// a second admin existing must not make self-deletion legal
	createTestUser(t, db, "admin2", "admin2@example.com", models.RoleAdmin)

	err := svc.DeleteUser(admin.ID, admin.ID)
	require.Error(t, err)
	assert.Equal(t, "You cannot delete your own account from UI", err.Error())

	// the account is still there
	_, err = svc.GetUserByID(admin.ID)
	assert.NoError(t, err)
}

func TestDeleteUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	admin := createTestUser(t, db, "admin", "admin@example.com", models.RoleAdmin)
	manager := createTestUser(t, db, "manager", "manager@example.com", models.RoleManager)

	require.NoError(t, svc.DeleteUser(manager.ID, admin.ID))

	err := svc.DeleteUser(manager.ID, admin.ID)
	require.Error(t, err)
	assert.Equal(t, "user not found", err.Error())
}

func TestGetManagers(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(repository.NewUserRepository(db))
	createTestUser(t, db, "admin", "admin@example.com", models.RoleAdmin)
	createTestUser(t, db, "m1", "m1@example.com", models.RoleManager)
	createTestUser(t, db, "m2", "m2@example.com", models.RoleManager)

	managers, err := svc.GetManagers()
	require.NoError(t, err)
	require.Len(t, managers, 2)
	for _, m := range managers {
		assert.Equal(t, string(models.RoleManager), m.Role)
	}
}
