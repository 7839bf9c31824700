package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"order_admin/internal/apperrors"
	"order_admin/internal/models"
	"order_admin/internal/repository"
)

type UserService interface {
	CreateUser(username, email, password, role string) (*models.User, error)
	DeleteUser(id, currentUserID uint) error
	ToggleRole(id uint) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetAllUsers() ([]models.User, error)
	GetManagers() ([]models.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(username, email, password, role string) (*models.User, error) {
	if role != string(models.RoleAdmin) && role != string(models.RoleManager) {
		return nil, apperrors.BadRequest("role must be ADMIN or MANAGER")
	}

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, apperrors.BadRequest("user already exist")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetByUsername(username); err == nil {
		return nil, apperrors.BadRequest("user already exist")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes a user. The authenticated admin can never delete
// their own account, regardless of other admins existing.
func (s *userService) DeleteUser(id, currentUserID uint) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.BadRequest("user not found")
		}
		return err
	}

	if user.ID == currentUserID {
		return apperrors.BadRequest("You cannot delete your own account from UI")
	}

	return s.userRepo.Delete(user.ID)
}

// ToggleRole flips ADMIN<->MANAGER. Applying it twice restores the
// original role.
func (s *userService) ToggleRole(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.BadRequest("user not found")
		}
		return nil, err
	}

	user.Role = models.ToggleRole(user.Role)
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *userService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

func (s *userService) GetManagers() ([]models.User, error) {
	return s.userRepo.GetByRole(string(models.RoleManager))
}
