package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"order_admin/internal/apperrors"
	"order_admin/internal/auth"
	"order_admin/internal/models"
	"order_admin/internal/repository"
	"order_admin/internal/session"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	Logout(ctx context.Context, sessionID string) error
}

type authService struct {
	userRepo repository.UserRepository
	sessions session.Store
	tokens   *auth.Manager
}

func NewAuthService(userRepo repository.UserRepository, sessions session.Store, tokens *auth.Manager) AuthService {
	return &authService{userRepo: userRepo, sessions: sessions, tokens: tokens}
}

// Login checks the credentials, records a session and issues the signed
// token the cookie will carry.
func (s *authService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.BadRequest("Invalid Email/Password. Please try Again!")
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperrors.BadRequest("Invalid Credentials")
	}

	sessionID := uuid.NewString()
	if err := s.sessions.Set(ctx, sessionID, &session.Data{UserID: user.ID, Role: user.Role}, s.tokens.TTL); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID, sessionID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Logout revokes the session; the cookie alone is not trusted after this.
func (s *authService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(ctx, sessionID)
}
