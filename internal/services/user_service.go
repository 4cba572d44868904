package services

import (
	"context"
	"errors"

	"repair-backend/internal/auth"
	"repair-backend/internal/models"
	"repair-backend/internal/repositories"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type UserService struct {
	Repo       *repositories.UserRepository
	JWTManager *auth.JWTManager
}

func NewUserService(repo *repositories.UserRepository, jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		Repo:       repo,
		JWTManager: jwtManager,
	}
}

// Login verifies credentials and issues a token. Inactive accounts fail
// the same way as wrong passwords so probing reveals nothing.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.AuthResponse, error) {
	user, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive || !auth.VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.JWTManager.GenerateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Token: token, User: user}, nil
}

func (s *UserService) CreateUser(ctx context.Context, req *models.CreateUserRequest) (*models.User, error) {
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hashedPassword,
		IsAdmin:      req.IsAdmin,
		IsActive:     true,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetUser(ctx context.Context, id int) (*models.User, error) {
	return s.Repo.Get(ctx, id)
}

// ListUsers returns all users
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.Repo.List(ctx)
}

// UpdateUser applies the admin edit form; a non-empty password is rehashed
func (s *UserService) UpdateUser(ctx context.Context, id int, req *models.UpdateUserRequest) error {
	if err := s.Repo.Update(ctx, id, req.Name, req.IsAdmin, req.IsActive); err != nil {
		return err
	}
	if req.Password != "" {
		hashedPassword, err := auth.HashPassword(req.Password)
		if err != nil {
			return err
		}
		return s.Repo.UpdatePassword(ctx, id, hashedPassword)
	}
	return nil
}

func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	return s.Repo.Delete(ctx, id)
}
