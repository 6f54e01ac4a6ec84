package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/yourusername/quiz-app/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-app/internal/pkg/errors"
	"github.com/yourusername/quiz-app/pkg/logger"
)

// UserService предоставляет методы для работы с пользователями
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService создает новый сервис пользователей
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// ListUsers возвращает имена всех пользователей
func (s *UserService) ListUsers(ctx context.Context) ([]string, error) {
	return s.userRepo.List(ctx)
}

// CreateUser добавляет пользователя, повторное имя - no-op
func (s *UserService) CreateUser(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}
	if err := s.userRepo.Create(ctx, username); err != nil {
		logger.Log.Error("[UserService] Ошибка при создании пользователя", zap.String("username", username), zap.Error(err))
		return err
	}
	return nil
}

// DeleteUser удаляет пользователя по имени
func (s *UserService) DeleteUser(ctx context.Context, username string) error {
	return s.userRepo.Delete(ctx, username)
}
