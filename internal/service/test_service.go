package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/quiz-app/internal/domain/entity"
	"github.com/yourusername/quiz-app/internal/domain/repository"
	apperrors "github.com/yourusername/quiz-app/internal/pkg/errors"
	"github.com/yourusername/quiz-app/pkg/logger"
	"github.com/yourusername/quiz-app/pkg/monitoring"
)

// TestsCacheKey - ключ закешированного списка тестов
const TestsCacheKey = "tests:all"

// TestService предоставляет методы для работы с тестами.
// Список тестов кешируется; любая мутация сбрасывает кеш.
type TestService struct {
	testRepo  repository.TestRepository
	cacheRepo repository.CacheRepository
	cacheTTL  time.Duration
}

// NewTestService создает новый сервис тестов
func NewTestService(testRepo repository.TestRepository, cacheRepo repository.CacheRepository, cacheTTL time.Duration) *TestService {
	return &TestService{
		testRepo:  testRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
	}
}

// ListTests возвращает все тесты с развернутыми вопросами
func (s *TestService) ListTests(ctx context.Context) ([]entity.Test, error) {
	var cached []entity.Test
	err := s.cacheRepo.GetJSON(ctx, TestsCacheKey, &cached)
	switch {
	case err == nil:
		monitoring.TestsCacheLookups.WithLabelValues("hit").Inc()
		return cached, nil
	case errors.Is(err, apperrors.ErrNotFound):
		monitoring.TestsCacheLookups.WithLabelValues("miss").Inc()
	default:
		// Кеш недоступен - работаем напрямую с хранилищем
		monitoring.TestsCacheLookups.WithLabelValues("error").Inc()
		logger.Log.Warn("[TestService] Ошибка чтения кеша тестов", zap.Error(err))
	}

	tests, err := s.testRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepo.SetJSON(ctx, TestsCacheKey, tests, s.cacheTTL); err != nil {
		logger.Log.Warn("[TestService] Не удалось сохранить тесты в кеш", zap.Error(err))
	}
	return tests, nil
}

// GetTest возвращает тест по id
func (s *TestService) GetTest(ctx context.Context, id uint) (*entity.Test, error) {
	return s.testRepo.GetByID(ctx, id)
}

// CreateTest создает тест и возвращает присвоенный id
func (s *TestService) CreateTest(ctx context.Context, test *entity.Test) (uint, error) {
	if err := validateTest(test); err != nil {
		return 0, err
	}
	if err := s.testRepo.Create(ctx, test); err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	logger.Log.Info("[TestService] Тест создан", zap.Uint("test_id", test.ID), zap.String("title", test.Title))
	return test.ID, nil
}

// UpdateTest заменяет все изменяемые поля теста
func (s *TestService) UpdateTest(ctx context.Context, id uint, test *entity.Test) error {
	if err := validateTest(test); err != nil {
		return err
	}
	if err := s.testRepo.Update(ctx, id, test); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// DeleteTest удаляет тест. История с его названием сохраняется.
func (s *TestService) DeleteTest(ctx context.Context, id uint) error {
	if err := s.testRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *TestService) invalidate(ctx context.Context) {
	if err := s.cacheRepo.Delete(ctx, TestsCacheKey); err != nil {
		logger.Log.Warn("[TestService] Не удалось сбросить кеш тестов", zap.Error(err))
	}
}

// validateTest проверяет только наличие названия: содержимое вопросов не валидируется
func validateTest(test *entity.Test) error {
	if test == nil || strings.TrimSpace(test.Title) == "" {
		return fmt.Errorf("%w: title is required", apperrors.ErrValidation)
	}
	return nil
}
