package service

import (
	"context"

	"github.com/yourusername/quiz-app/internal/engine/catalog"
)

// CatalogService собирает список тестов с блокировками для пользователя
type CatalogService struct {
	tests   *TestService
	history *HistoryService
}

// NewCatalogService создает новый сервис каталога
func NewCatalogService(tests *TestService, history *HistoryService) *CatalogService {
	return &CatalogService{tests: tests, history: history}
}

// GetCatalog возвращает список тестов для пользователя
func (s *CatalogService) GetCatalog(ctx context.Context, user string) ([]catalog.Entry, error) {
	tests, err := s.tests.ListTests(ctx)
	if err != nil {
		return nil, err
	}
	history, err := s.history.ListHistory(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Build(tests, history, user), nil
}
