package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/yourusername/quiz-app/internal/domain/entity"
	"github.com/yourusername/quiz-app/internal/domain/repository"
	"github.com/yourusername/quiz-app/pkg/logger"
	"github.com/yourusername/quiz-app/pkg/monitoring"
)

// HistoryService предоставляет методы для работы с историей попыток
type HistoryService struct {
	historyRepo repository.HistoryRepository
}

// NewHistoryService создает новый сервис истории
func NewHistoryService(historyRepo repository.HistoryRepository) *HistoryService {
	return &HistoryService{historyRepo: historyRepo}
}

// ListHistory возвращает все записи истории
func (s *HistoryService) ListHistory(ctx context.Context) ([]entity.HistoryRecord, error) {
	return s.historyRepo.List(ctx)
}

// RecordAttempt сохраняет завершенную попытку и возвращает ее id
func (s *HistoryService) RecordAttempt(ctx context.Context, record *entity.HistoryRecord) (uint, error) {
	if err := s.historyRepo.Create(ctx, record); err != nil {
		return 0, err
	}
	monitoring.AttemptsRecorded.Inc()
	logger.Log.Info("[HistoryService] Попытка сохранена",
		zap.Uint("id", record.ID),
		zap.String("user", record.User),
		zap.Uint("test_id", record.TestID),
		zap.Int("score", record.Score),
	)
	return record.ID, nil
}

// DeleteRecord удаляет запись; несуществующий id дает apperrors.ErrNotFound
func (s *HistoryService) DeleteRecord(ctx context.Context, id uint) error {
	return s.historyRepo.Delete(ctx, id)
}

// ClearHistory удаляет всю историю
func (s *HistoryService) ClearHistory(ctx context.Context) error {
	if err := s.historyRepo.DeleteAll(ctx); err != nil {
		return err
	}
	logger.Log.Info("[HistoryService] История очищена")
	return nil
}
