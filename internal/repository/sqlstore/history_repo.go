package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-app/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-app/internal/pkg/errors"
)

// HistoryRepo реализует repository.HistoryRepository
type HistoryRepo struct {
	db *gorm.DB
}

// NewHistoryRepo создает новый репозиторий истории
func NewHistoryRepo(db *gorm.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// List возвращает все записи истории в порядке добавления
func (r *HistoryRepo) List(ctx context.Context) ([]entity.HistoryRecord, error) {
	records := []entity.HistoryRecord{}
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("%w: list history: %v", apperrors.ErrStore, err)
	}
	return records, nil
}

// Create сохраняет запись, record.ID заполняется присвоенным значением
func (r *HistoryRepo) Create(ctx context.Context, record *entity.HistoryRecord) error {
	record.ID = 0
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("%w: create history record: %v", apperrors.ErrStore, err)
	}
	return nil
}

// Delete удаляет одну запись. Если ни одна строка не затронута, возвращает ErrNotFound.
func (r *HistoryRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.HistoryRecord{}, id)
	if result.Error != nil {
		return fmt.Errorf("%w: delete history record %d: %v", apperrors.ErrStore, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("history record %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// DeleteAll безусловно очищает историю
func (r *HistoryRepo) DeleteAll(ctx context.Context) error {
	err := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&entity.HistoryRecord{}).Error
	if err != nil {
		return fmt.Errorf("%w: delete all history: %v", apperrors.ErrStore, err)
	}
	return nil
}
