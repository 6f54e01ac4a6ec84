package repository

import (
	"context"

	"github.com/yourusername/quiz-app/internal/domain/entity"
)

// HistoryRepository определяет методы для работы с историей попыток
type HistoryRepository interface {
	List(ctx context.Context) ([]entity.HistoryRecord, error)
	// Create присваивает записи новый id
	Create(ctx context.Context, record *entity.HistoryRecord) error
	// Delete возвращает apperrors.ErrNotFound, если записи с таким id нет
	Delete(ctx context.Context, id uint) error
	// DeleteAll очищает таблицу, в том числе уже пустую
	DeleteAll(ctx context.Context) error
}
