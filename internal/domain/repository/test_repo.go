package repository

import (
	"context"

	"github.com/yourusername/quiz-app/internal/domain/entity"
)

// TestRepository определяет методы для работы с тестами
type TestRepository interface {
	List(ctx context.Context) ([]entity.Test, error)
	GetByID(ctx context.Context, id uint) (*entity.Test, error)
	// Create присваивает тесту новый id
	Create(ctx context.Context, test *entity.Test) error
	// Update заменяет все изменяемые поля теста с указанным id
	Update(ctx context.Context, id uint, test *entity.Test) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}
