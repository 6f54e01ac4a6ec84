package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/quiz-app/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-app/internal/pkg/errors"
)

// TestRepo реализует repository.TestRepository.
// Вопросы хранятся в колонке questions как JSON-текст (entity.QuestionList).
type TestRepo struct {
	db *gorm.DB
}

// NewTestRepo создает новый репозиторий тестов
func NewTestRepo(db *gorm.DB) *TestRepo {
	return &TestRepo{db: db}
}

// List возвращает все тесты по возрастанию id.
// Испорченный JSON вопросов в любой строке возвращается ошибкой для всего списка.
func (r *TestRepo) List(ctx context.Context) ([]entity.Test, error) {
	tests := []entity.Test{}
	if err := r.db.WithContext(ctx).Order("id").Find(&tests).Error; err != nil {
		return nil, fmt.Errorf("%w: list tests: %v", apperrors.ErrStore, err)
	}
	return tests, nil
}

// GetByID возвращает тест по id
func (r *TestRepo) GetByID(ctx context.Context, id uint) (*entity.Test, error) {
	var test entity.Test
	err := r.db.WithContext(ctx).First(&test, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("test %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: get test %d: %v", apperrors.ErrStore, id, err)
	}
	return &test, nil
}

// Create сохраняет тест, test.ID заполняется присвоенным значением
func (r *TestRepo) Create(ctx context.Context, test *entity.Test) error {
	test.ID = 0
	test.Prereq = entity.NormalizePrereq(test.Prereq)
	if err := r.db.WithContext(ctx).Create(test).Error; err != nil {
		return fmt.Errorf("%w: create test: %v", apperrors.ErrStore, err)
	}
	return nil
}

// Update перезаписывает title, difficulty, questions и prereq.
// Select нужен, чтобы нулевые значения (пустой prereq) тоже записывались.
func (r *TestRepo) Update(ctx context.Context, id uint, test *entity.Test) error {
	questions := test.Questions
	if questions == nil {
		questions = entity.QuestionList{}
	}
	err := r.db.WithContext(ctx).
		Model(&entity.Test{}).
		Where("id = ?", id).
		Select("title", "difficulty", "questions", "prereq").
		Updates(&entity.Test{
			Title:      test.Title,
			Difficulty: test.Difficulty,
			Questions:  questions,
			Prereq:     entity.NormalizePrereq(test.Prereq),
		}).Error
	if err != nil {
		return fmt.Errorf("%w: update test %d: %v", apperrors.ErrStore, id, err)
	}
	return nil
}

// Delete удаляет тест по id
func (r *TestRepo) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&entity.Test{}, id).Error; err != nil {
		return fmt.Errorf("%w: delete test %d: %v", apperrors.ErrStore, id, err)
	}
	return nil
}

// Count возвращает количество тестов
func (r *TestRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.Test{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("%w: count tests: %v", apperrors.ErrStore, err)
	}
	return total, nil
}
