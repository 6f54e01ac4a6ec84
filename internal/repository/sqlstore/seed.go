package sqlstore

import (
	"context"
	"fmt"

	"github.com/yourusername/quiz-app/internal/domain/entity"
	"github.com/yourusername/quiz-app/internal/domain/repository"
	"github.com/yourusername/quiz-app/pkg/logger"
	"go.uber.org/zap"
)

// SampleTestTitle - название теста, создаваемого при первом запуске
const SampleTestTitle = "Sample Test"

// SampleTest возвращает тест по умолчанию с двумя вопросами (ответы 3 и 0)
func SampleTest() *entity.Test {
	return &entity.Test{
		Title:      SampleTestTitle,
		Difficulty: "Easy",
		Questions: entity.QuestionList{
			{Question: "What is 2+2?", Options: []string{"1", "2", "3", "4"}, Answer: 3},
			{Question: "Capital of France?", Options: []string{"Paris", "London", "Rome", "Berlin"}, Answer: 0},
		},
	}
}

// Seed заполняет пустое хранилище: пользователь Guest и один тестовый тест.
// Таблицы проверяются независимо, непустая таблица не трогается.
func Seed(ctx context.Context, users repository.UserRepository, tests repository.TestRepository) error {
	userCount, err := users.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if userCount == 0 {
		if err := users.Create(ctx, entity.DefaultUsername); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
		logger.Log.Info("Seeded default user", zap.String("username", entity.DefaultUsername))
	}

	testCount, err := tests.Count(ctx)
	if err != nil {
		return fmt.Errorf("seed tests: %w", err)
	}
	if testCount == 0 {
		sample := SampleTest()
		if err := tests.Create(ctx, sample); err != nil {
			return fmt.Errorf("seed tests: %w", err)
		}
		logger.Log.Info("Seeded sample test", zap.Uint("test_id", sample.ID))
	}
	return nil
}
