package repository

import (
	"context"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	// List возвращает имена всех пользователей
	List(ctx context.Context) ([]string, error)
	// Create добавляет пользователя; повторная вставка существующего имени ничего не делает
	Create(ctx context.Context, username string) error
	// Delete удаляет пользователя по имени; отсутствие пользователя не ошибка
	Delete(ctx context.Context, username string) error
	Count(ctx context.Context) (int64, error)
}
