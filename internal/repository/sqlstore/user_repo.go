package sqlstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quiz-app/internal/domain/entity"
	apperrors "github.com/yourusername/quiz-app/internal/pkg/errors"
)

// UserRepo реализует repository.UserRepository
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo создает новый репозиторий пользователей
func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db: db}
}

// List возвращает имена всех пользователей в алфавитном порядке
func (r *UserRepo) List(ctx context.Context) ([]string, error) {
	names := []string{}
	if err := r.db.WithContext(ctx).Model(&entity.User{}).Order("username").Pluck("username", &names).Error; err != nil {
		return nil, fmt.Errorf("%w: list users: %v", apperrors.ErrStore, err)
	}
	return names, nil
}

// Create вставляет пользователя. Существующее имя игнорируется (INSERT OR IGNORE / ON CONFLICT DO NOTHING).
func (r *UserRepo) Create(ctx context.Context, username string) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.User{Username: username}).Error
	if err != nil {
		return fmt.Errorf("%w: create user %q: %v", apperrors.ErrStore, username, err)
	}
	return nil
}

// Delete удаляет пользователя по имени, удаление несуществующего - успешный no-op
func (r *UserRepo) Delete(ctx context.Context, username string) error {
	if err := r.db.WithContext(ctx).Where("username = ?", username).Delete(&entity.User{}).Error; err != nil {
		return fmt.Errorf("%w: delete user %q: %v", apperrors.ErrStore, username, err)
	}
	return nil
}

// Count возвращает количество пользователей
func (r *UserRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("%w: count users: %v", apperrors.ErrStore, err)
	}
	return total, nil
}
