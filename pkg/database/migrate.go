package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	migrateV4 "github.com/golang-migrate/migrate/v4"
	migratePostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/yourusername/quiz-app/internal/config"
	"github.com/yourusername/quiz-app/internal/domain/entity"
	"github.com/yourusername/quiz-app/pkg/logger"
)

// MigrationsFS содержит SQL-миграции PostgreSQL
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS

// MigrateDB приводит схему к актуальной: для PostgreSQL через golang-migrate,
// для SQLite через AutoMigrate (users, tests, history)
func MigrateDB(db *gorm.DB, driver string) error {
	if driver == config.DriverPostgres {
		return migratePostgresDB(db)
	}
	if err := db.AutoMigrate(&entity.User{}, &entity.Test{}, &entity.HistoryRecord{}); err != nil {
		return fmt.Errorf("auto-migrate failed: %w", err)
	}
	return nil
}

// NewMigrator создает экземпляр migrate поверх встроенных миграций и открытого *sql.DB
func NewMigrator(db *gorm.DB) (*migrateV4.Migrate, error) {
	sqlDB, err := GetSQLDB(db)
	if err != nil {
		return nil, err
	}
	return NewSQLMigrator(sqlDB)
}

// NewSQLMigrator создает экземпляр migrate поверх *sql.DB с драйвером postgres
func NewSQLMigrator(sqlDB *sql.DB) (*migrateV4.Migrate, error) {
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("не удалось проверить подключение к БД перед миграцией: %w", err)
	}

	driver, err := migratePostgres.WithInstance(sqlDB, &migratePostgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("не удалось создать драйвер postgres для migrate: %w", err)
	}

	source, err := iofs.New(MigrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть встроенные миграции: %w", err)
	}

	m, err := migrateV4.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать экземпляр migrate: %w", err)
	}
	return m, nil
}

func migratePostgresDB(db *gorm.DB) error {
	m, err := NewMigrator(db)
	if err != nil {
		return err
	}

	logger.Log.Info("Применяем миграции 'up'")
	err = m.Up()
	switch {
	case errors.Is(err, migrateV4.ErrNoChange):
		logger.Log.Info("Изменений в миграциях не найдено, база данных уже актуальна")
	case err != nil:
		logger.Log.Error("Ошибка применения миграций", zap.Error(err))
		return fmt.Errorf("ошибка применения миграций 'up': %w", err)
	default:
		logger.Log.Info("Миграции успешно применены")
	}
	return nil
}
