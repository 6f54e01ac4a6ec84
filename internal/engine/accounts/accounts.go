// Package accounts управляет списком пользователей и активным пользователем клиента.
package accounts

import (
	"context"
	"errors"
	"strings"

	"github.com/yourusername/quiz-app/internal/domain/entity"
)

var (
	ErrEmptyUsername = errors.New("username is empty")
	ErrActiveUser    = errors.New("cannot delete active user")
)

// Preferences хранит активного пользователя между запусками
type Preferences interface {
	ActiveUser() string
	SetActiveUser(name string) error
}

// API - вызовы сервера для пользователей
type API interface {
	ListUsers(ctx context.Context) ([]string, error)
	AddUser(ctx context.Context, username string) error
	DeleteUser(ctx context.Context, username string) error
}

// Manager связывает локальные настройки и сервер
type Manager struct {
	prefs Preferences
	api   API
}

// NewManager создает менеджер пользователей
func NewManager(prefs Preferences, api API) *Manager {
	return &Manager{prefs: prefs, api: api}
}

// Active возвращает активного пользователя, по умолчанию Guest
func (m *Manager) Active() string {
	if u := m.prefs.ActiveUser(); u != "" {
		return u
	}
	return entity.DefaultUsername
}

// UserEntry - строка списка пользователей
type UserEntry struct {
	Name   string
	Active bool
}

// List загружает пользователей и помечает активного
func (m *Manager) List(ctx context.Context) ([]UserEntry, error) {
	names, err := m.api.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	active := m.Active()
	out := make([]UserEntry, len(names))
	for i, n := range names {
		out[i] = UserEntry{Name: n, Active: n == active}
	}
	return out, nil
}

// Add создает пользователя и делает его активным. Пустое имя после обрезки пробелов
// возвращает ErrEmptyUsername без обращения к серверу.
func (m *Manager) Add(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyUsername
	}
	if err := m.api.AddUser(ctx, name); err != nil {
		return "", err
	}
	if err := m.prefs.SetActiveUser(name); err != nil {
		return "", err
	}
	return name, nil
}

// Switch делает пользователя активным. Существование на сервере не проверяется.
func (m *Manager) Switch(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyUsername
	}
	return m.prefs.SetActiveUser(name)
}

// Delete удаляет пользователя; активного удалить нельзя
func (m *Manager) Delete(ctx context.Context, name string) error {
	if name == m.Active() {
		return ErrActiveUser
	}
	return m.api.DeleteUser(ctx, name)
}
