package client

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/yourusername/quiz-app/internal/domain/entity"
)

const (
	keyCurrentUser = "current_user"
	keyAPIURL      = "api_url"

	// DefaultAPIURL - адрес сервера по умолчанию
	DefaultAPIURL = "http://localhost:3000"
)

// Preferences - локальные настройки клиента в YAML файле: активный пользователь и адрес сервера
type Preferences struct {
	vip  *viper.Viper
	path string
}

// DefaultPreferencesPath возвращает путь в каталоге настроек пользователя
func DefaultPreferencesPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "quizctl", "config.yaml"), nil
}

// LoadPreferences читает настройки; отсутствующий файл дает значения по умолчанию.
// QUIZ_API_URL переопределяет адрес сервера.
func LoadPreferences(path string) (*Preferences, error) {
	vip := viper.New()
	vip.SetDefault(keyCurrentUser, entity.DefaultUsername)
	vip.SetDefault(keyAPIURL, DefaultAPIURL)
	vip.BindEnv(keyAPIURL, "QUIZ_API_URL")

	vip.SetConfigFile(path)
	vip.SetConfigType("yaml")
	if err := vip.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read preferences %q: %w", path, err)
	}
	return &Preferences{vip: vip, path: path}, nil
}

// ActiveUser возвращает активного пользователя
func (p *Preferences) ActiveUser() string {
	if u := strings.TrimSpace(p.vip.GetString(keyCurrentUser)); u != "" {
		return u
	}
	return entity.DefaultUsername
}

// SetActiveUser запоминает активного пользователя и сохраняет файл
func (p *Preferences) SetActiveUser(name string) error {
	p.vip.Set(keyCurrentUser, name)
	return p.save()
}

// APIURL возвращает адрес сервера
func (p *Preferences) APIURL() string {
	return p.vip.GetString(keyAPIURL)
}

// SetAPIURL запоминает адрес сервера
func (p *Preferences) SetAPIURL(u string) error {
	p.vip.Set(keyAPIURL, u)
	return p.save()
}

func (p *Preferences) save() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("failed to create preferences dir: %w", err)
	}
	if err := p.vip.WriteConfigAs(p.path); err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return nil
}
