// Package settings - форма создания и редактирования тестов.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yourusername/quiz-app/internal/domain/entity"
)

var (
	ErrInvalidQuestions = errors.New("questions must be a JSON array of {question, options, answer}")
	ErrTitleRequired    = errors.New("title is required")
)

// API - вызовы сервера для тестов
type API interface {
	ListTests(ctx context.Context) ([]entity.Test, error)
	CreateTest(ctx context.Context, test entity.Test) (uint, error)
	UpdateTest(ctx context.Context, id uint, test entity.Test) error
	DeleteTest(ctx context.Context, id uint) error
}

// Form - поля формы в текстовом виде
type Form struct {
	Title      string
	Difficulty string
	// Questions - JSON массив вопросов
	Questions string
	// Prereq - id теста-пререквизита; пусто, 0 или не число означает "нет"
	Prereq string
}

// ParseForm превращает поля формы в тест
func ParseForm(f Form) (entity.Test, error) {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return entity.Test{}, ErrTitleRequired
	}

	var questions entity.QuestionList
	if err := json.Unmarshal([]byte(f.Questions), &questions); err != nil {
		return entity.Test{}, fmt.Errorf("%w: %v", ErrInvalidQuestions, err)
	}
	if questions == nil {
		questions = entity.QuestionList{}
	}

	return entity.Test{
		Title:      title,
		Difficulty: strings.TrimSpace(f.Difficulty),
		Questions:  questions,
		Prereq:     parsePrereq(f.Prereq),
	}, nil
}

func parsePrereq(s string) *uint {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil || n == 0 {
		return nil
	}
	id := uint(n)
	return &id
}

// FormFromTest заполняет форму данными теста, вопросы с отступами
func FormFromTest(t entity.Test) (Form, error) {
	questions := t.Questions
	if questions == nil {
		questions = entity.QuestionList{}
	}
	raw, err := json.MarshalIndent(questions, "", "  ")
	if err != nil {
		return Form{}, err
	}
	prereq := ""
	if t.Prereq != nil && *t.Prereq != 0 {
		prereq = strconv.FormatUint(uint64(*t.Prereq), 10)
	}
	return Form{
		Title:      t.Title,
		Difficulty: t.Difficulty,
		Questions:  string(raw),
		Prereq:     prereq,
	}, nil
}

// Editor - состояние страницы настроек: форма и режим (создание или правка)
type Editor struct {
	api     API
	form    Form
	editing *uint
}

// NewEditor создает редактор в режиме создания
func NewEditor(api API) *Editor {
	return &Editor{api: api}
}

// Form возвращает текущее содержимое формы
func (e *Editor) Form() Form { return e.form }

// SetForm заменяет содержимое формы (ввод пользователя)
func (e *Editor) SetForm(f Form) { e.form = f }

// Editing возвращает id редактируемого теста
func (e *Editor) Editing() (uint, bool) {
	if e.editing == nil {
		return 0, false
	}
	return *e.editing, true
}

// StartEdit загружает тест в форму и переключает в режим правки
func (e *Editor) StartEdit(ctx context.Context, id uint) error {
	tests, err := e.api.ListTests(ctx)
	if err != nil {
		return err
	}
	for _, t := range tests {
		if t.ID == id {
			form, err := FormFromTest(t)
			if err != nil {
				return err
			}
			e.form = form
			e.editing = &id
			return nil
		}
	}
	return fmt.Errorf("test %d not found", id)
}

// Reset очищает форму и возвращает режим создания
func (e *Editor) Reset() {
	e.form = Form{}
	e.editing = nil
}

// Submit создает новый тест или обновляет редактируемый и сбрасывает форму.
// Возвращает id созданного или обновленного теста.
func (e *Editor) Submit(ctx context.Context) (uint, error) {
	test, err := ParseForm(e.form)
	if err != nil {
		return 0, err
	}

	if id, ok := e.Editing(); ok {
		if err := e.api.UpdateTest(ctx, id, test); err != nil {
			return 0, err
		}
		e.Reset()
		return id, nil
	}

	id, err := e.api.CreateTest(ctx, test)
	if err != nil {
		return 0, err
	}
	e.Reset()
	return id, nil
}

// Delete удаляет тест; если он был в правке, форма сбрасывается
func (e *Editor) Delete(ctx context.Context, id uint) error {
	if err := e.api.DeleteTest(ctx, id); err != nil {
		return err
	}
	if cur, ok := e.Editing(); ok && cur == id {
		e.Reset()
	}
	return nil
}
