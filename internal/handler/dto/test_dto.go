package dto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/yourusername/quiz-app/internal/domain/entity"
)

// OptionalID - ссылка на другой тест. null, false, 0, "" и нечисловые значения
// означают отсутствие ссылки; числа в строках приводятся к числу.
type OptionalID struct {
	Value *uint
}

// UnmarshalJSON реализует json.Unmarshaler
func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.Value = nil
	data = bytes.TrimSpace(data)

	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	var n float64
	switch v := raw.(type) {
	case float64:
		n = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		n = parsed
	default:
		// null, bool, объекты - отсутствие ссылки
		return nil
	}

	if n < 1 || n != float64(uint(n)) {
		return nil
	}
	id := uint(n)
	o.Value = &id
	return nil
}

// MarshalJSON реализует json.Marshaler
func (o OptionalID) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

// TestRequest представляет тело POST/PUT запроса теста (без id)
type TestRequest struct {
	Title      string            `json:"title" binding:"required"`
	Difficulty string            `json:"difficulty"`
	Questions  []entity.Question `json:"questions"`
	Prereq     OptionalID        `json:"prereq"`
}

// ToEntity преобразует запрос в сущность для сохранения
func (r *TestRequest) ToEntity() *entity.Test {
	questions := entity.QuestionList(r.Questions)
	if questions == nil {
		questions = entity.QuestionList{}
	}
	return &entity.Test{
		Title:      r.Title,
		Difficulty: r.Difficulty,
		Questions:  questions,
		Prereq:     entity.NormalizePrereq(r.Prereq.Value),
	}
}

// TestResponse представляет тест в ответе клиенту, вопросы развернуты
type TestResponse struct {
	ID         uint              `json:"id"`
	Title      string            `json:"title"`
	Difficulty string            `json:"difficulty"`
	Questions  []entity.Question `json:"questions"`
	Prereq     *uint             `json:"prereq"`
}

// NewTestResponse создает DTO для теста
func NewTestResponse(t *entity.Test) *TestResponse {
	questions := []entity.Question(t.Questions)
	if questions == nil {
		questions = []entity.Question{}
	}
	return &TestResponse{
		ID:         t.ID,
		Title:      t.Title,
		Difficulty: t.Difficulty,
		Questions:  questions,
		Prereq:     entity.NormalizePrereq(t.Prereq),
	}
}

// NewListTestResponse создает список DTO для тестов
func NewListTestResponse(tests []entity.Test) []*TestResponse {
	out := make([]*TestResponse, len(tests))
	for i := range tests {
		out[i] = NewTestResponse(&tests[i])
	}
	return out
}

// IDResponse возвращается при создании записи
type IDResponse struct {
	ID uint `json:"id"`
}
