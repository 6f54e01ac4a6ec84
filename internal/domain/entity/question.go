package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// NoSelection обозначает отсутствие выбранного варианта ответа
const NoSelection = -1

// Question представляет вопрос теста с вариантами ответа.
// Вопросы не хранятся отдельными строками, а живут внутри сериализованного поля теста.
type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   int      `json:"answer"`
}

// IsCorrect проверяет, является ли выбранный вариант правильным.
// NoSelection и индексы вне диапазона всегда считаются неверным ответом.
func (q *Question) IsCorrect(selectedOption int) bool {
	return q.IsValidOption(selectedOption) && selectedOption == q.Answer
}

// OptionsCount возвращает количество вариантов ответа
func (q *Question) OptionsCount() int {
	return len(q.Options)
}

// IsValidOption проверяет, является ли выбранный вариант допустимым
func (q *Question) IsValidOption(selectedOption int) bool {
	return selectedOption >= 0 && selectedOption < len(q.Options)
}

// QuestionList - упорядоченный список вопросов, хранящийся в БД как JSON-текст
type QuestionList []Question

// Scan реализует интерфейс sql.Scanner для QuestionList.
// SQLite и PostgreSQL отдают TEXT либо строкой, либо []byte, поддерживаем оба варианта.
func (l *QuestionList) Scan(value interface{}) error {
	if value == nil {
		*l = QuestionList{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("failed to scan questions: unsupported type %T", value)
	}

	decoded, err := DecodeQuestions(raw)
	if err != nil {
		return err
	}
	*l = decoded
	return nil
}

// Value реализует интерфейс driver.Valuer для QuestionList
func (l QuestionList) Value() (driver.Value, error) {
	data, err := EncodeQuestions(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Len возвращает количество вопросов
func (l QuestionList) Len() int {
	return len(l)
}

// EncodeQuestions сериализует вопросы в JSON. Пустой список кодируется как "[]", а не null.
func EncodeQuestions(questions []Question) ([]byte, error) {
	if questions == nil {
		questions = []Question{}
	}
	data, err := json.Marshal(questions)
	if err != nil {
		return nil, fmt.Errorf("failed to encode questions: %w", err)
	}
	return data, nil
}

// DecodeQuestions разбирает сериализованный список вопросов
func DecodeQuestions(raw []byte) (QuestionList, error) {
	if len(raw) == 0 {
		return QuestionList{}, nil
	}
	var questions QuestionList
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("malformed questions payload: %w", err)
	}
	if questions == nil {
		questions = QuestionList{}
	}
	return questions, nil
}
