// Package catalog строит список тестов для главной страницы: последний и лучший
// результат пользователя по каждому тесту и блокировку по пререквизиту.
package catalog

import (
	"fmt"

	"github.com/yourusername/quiz-app/internal/domain/entity"
)

// NoScoreLabel выводится вместо результата, если попыток не было
const NoScoreLabel = "—"

// Entry - строка списка тестов
type Entry struct {
	TestID        uint   `json:"id"`
	Title         string `json:"title"`
	Difficulty    string `json:"difficulty"`
	QuestionCount int    `json:"questionCount"`
	Prereq        *uint  `json:"prereq"`
	Last          *int   `json:"last"`
	Best          *int   `json:"best"`
	Locked        bool   `json:"locked"`
}

// LastLabel возвращает последний результат в виде "score/total" или NoScoreLabel
func (e Entry) LastLabel() string {
	return scoreLabel(e.Last, e.QuestionCount)
}

// BestLabel возвращает лучший результат в виде "score/total" или NoScoreLabel
func (e Entry) BestLabel() string {
	return scoreLabel(e.Best, e.QuestionCount)
}

// StatusLabel возвращает "Locked" или "Available"
func (e Entry) StatusLabel() string {
	if e.Locked {
		return "Locked"
	}
	return "Available"
}

func scoreLabel(score *int, total int) string {
	if score == nil {
		return NoScoreLabel
	}
	return fmt.Sprintf("%d/%d", *score, total)
}

// Attempts возвращает попытки пользователя по тесту в исходном порядке истории
func Attempts(history []entity.HistoryRecord, user string, testID uint) []entity.HistoryRecord {
	var out []entity.HistoryRecord
	for _, h := range history {
		if h.User == user && h.TestID == testID {
			out = append(out, h)
		}
	}
	return out
}

// BestScore возвращает лучший результат пользователя по тесту; ok=false, если попыток нет
func BestScore(history []entity.HistoryRecord, user string, testID uint) (best int, ok bool) {
	for _, h := range Attempts(history, user, testID) {
		if !ok || h.Score > best {
			best = h.Score
			ok = true
		}
	}
	return best, ok
}

// IsLocked сообщает, заблокирован ли тест для пользователя.
// Тест с пререквизитом доступен только после идеального результата на пререквизите;
// отсутствие попыток считается результатом 0. Пререквизит, ссылающийся на
// несуществующий тест, не блокирует.
func IsLocked(test entity.Test, tests []entity.Test, history []entity.HistoryRecord, user string) bool {
	if !test.HasPrereq() {
		return false
	}
	prereq, found := findTest(tests, *test.Prereq)
	if !found {
		return false
	}
	best, _ := BestScore(history, user, prereq.ID)
	return best < prereq.QuestionCount()
}

// Build строит список для пользователя user в порядке tests
func Build(tests []entity.Test, history []entity.HistoryRecord, user string) []Entry {
	entries := make([]Entry, 0, len(tests))
	for _, t := range tests {
		entry := Entry{
			TestID:        t.ID,
			Title:         t.Title,
			Difficulty:    t.Difficulty,
			QuestionCount: t.QuestionCount(),
			Prereq:        entity.NormalizePrereq(t.Prereq),
			Locked:        IsLocked(t, tests, history, user),
		}

		attempts := Attempts(history, user, t.ID)
		if len(attempts) > 0 {
			last := attempts[len(attempts)-1].Score
			best, _ := BestScore(attempts, user, t.ID)
			entry.Last = &last
			entry.Best = &best
		}
		entries = append(entries, entry)
	}
	return entries
}

func findTest(tests []entity.Test, id uint) (entity.Test, bool) {
	for _, t := range tests {
		if t.ID == id {
			return t, true
		}
	}
	return entity.Test{}, false
}
