package dto

import "github.com/yourusername/quiz-app/internal/domain/entity"

// CreateHistoryRequest представляет запрос на сохранение попытки (без id)
type CreateHistoryRequest struct {
	User      string `json:"user" binding:"required"`
	TestID    uint   `json:"testId"`
	TestTitle string `json:"testTitle"`
	Score     int    `json:"score" binding:"min=0"`
	Date      int64  `json:"date"`
}

// ToEntity преобразует запрос в запись истории
func (r *CreateHistoryRequest) ToEntity() *entity.HistoryRecord {
	return &entity.HistoryRecord{
		User:      r.User,
		TestID:    r.TestID,
		TestTitle: r.TestTitle,
		Score:     r.Score,
		Date:      r.Date,
	}
}
