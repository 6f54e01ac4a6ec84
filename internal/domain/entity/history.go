package entity

import "time"

// HistoryRecord представляет одну завершенную попытку прохождения теста.
// TestTitle - снимок названия теста на момент попытки, чтобы удаление или
// переименование теста не портило историю.
type HistoryRecord struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	User      string `gorm:"column:user;type:text;index:idx_history_user_test" json:"user"`
	TestID    uint   `gorm:"column:test_id;index:idx_history_user_test" json:"testId"`
	TestTitle string `gorm:"column:test_title;type:text" json:"testTitle"`
	Score     int    `gorm:"column:score" json:"score"`
	Date      int64  `gorm:"column:date" json:"date"` // epoch в миллисекундах
}

// TableName определяет имя таблицы для GORM
func (HistoryRecord) TableName() string {
	return "history"
}

// Time возвращает дату попытки как time.Time
func (h *HistoryRecord) Time() time.Time {
	return time.UnixMilli(h.Date)
}

// EpochMillis переводит время в epoch-миллисекунды, формат поля Date
func EpochMillis(t time.Time) int64 {
	return t.UnixMilli()
}
