package entity

// Test представляет тест: набор вопросов, метка сложности и необязательный пререквизит.
// Пререквизит - ссылка на другой тест, целостность не проверяется при записи.
type Test struct {
	ID         uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	Title      string       `gorm:"type:text" json:"title"`
	Difficulty string       `gorm:"type:text" json:"difficulty"`
	Questions  QuestionList `gorm:"type:text" json:"questions"`
	Prereq     *uint        `gorm:"column:prereq" json:"prereq"`
}

// TableName определяет имя таблицы для GORM
func (Test) TableName() string {
	return "tests"
}

// QuestionCount возвращает количество вопросов в тесте
func (t *Test) QuestionCount() int {
	return len(t.Questions)
}

// HasPrereq сообщает, назначен ли тесту пререквизит
func (t *Test) HasPrereq() bool {
	return t.Prereq != nil && *t.Prereq != 0
}

// NormalizePrereq приводит "ложный" пререквизит (nil или 0) к отсутствию пререквизита
func NormalizePrereq(prereq *uint) *uint {
	if prereq == nil || *prereq == 0 {
		return nil
	}
	v := *prereq
	return &v
}
