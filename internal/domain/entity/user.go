package entity

// DefaultUsername - пользователь, существующий всегда после первого старта
const DefaultUsername = "Guest"

// User представляет пользователя. Имя является первичным ключом, других атрибутов нет.
type User struct {
	Username string `gorm:"primaryKey;type:text" json:"username"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}
