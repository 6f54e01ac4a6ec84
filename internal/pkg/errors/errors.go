package errors

import "errors"

// Общие ошибки приложения
var (
	// ErrNotFound используется, когда запись не найдена (удаление записи истории по несуществующему id).
	ErrNotFound = errors.New("record not found")

	// ErrValidation используется, когда тело запроса не соответствует ожидаемой структуре.
	ErrValidation = errors.New("validation failed")

	// ErrStore оборачивает сбои хранилища, на границе HTTP превращается в 500.
	ErrStore = errors.New("store error")
)
