package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Ошибки конфигурации
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// Ошибки хранилищ
	ErrNotFound  = fmt.Errorf("not found")
	ErrNameTaken = fmt.Errorf("name already taken")

	// 400 Bad Request
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrExpectedForm         = fmt.Errorf("expected multipart/form-data or application/x-www-form-urlencoded body")
	ErrInvalidID            = fmt.Errorf("invalid id")
	ErrNoItems              = fmt.Errorf("no item ids provided")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")

	// 413 Request Entity Too Large
	ErrFileTooLarge = fmt.Errorf("file too large")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
