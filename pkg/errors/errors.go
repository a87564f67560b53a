package errors

import "fmt"

var (
	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")

	// Водители и доступ
	ErrUnknownDriver        = fmt.Errorf("неизвестный водитель")
	ErrInvalidAdminPassword = fmt.Errorf("неверный пароль администратора")

	// Сканирование
	ErrInvalidBarcode = fmt.Errorf("в штрих-коде не найдено ни одной цифры")

	// Статусы и выплаты
	ErrInvalidStatus = fmt.Errorf("недопустимый статус доставки")
	ErrPayoutPaid    = fmt.Errorf("выплата уже закрыта")
)

// Кастомные типы ошибок
type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}
