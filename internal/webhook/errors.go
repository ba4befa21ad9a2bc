package webhook

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout — попытка не уложилась в таймаут диспетчера.
	ErrTimeout = errors.New("timeout")
	// ErrNetwork — запрос не дошёл до бэкенда или ответ не был прочитан.
	ErrNetwork = errors.New("network error")
	// ErrEmptyData — успешный ответ без тела там, где нужны данные.
	ErrEmptyData = errors.New("empty response data")
	// ErrUnexpectedShape — JSON не похож ни на массив, ни на объект с нужным ключом.
	ErrUnexpectedShape = errors.New("unexpected response shape")
)

// StatusError — бэкенд ответил не-2xx.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("status %d", e.Status)
	}
	return fmt.Sprintf("status %d: %s", e.Status, e.Body)
}
