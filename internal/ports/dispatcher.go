package ports

import (
	"context"

	"github.com/Gunvolt24/vetstock/internal/domain"
)

// Dispatcher — отправка логического действия во внешний бэкенд.
// Никогда не возвращает ошибку: любой отказ упакован в domain.Result.
type Dispatcher interface {
	Submit(ctx context.Context, action domain.Action, payload domain.Payload) domain.Result
}
