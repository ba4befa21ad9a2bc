package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownAction — действие вне фиксированного набора.
var ErrUnknownAction = errors.New("unknown action")

// Action — логическая операция, которая 1:1 отображается на путь во внешнем бэкенде.
type Action uint8

const (
	ActionGetProducts Action = iota + 1
	ActionGetBatches
	ActionGetStockLevels
	ActionLogBatch
	ActionUpdateStock
	ActionAddProduct
	ActionViewStock
	ActionViewExpiry
	ActionDashboardStats
	ActionOCRProcess

	actionEnd // граница таблицы, не является действием
)

// descriptor — статическое описание транспорта для действия.
type descriptor struct {
	path     string
	readOnly bool
}

// actionTable — исчерпывающая таблица; индекс = значение Action.
// Нулевой элемент пустой: Action(0) не является действием.
var actionTable = [actionEnd]descriptor{
	ActionGetProducts:    {path: "get-products", readOnly: true},
	ActionGetBatches:     {path: "get-batches", readOnly: true},
	ActionGetStockLevels: {path: "get-stock-levels", readOnly: true},
	ActionLogBatch:       {path: "log-batch"},
	ActionUpdateStock:    {path: "update-stock"},
	ActionAddProduct:     {path: "add-product"},
	ActionViewStock:      {path: "view-stock"},
	ActionViewExpiry:     {path: "view-expiry"},
	ActionDashboardStats: {path: "dashboard-stats", readOnly: true},
	ActionOCRProcess:     {path: "ocr-process"},
}

// Valid — true, если значение входит в набор действий.
func (a Action) Valid() bool {
	return a > 0 && a < actionEnd
}

// String — путь действия во внешнем бэкенде ("log-batch" и т.д.).
func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("action(%d)", uint8(a))
	}
	return actionTable[a].path
}

// Path — сегмент пути во внешнем бэкенде.
func (a Action) Path() string { return a.String() }

// ReadOnly — действие только читает данные (GET без тела).
func (a Action) ReadOnly() bool {
	return a.Valid() && actionTable[a].readOnly
}

// Mutating — действие меняет данные бэкенда и инвалидирует кэши.
func (a Action) Mutating() bool {
	switch a {
	case ActionAddProduct, ActionLogBatch, ActionUpdateStock:
		return true
	default:
		return false
	}
}

// Actions — все действия в порядке объявления.
func Actions() []Action {
	out := make([]Action, 0, int(actionEnd)-1)
	for a := ActionGetProducts; a < actionEnd; a++ {
		out = append(out, a)
	}
	return out
}

// ParseAction — разбор имени действия. Принимает "log-batch", "LOG_BATCH", " Log-Batch ".
func ParseAction(name string) (Action, error) {
	norm := strings.ToLower(strings.TrimSpace(name))
	norm = strings.ReplaceAll(norm, "_", "-")
	for a := ActionGetProducts; a < actionEnd; a++ {
		if actionTable[a].path == norm {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, name)
}

// MarshalText — действие сериализуется своим путём.
func (a Action) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAction, uint8(a))
	}
	return []byte(a.Path()), nil
}

// UnmarshalText — обратное преобразование через ParseAction.
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
