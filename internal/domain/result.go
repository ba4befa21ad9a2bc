package domain

import "encoding/json"

// ErrorKind — класс отказа, по которому вызывающий код может различать причины.
type ErrorKind uint8

const (
	KindNone ErrorKind = iota
	KindUnknownAction
	KindEncode
	KindTimeout
	KindNetwork
	KindUpstreamStatus
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindUnknownAction:
		return "unknown_action"
	case KindEncode:
		return "encode"
	case KindTimeout:
		return "timeout"
	case KindNetwork:
		return "network"
	case KindUpstreamStatus:
		return "upstream_status"
	default:
		return "unknown"
	}
}

// Result — единый результат отправки, который получают все формы и хуки.
// Успех несёт произвольный JSON от бэкенда, отказ — читаемую строку ошибки.
type Result struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`

	Kind ErrorKind `json:"-"`
}

// Succeeded — успешный результат с данными (data может быть nil).
func Succeeded(data json.RawMessage) Result {
	return Result{Success: true, Data: data}
}

// Failed — отказ с текстом ошибки и её классом.
func Failed(kind ErrorKind, msg string) Result {
	return Result{Success: false, Error: msg, Kind: kind}
}
