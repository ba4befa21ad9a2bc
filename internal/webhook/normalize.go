package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Normalize — приводит успешное тело ответа к JSON.
// Пустое тело → nil, невалидный JSON оборачивается в {"raw": "<text>"}.
func Normalize(body []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil
	}
	if json.Valid(trimmed) {
		out := make(json.RawMessage, len(trimmed))
		copy(out, trimmed)
		return out
	}
	wrapped, err := json.Marshal(map[string]string{"raw": string(body)})
	if err != nil {
		return nil
	}
	return wrapped
}

// UnwrapObject — бэкенд отдаёт объект то голым, то массивом из одного элемента.
// Возвращает сам объект в обоих случаях; прочие формы не трогает.
func UnwrapObject(data json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return data
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil || len(items) != 1 {
		return data
	}
	return items[0]
}

// DecodeList — читает список из любой формы ответа:
// голый массив, {key: [...]} или [{key: [...]}].
// Объект без ключа означает пустой список.
func DecodeList[T any](data json.RawMessage, key string) ([]T, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrEmptyData
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
		}
		if len(items) == 1 {
			if inner, ok, err := listUnderKey[T](items[0], key); ok || err != nil {
				return inner, err
			}
		}
		out := make([]T, 0, len(items))
		if err := json.Unmarshal(trimmed, &out); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnexpectedShape, err)
		}
		return out, nil

	case '{':
		inner, ok, err := listUnderKey[T](trimmed, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			return []T{}, nil
		}
		return inner, nil

	default:
		return nil, fmt.Errorf("%w: %.32s", ErrUnexpectedShape, trimmed)
	}
}

// listUnderKey — ok=false, если obj не объект или в нём нет ключа.
func listUnderKey[T any](obj json.RawMessage, key string) ([]T, bool, error) {
	trimmed := bytes.TrimSpace(obj)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false, nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return nil, false, nil
	}
	raw, ok := m[key]
	if !ok {
		return nil, false, nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return []T{}, true, nil
	}
	out := []T{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, true, fmt.Errorf("%w: %s: %v", ErrUnexpectedShape, key, err)
	}
	return out, true, nil
}
