package payloadfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNotObject — полезная нагрузка должна быть JSON-объектом.
var ErrNotObject = errors.New("payload is not a JSON object")

// ParseObject — ровно один JSON-объект без хвоста; возвращается компактная копия.
func ParseObject(raw []byte) (json.RawMessage, error) {
	var msg json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&msg); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	// после объекта ничего, кроме пробелов
	if err := dec.Decode(new(json.RawMessage)); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid json: trailing data")
	}
	if len(msg) == 0 || msg[0] != '{' {
		return nil, ErrNotObject
	}

	var out bytes.Buffer
	if err := json.Compact(&out, msg); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return out.Bytes(), nil
}
