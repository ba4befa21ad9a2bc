package payloadfile

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// maxLineBytes — предел одной строки JSONL.
const maxLineBytes = 10 * 1024 * 1024

// Handler — отправка одной полезной нагрузки. Ошибка учитывается как неуспех и не прерывает поток.
type Handler func(ctx context.Context, payload json.RawMessage) error

// Summary — итог обработки входа.
type Summary struct {
	Sent    int // обработчик вернул nil
	Failed  int // обработчик вернул ошибку
	Invalid int // строка не разобрана как JSON-объект
}

func (s Summary) String() string {
	return fmt.Sprintf("%d sent / %d failed / %d invalid", s.Sent, s.Failed, s.Invalid)
}

// OK — ни одной ошибки.
func (s Summary) OK() bool { return s.Failed == 0 && s.Invalid == 0 }

func (s *Summary) record(err error) {
	if err != nil {
		s.Failed++
		return
	}
	s.Sent++
}

// ProcessJSONLStream — по одному объекту на строку; пустые строки пропускаются,
// неразобранные считаются в Invalid. Останавливается по отмене ctx.
func ProcessJSONLStream(ctx context.Context, r io.Reader, h Handler) (Summary, error) {
	var sum Summary

	scanner := bufio.NewScanner(r)
	// запас на большие строки
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, maxLineBytes)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}

		payload, err := ParseObject(line)
		if err != nil {
			sum.Invalid++
			continue
		}
		sum.record(h(ctx, payload))
	}
	if err := scanner.Err(); err != nil {
		return sum, fmt.Errorf("scan: %w", err)
	}
	return sum, nil
}
