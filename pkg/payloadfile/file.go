package payloadfile

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// Stdin — путь, означающий стандартный ввод.
const Stdin = "-"

// ResolveFormat — auto по расширению; stdin и неизвестное расширение:
// stdin читается как JSONL, файл — как JSON.
func ResolveFormat(path string, format InputFormat) InputFormat {
	if format != FormatAuto && format != "" {
		return format
	}
	if path == "" || path == Stdin {
		return FormatJSONL
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		return FormatJSONL
	default:
		return FormatJSON
	}
}

// ProcessFile — читает файл (или stdin при пустом пути / "-") и отдаёт каждую нагрузку обработчику.
func ProcessFile(ctx context.Context, path string, format InputFormat, stdin io.Reader, h Handler) (Summary, error) {
	format = ResolveFormat(path, format)

	var r io.Reader = stdin
	if path != "" && path != Stdin {
		f, err := os.Open(path)
		if err != nil {
			return Summary{}, fmt.Errorf("open file: %w", err)
		}
		defer f.Close()
		r = f
	}

	switch format {
	case FormatJSON:
		raw, err := io.ReadAll(r)
		if err != nil {
			return Summary{}, fmt.Errorf("read input: %w", err)
		}
		payload, err := ParseObject(raw)
		if err != nil {
			return Summary{Invalid: 1}, err
		}
		var sum Summary
		sum.record(h(ctx, payload))
		return sum, nil

	case FormatJSONL:
		return ProcessJSONLStream(ctx, r, h)

	default:
		return Summary{}, fmt.Errorf("unsupported format: %s", format)
	}
}
