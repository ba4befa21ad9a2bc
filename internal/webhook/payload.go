package webhook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"

	"github.com/Gunvolt24/vetstock/internal/domain"
)

const contentTypeJSON = "application/json"

var errInvalidRawJSON = errors.New("invalid raw json")

// quoteEscaper — экранирование quoted-string в Content-Disposition, как в mime/multipart.
var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// JSON — тело application/json. json.RawMessage уходит как есть.
func JSON(v any) domain.Payload {
	return jsonPayload{v: v}
}

type jsonPayload struct{ v any }

func (p jsonPayload) Encode() ([]byte, string, error) {
	if raw, ok := p.v.(json.RawMessage); ok {
		if !json.Valid(raw) {
			return nil, "", errInvalidRawJSON
		}
		return raw, contentTypeJSON, nil
	}
	b, err := json.Marshal(p.v)
	if err != nil {
		return nil, "", fmt.Errorf("marshal json: %w", err)
	}
	return b, contentTypeJSON, nil
}

// File — файловая часть multipart-формы.
type File struct {
	Field       string
	FileName    string
	ContentType string
	Data        []byte
}

// Multipart — тело multipart/form-data.
// Поля пишутся в порядке ключей, чтобы повторное кодирование давало те же байты.
type Multipart struct {
	Fields map[string]string
	Files  []File
}

func (m Multipart) Encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(m.Fields))
	for k := range m.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := w.WriteField(k, m.Fields[k]); err != nil {
			return nil, "", fmt.Errorf("write field %q: %w", k, err)
		}
	}

	for _, f := range m.Files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
			quoteEscaper.Replace(f.Field), quoteEscaper.Replace(f.FileName)))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)

		part, err := w.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create part %q: %w", f.Field, err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", fmt.Errorf("write part %q: %w", f.Field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
