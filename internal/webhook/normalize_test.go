package webhook

import (
	"encoding/json"
	"errors"
	"testing"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestDecodeList_Shapes(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want int
	}{
		{"bare array", `[{"id":"p1","name":"X"},{"id":"p2","name":"Y"}]`, 2},
		{"single element bare array", `[{"id":"p1","name":"X"}]`, 1},
		{"object with key", `{"products":[{"id":"p1"}]}`, 1},
		{"array wrapping object", `[{"products":[{"id":"p1"},{"id":"p2"},{"id":"p3"}]}]`, 3},
		{"object without key", `{"other":1}`, 0},
		{"key is null", `{"products":null}`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeList[item](json.RawMessage(tc.in), "products")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tc.want {
				t.Fatalf("len=%d, want %d (%+v)", len(got), tc.want, got)
			}
		})
	}
}

func TestDecodeList_SingleProductNotUnwrapped(t *testing.T) {
	got, err := DecodeList[item](json.RawMessage(`[{"id":"p1","name":"X"}]`), "products")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0] != (item{ID: "p1", Name: "X"}) {
		t.Fatalf("got %+v", got)
	}
}

func TestDecodeList_Errors(t *testing.T) {
	if _, err := DecodeList[item](nil, "products"); !errors.Is(err, ErrEmptyData) {
		t.Fatalf("nil data: err=%v", err)
	}
	if _, err := DecodeList[item](json.RawMessage(`null`), "products"); !errors.Is(err, ErrEmptyData) {
		t.Fatalf("null data: err=%v", err)
	}
	if _, err := DecodeList[item](json.RawMessage(`"text"`), "products"); !errors.Is(err, ErrUnexpectedShape) {
		t.Fatalf("string data: err=%v", err)
	}
	if _, err := DecodeList[item](json.RawMessage(`{"products":"nope"}`), "products"); !errors.Is(err, ErrUnexpectedShape) {
		t.Fatalf("bad inner: err=%v", err)
	}
}

func TestUnwrapObject(t *testing.T) {
	cases := map[string]string{
		`[{"totalProducts":3}]`:  `{"totalProducts":3}`,
		`{"totalProducts":3}`:    `{"totalProducts":3}`,
		`[{"a":1},{"a":2}]`:      `[{"a":1},{"a":2}]`,
		`[]`:                     `[]`,
		``:                       ``,
	}
	for in, want := range cases {
		if got := string(UnwrapObject(json.RawMessage(in))); got != want {
			t.Fatalf("UnwrapObject(%s)=%s, want %s", in, got, want)
		}
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize([]byte("  \n")); got != nil {
		t.Fatalf("blank body must give nil, got %s", got)
	}
	if got := string(Normalize([]byte(` {"a":1} `))); got != `{"a":1}` {
		t.Fatalf("got %s", got)
	}
	var wrapped map[string]string
	if err := json.Unmarshal(Normalize([]byte(`<html>oops</html>`)), &wrapped); err != nil {
		t.Fatalf("wrapped body is not json: %v", err)
	}
	if wrapped["raw"] != "<html>oops</html>" {
		t.Fatalf("raw=%q", wrapped["raw"])
	}
}
