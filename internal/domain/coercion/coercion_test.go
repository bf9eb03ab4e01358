package coercion

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoerce_StrictObject(t *testing.T) {
	raw := `{"items":[{"name":"rice","amount_g":100,"kcal":130.5}],"total":{"kcal":130.5}}`

	result := Coerce(raw)

	require.Equal(t, KindParsed, result.Kind())
	parsed, ok := result.(Parsed)
	require.True(t, ok)

	items := parsed.Fields["items"].([]any)
	require.Len(t, items, 1)
	first := items[0].(map[string]any)
	assert.Equal(t, "rice", first["name"])
	assert.Equal(t, json.Number("100"), first["amount_g"])
	assert.Equal(t, json.Number("130.5"), first["kcal"])
}

func TestCoerce_StrictObjectRoundTripsExactly(t *testing.T) {
	raw := `{"a":1,"b":[true,null,"x"],"c":{"d":12345678901234567890}}`

	out, err := json.Marshal(Coerce(raw))
	require.NoError(t, err)

	assert.JSONEq(t, raw, string(out))
	assert.Contains(t, string(out), "12345678901234567890")
}

func TestCoerce_ObjectEmbeddedInProse(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]any
	}{
		{
			name: "prose around object",
			raw:  `Here is the result: {"a":1} Thanks!`,
			want: map[string]any{"a": json.Number("1")},
		},
		{
			name: "markdown fence",
			raw:  "```json\n{\"total\":{\"kcal\":250}}\n```",
			want: map[string]any{"total": map[string]any{"kcal": json.Number("250")}},
		},
		{
			name: "nested braces inside the span",
			raw:  `answer {"outer":{"inner":{}}} done`,
			want: map[string]any{"outer": map[string]any{"inner": map[string]any{}}},
		},
		{
			name: "surrounding whitespace only",
			raw:  "  \n{\"ok\":true}\n ",
			want: map[string]any{"ok": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Coerce(tt.raw)
			require.Equal(t, KindParsed, result.Kind())
			assert.Equal(t, tt.want, result.Mapping())
		})
	}
}

func TestCoerce_Fallback(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty string", ""},
		{"plain prose", "I could not identify any food."},
		{"closing before opening", "} nothing here {"},
		{"only opening brace", "{ unterminated"},
		{"only closing brace", "unterminated }"},
		{"unquoted keys", "{a}{b}"},
		{"two independent objects", `{"a":1} and {"b":2}`},
		{"brace in prose closes early", `use {x} like {"a":1`},
		{"invalid json between braces", `{"a": 1,}`},
		{"json array", "[1, 2, 3]"},
		{"json scalar", "42"},
		{"json null", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Coerce(tt.raw)

			require.Equal(t, KindFallback, result.Kind())
			fallback, ok := result.(Fallback)
			require.True(t, ok)
			assert.Equal(t, tt.raw, fallback.Raw)
			assert.Equal(t, map[string]any{"raw": tt.raw}, result.Mapping())
		})
	}
}

func TestCoerce_ArrayWrappingObjectUsesSpan(t *testing.T) {
	// A top-level array is not an object, so the span between the outer
	// braces is tried instead.
	result := Coerce(`[{"a":1}]`)

	require.Equal(t, KindParsed, result.Kind())
	assert.Equal(t, map[string]any{"a": json.Number("1")}, result.Mapping())
}

func TestCoerce_FallbackMarshalsToRawObject(t *testing.T) {
	out, err := json.Marshal(Coerce("{a}{b}"))
	require.NoError(t, err)

	assert.JSONEq(t, `{"raw":"{a}{b}"}`, string(out))
}

func TestCoerce_NeverPanics(t *testing.T) {
	inputs := []string{
		"{", "}", "{}", "}{", "{{}}", "{\"a\":\"\\u00\"}", "\x00\xff{\"a\":1}\xfe",
		"{\"a\":" + string(make([]byte, 1024)) + "}",
	}
	for _, raw := range inputs {
		assert.NotPanics(t, func() {
			result := Coerce(raw)
			assert.NotNil(t, result.Mapping())
		})
	}
}
