// Package coercion turns free-text model replies into JSON objects.
//
// The extraction is a best-effort heuristic, not a JSON scanner: it tries the
// whole reply, then the span between the first '{' and the last '}', and
// otherwise gives up and wraps the reply as {"raw": reply}. Replies holding
// several objects, or prose braces around the object, defeat the span step
// and land in the fallback. Clients depend on that fallback shape, so the
// heuristic must stay as it is.
package coercion

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

// RawKey is the single key of a fallback mapping.
const RawKey = "raw"

// Kind names the Result variant.
type Kind string

const (
	KindParsed   Kind = "parsed"
	KindFallback Kind = "fallback"
)

// Result is either Parsed or Fallback.
type Result interface {
	// Kind reports the variant.
	Kind() Kind
	// Mapping returns the JSON object sent back to clients.
	Mapping() map[string]any

	sealed()
}

// Parsed holds an object decoded from the reply. Numbers are json.Number so
// they re-encode exactly as the model wrote them.
type Parsed struct {
	Fields map[string]any
}

func (Parsed) Kind() Kind { return KindParsed }

func (p Parsed) Mapping() map[string]any { return p.Fields }

func (p Parsed) MarshalJSON() ([]byte, error) { return json.Marshal(p.Fields) }

func (Parsed) sealed() {}

// Fallback carries a reply that held no decodable object.
type Fallback struct {
	Raw string
}

func (Fallback) Kind() Kind { return KindFallback }

func (f Fallback) Mapping() map[string]any { return map[string]any{RawKey: f.Raw} }

func (f Fallback) MarshalJSON() ([]byte, error) { return json.Marshal(f.Mapping()) }

func (Fallback) sealed() {}

var (
	_ Result = Parsed{}
	_ Result = Fallback{}
)

// Coerce never fails: any input yields a Parsed or a Fallback.
func Coerce(raw string) Result {
	if fields, ok := decodeObject(raw); ok {
		return Parsed{Fields: fields}
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end != -1 && end > start {
		if fields, ok := decodeObject(raw[start : end+1]); ok {
			return Parsed{Fields: fields}
		}
	}

	return Fallback{Raw: raw}
}

// decodeObject accepts exactly one JSON object, optionally surrounded by
// whitespace. Arrays, scalars and trailing data are rejected.
func decodeObject(s string) (map[string]any, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, false
	}

	fields, ok := value.(map[string]any)
	if !ok {
		return nil, false
	}
	return fields, true
}
