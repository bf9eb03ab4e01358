// Package redact masks personal data before it reaches logs. Meal
// descriptions and model replies are free text and may carry contact
// details; Telegram user ids identify a person directly.
package redact

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"unicode/utf8"
)

// Level selects how much of a value survives.
type Level string

const (
	// LevelNone drops the value entirely.
	LevelNone Level = "none"
	// LevelHashed keeps text but replaces contact details and ids with
	// short salted hashes.
	LevelHashed Level = "hashed"
	// LevelFull logs values unchanged.
	LevelFull Level = "full"
)

const maxSnippetRunes = 200

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\s().-]{8,}\d`)
)

// Redactor applies a Level with a fixed salt.
type Redactor struct {
	level Level
	salt  string
}

// New returns a Redactor. Unknown levels behave like LevelHashed.
func New(level Level, salt string) *Redactor {
	switch level {
	case LevelNone, LevelHashed, LevelFull:
	default:
		level = LevelHashed
	}
	return &Redactor{level: level, salt: salt}
}

// Snippet returns a loggable excerpt of free text, truncated to a fixed
// number of runes.
func (r *Redactor) Snippet(text string) string {
	switch r.level {
	case LevelNone:
		return "[REDACTED]"
	case LevelHashed:
		text = emailPattern.ReplaceAllStringFunc(text, func(m string) string { return "[EMAIL:" + r.hash(m) + "]" })
		text = phonePattern.ReplaceAllStringFunc(text, func(m string) string { return "[PHONE:" + r.hash(m) + "]" })
	}
	return truncate(text, maxSnippetRunes)
}

// ID masks an identifier. Empty stays empty.
func (r *Redactor) ID(id string) string {
	if id == "" {
		return ""
	}
	switch r.level {
	case LevelNone:
		return "[REDACTED]"
	case LevelFull:
		return id
	default:
		return r.hash(id)
	}
}

func (r *Redactor) hash(v string) string {
	sum := sha256.Sum256([]byte(v + r.salt))
	return hex.EncodeToString(sum[:])[:8]
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + "…"
}
