package registry

import (
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Placeholders shown instead of a date.
const (
	DateMissing = "Data não informada"
	DateInvalid = "Data inválida"
)

// dateLayouts are the shapes the upstream API has been seen to emit.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate parses an upstream date string.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders an upstream date as dd/mm/yyyy.
func FormatDate(s string) string {
	if strings.TrimSpace(s) == "" {
		return DateMissing
	}
	t, ok := ParseDate(s)
	if !ok {
		return DateInvalid
	}
	return t.Format("02/01/2006")
}

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// FormatCount renders n with Brazilian digit grouping ("12.345").
func FormatCount(n int64) string {
	return ptBR.Sprintf("%d", n)
}
