package dateformat

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// EntryLayout is the template used for entry timestamps and section bounds.
const EntryLayout = "dd/mm/yyyy H:i:s"

type token struct {
	name  string
	value func(t time.Time) string
}

// Substitution order is fixed. Replacements only ever insert digits, so an
// earlier token cannot create a match for a later one.
var tokens = []token{
	{"dd", func(t time.Time) string { return fmt.Sprintf("%02d", t.Day()) }},
	{"mm", func(t time.Time) string { return fmt.Sprintf("%02d", int(t.Month())) }},
	{"yyyy", func(t time.Time) string { return strconv.Itoa(t.Year()) }},
	{"H", func(t time.Time) string { return strconv.Itoa(t.Hour()) }},
	{"i", func(t time.Time) string { return strconv.Itoa(t.Minute()) }},
	{"s", func(t time.Time) string { return strconv.Itoa(t.Second()) }},
}

// Format substitutes the first occurrence of each token in template with the
// matching component of t.
func Format(t time.Time, template string) string {
	out := template
	for _, tok := range tokens {
		out = strings.Replace(out, tok.name, tok.value(t), 1)
	}
	return out
}

// Entry formats t with EntryLayout.
func Entry(t time.Time) string {
	return Format(t, EntryLayout)
}
