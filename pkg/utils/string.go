package utils

import "strings"

// StringHelper provides string utility functions.
type StringHelper struct{}

// NewStringHelper creates a new string helper.
func NewStringHelper() *StringHelper {
	return &StringHelper{}
}

// NormalizeWhitespace replaces multiple whitespace with single space.
func (s *StringHelper) NormalizeWhitespace(str string) string {
	return strings.Join(strings.Fields(str), " ")
}

// EscapeTableCell flattens str onto one line and escapes pipes so it
// can sit inside a markdown table cell.
func (s *StringHelper) EscapeTableCell(str string) string {
	return strings.ReplaceAll(s.NormalizeWhitespace(str), "|", `\|`)
}
