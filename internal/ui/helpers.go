package ui

import (
	"fmt"
	"unicode/utf8"
)

// money formats an amount as storefront currency.
func money(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// truncate shortens s to at most width runes, appending an ellipsis when
// something was cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	runes := []rune(s)
	return string(runes[:width-1]) + "…"
}
