// Package ui holds the color themes shared by every primecalc front end.
//
// The CLI uses the ANSI helpers (ColorRed, ColorGreen, ...) for the comparison
// table, status lines and the "Primes found" summary, while the prime list
// itself is always written uncolored so it can be piped. The dashboard
// started with --tui reads the same active theme through GetCurrentTUITheme
// to style its strategy rows and sparklines.
//
// The theme is chosen once at startup by InitTheme from --no-color, NO_COLOR
// and PRIMECALC_THEME.
package ui
