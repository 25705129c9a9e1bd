// Package logging provides the structured logger used by primecalc. Entries
// carry typed fields (strategy, bound, counts, durations, errors) and are
// rendered by zerolog, on stderr in console form for the CLI.
package logging
