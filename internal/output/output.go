// Package output renders tasks, summaries and errors for the CLI in one of
// three formats: a styled table, compact one-liners, or JSON.
package output

import (
	"os"
	"strings"
)

// Format selects a renderer.
type Format int

// Table is the zero value and the fallback.
const (
	FormatTable Format = iota
	FormatCompact
	FormatJSON
)

// EnvOutput names the environment variable that selects the default format.
const EnvOutput = "DEEPSEA_OUTPUT"

var formatNames = map[string]Format{
	"table":   FormatTable,
	"compact": FormatCompact,
	"oneline": FormatCompact,
	"json":    FormatJSON,
}

// ParseFormat maps a format name (as accepted in DEEPSEA_OUTPUT) to a Format.
func ParseFormat(name string) (Format, bool) {
	f, ok := formatNames[strings.ToLower(strings.TrimSpace(name))]
	return f, ok
}

// Detect picks the format from the flags, then DEEPSEA_OUTPUT, then table.
// With several flags set, json beats compact beats table.
func Detect(jsonFlag, tableFlag, compactFlag bool) Format {
	switch {
	case jsonFlag:
		return FormatJSON
	case compactFlag:
		return FormatCompact
	case tableFlag:
		return FormatTable
	}
	if f, ok := ParseFormat(os.Getenv(EnvOutput)); ok {
		return f
	}
	return FormatTable
}
