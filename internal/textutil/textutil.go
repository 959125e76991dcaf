// Package textutil normalizes the free-form text ffprobe reports: stream
// language tags become display names and codec descriptions get consistent
// casing for table output.
package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var titleCaser = cases.Title(language.English)

// LanguageName converts an ISO 639 tag as found in stream metadata ("eng",
// "fr", "jpn") into an English display name. Unrecognized, empty, or
// undetermined tags return "Unknown".
func LanguageName(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" || tag == "und" {
		return "Unknown"
	}
	parsed, err := language.Parse(tag)
	if err != nil {
		return "Unknown"
	}
	name := display.English.Languages().Name(parsed)
	if name == "" {
		return "Unknown"
	}
	return name
}

// TitleCase renders a codec or format description in title case, e.g.
// "h.264 / avc" reads as "H.264 / Avc" in tables.
func TitleCase(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return titleCaser.String(value)
}
