// Package ident derives the canonical filing key of a release,
// formatted R{YY}.{NNN}-{MM}{DD}.
package ident

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jorge-barreto/relnotes/internal/release"
)

var months = map[string]string{
	"january":   "01",
	"february":  "02",
	"march":     "03",
	"april":     "04",
	"may":       "05",
	"june":      "06",
	"july":      "07",
	"august":    "08",
	"september": "09",
	"october":   "10",
	"november":  "11",
	"december":  "12",
}

var (
	datePhraseRe = regexp.MustCompile(`(?i)(\d+)\s*of\s*(\w+)\s*(\d+)`)
	nonDigitRe   = regexp.MustCompile(`[^0-9]`)

	docDateRe    = regexp.MustCompile(`(?i)\*\*Date:\*\*\s*(\d+)\s*of\s*(\w+)\s*(\d+)`)
	docReleaseRe = regexp.MustCompile(`(?i)\*\*Release:\*\*\s*([^|\n]+)`)
)

// Canonicalize parses dateText ("05 of February 2026") and releaseText ("049")
// into an identifier. ok is false when dateText does not match; callers pick
// their own fallback.
func Canonicalize(dateText, releaseText string) (id string, ok bool) {
	m := datePhraseRe.FindStringSubmatch(dateText)
	if m == nil {
		return "", false
	}
	return format(m[1], m[2], m[3], releaseText), true
}

// ForRecord returns the identifier of rec, or "Release-<release>" when its
// date cannot be parsed.
func ForRecord(rec release.Record) string {
	if id, ok := Canonicalize(rec.Date, rec.Release); ok {
		return id
	}
	return "Release-" + rec.Release
}

// ForDocument reads the identifier back out of a rendered document's header
// line. It falls back to the file name without its .md extension.
func ForDocument(markdown, filename string) string {
	m := docDateRe.FindStringSubmatch(markdown)
	if m == nil {
		return strings.TrimSuffix(filepath.Base(filename), ".md")
	}
	var label string
	if rm := docReleaseRe.FindStringSubmatch(markdown); rm != nil {
		label = strings.TrimSpace(rm[1])
	}
	return format(m[1], m[2], m[3], label)
}

func format(day, monthName, year, releaseText string) string {
	month, ok := months[strings.ToLower(monthName)]
	if !ok {
		month = "01"
	}
	if len(year) > 2 {
		year = year[len(year)-2:]
	}
	return fmt.Sprintf("R%s.%s-%s%s", year, releaseNumber(releaseText), month, padLeft(day, 2))
}

// releaseNumber strips everything but digits, then pads to three. An empty
// result is "000".
func releaseNumber(label string) string {
	digits := nonDigitRe.ReplaceAllString(label, "")
	if digits == "" {
		return "000"
	}
	return padLeft(digits, 3)
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
