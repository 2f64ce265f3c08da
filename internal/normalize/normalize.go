// Package normalize builds the comparison keys used to match query input
// against spreadsheet cells.
package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/designs-lookup/internal/models"
	"golang.org/x/text/unicode/norm"
)

var dashes = strings.NewReplacer(
	"\u00a0", " ",
	"\u2010", "-", // hyphen
	"\u2011", "-", // non-breaking hyphen
	"\u2012", "-", // figure dash
	"\u2013", "-", // en dash
	"\u2014", "-", // em dash
	"\u2015", "-", // horizontal bar
	"\u2212", "-", // minus sign
)

var (
	numberRange = regexp.MustCompile(`(\d)\s*to\s*(\d)`)
	yearSuffix  = regexp.MustCompile(`(years?|yrs?|y)\.?$`)
)

// Text lowercases s, folds compatibility characters, maps dash variants to
// '-' and collapses whitespace.
func Text(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFKC.String(s)
	s = strings.ToLower(s)
	s = dashes.Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

func compact(s string) string {
	s = numberRange.ReplaceAllString(Text(s), "$1-$2")
	return strings.Join(strings.Fields(s), "")
}

// Age maps a free-form age expression ("2 – 4 Years", "4 to 6") to a known band.
func Age(s string) (models.AgeBand, bool) {
	c := compact(s)
	if c == "" {
		return "", false
	}
	for _, band := range models.AgeBands {
		if strings.Contains(c, string(band)) {
			return band, true
		}
	}
	return "", false
}

// AgeKey is the whitespace-free form of a sheet age cell with any trailing
// year unit removed, so "2-4 Years" and "2–4yrs" both yield "2-4".
func AgeKey(s string) string {
	return yearSuffix.ReplaceAllString(compact(s), "")
}

// AgeContains reports whether the compacted cell contains band anywhere.
func AgeContains(s string, band models.AgeBand) bool {
	return band != "" && strings.Contains(compact(s), string(band))
}

// Quantity keeps only the digits of s. Values with no digits, or too large
// for an int, count as zero.
func Quantity(s string) int {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}
