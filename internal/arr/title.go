package arr

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MinTitleScore is the Jaro-Winkler similarity a Sonarr title must reach to
// stand in for a catalog title when no TVDB ID is known.
const MinTitleScore = 0.95

// romanNumeralRegex matches II-IX after a space. Standalone "I" and "X" are
// left alone ("I Robot", "SPY x FAMILY").
var romanNumeralRegex = regexp.MustCompile(`(?i) (ii|iii|iv|v|vi|vii|viii|ix)\b`)

var romanToArabic = map[string]string{
	"II": "2", "III": "3", "IV": "4", "V": "5",
	"VI": "6", "VII": "7", "VIII": "8", "IX": "9",
}

// yearSuffixRegex strips the "(2005)" disambiguation suffix Sonarr adds.
var yearSuffixRegex = regexp.MustCompile(`\s*\((19|20)\d{2}\)\s*$`)

// CleanTitle normalizes a title for comparison: lower case, no accents,
// no leading articles, no punctuation, Arabic numerals.
func CleanTitle(title string) string {
	s := yearSuffixRegex.ReplaceAllString(title, "")
	s = strings.ToLower(s)

	s = romanNumeralRegex.ReplaceAllStringFunc(s, func(match string) string {
		if arabic, ok := romanToArabic[strings.ToUpper(strings.TrimSpace(match))]; ok {
			return " " + arabic
		}
		return match
	})

	s = removeAccents(s)

	s = strings.ReplaceAll(s, "&", " and ")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, ".", " ")

	parts := strings.Split(s, ":")
	for i, part := range parts {
		parts[i] = stripLeadingArticle(strings.TrimSpace(part))
	}
	s = strings.Join(parts, " ")

	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

func stripLeadingArticle(s string) string {
	for _, art := range []string{"the ", "a ", "an "} {
		if strings.HasPrefix(s, art) {
			return strings.TrimPrefix(s, art)
		}
	}
	return s
}

// TitleScore is the Jaro-Winkler similarity of two cleaned titles.
func TitleScore(a, b string) float64 {
	ca, cb := CleanTitle(a), CleanTitle(b)
	if ca == "" || cb == "" {
		return 0
	}
	if ca == cb {
		return 1
	}
	return float64(edlib.JaroWinklerSimilarity(ca, cb))
}

// SameTitle reports whether a manager title and year identify the catalog
// title and year. Years may differ by one (regional premiere dates); a
// missing year on either side is not a mismatch.
func SameTitle(title string, year int, candTitle string, candYear int) bool {
	if year > 0 && candYear > 0 {
		d := year - candYear
		if d < -1 || d > 1 {
			return false
		}
	}
	return TitleScore(title, candTitle) >= MinTitleScore
}
