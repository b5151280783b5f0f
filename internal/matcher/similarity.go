package matcher

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	countryTagRe = regexp.MustCompile(`(?i)\b(US|UK|AU|CA)\b`)
	yearRe       = regexp.MustCompile(`\b\d{4}\b`)
	parenRe      = regexp.MustCompile(`\([^)]*\)`)
	bracketRe    = regexp.MustCompile(`\[[^\]]*\]`)
	braceRe      = regexp.MustCompile(`\{[^}]*\}`)
)

// stopWords are ignored when comparing title word sets.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "up": true, "about": true,
	"into": true, "through": true, "during": true, "before": true,
	"after": true, "above": true, "below": true, "between": true,
	"among": true, "under": true, "over": true, "beneath": true,
	"beside": true, "beyond": true, "across": true, "within": true,
}

// BuildQuery turns a scanned title into a catalog search query: tag noise,
// embedded years, and country markers are stripped, then the scanned year
// is appended when known.
func BuildQuery(title string, year int) string {
	s := countryTagRe.ReplaceAllString(title, "")
	s = yearRe.ReplaceAllString(s, "")
	s = parenRe.ReplaceAllString(s, "")
	s = bracketRe.ReplaceAllString(s, "")
	s = braceRe.ReplaceAllString(s, "")
	s = strings.Join(strings.Fields(s), " ")
	if year != 0 {
		return fmt.Sprintf("%s %d", s, year)
	}
	return s
}

// TitleSimilarity scores how alike two titles are in [0,1]. Normalized
// exact matches score 1.0; otherwise an edit-distance ratio is blended
// 70/30 with a stop-word-filtered Jaccard similarity over word sets.
func TitleSimilarity(a, b string) float64 {
	na, nb := normalizeTitle(a), normalizeTitle(b)
	if na == nb {
		return 1.0
	}

	ratio, err := edlib.StringsSimilarity(na, nb, edlib.Levenshtein)
	if err != nil {
		return 0
	}
	similarity := float64(ratio)

	wordsA := contentWords(na)
	wordsB := contentWords(nb)
	if len(wordsA) > 0 && len(wordsB) > 0 {
		similarity = similarity*0.7 + jaccard(wordsA, wordsB)*0.3
	}
	return similarity
}

// normalizeTitle lowercases, removes accents, and collapses everything
// that is not a letter or digit into single spaces.
func normalizeTitle(s string) string {
	s = removeAccents(strings.ToLower(s))
	var b strings.Builder
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}

func contentWords(title string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(title) {
		if !stopWords[w] {
			words[w] = true
		}
	}
	return words
}

func jaccard(a, b map[string]bool) float64 {
	intersection := 0
	for w := range a {
		if b[w] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
