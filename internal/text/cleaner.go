// Package text implements the rule-based normalization applied to every
// free-text field before it becomes a node key or attribute. Cleaning is
// deterministic string surgery, not NLP: marker stripping, whitespace
// collapsing, stop-word detection and accent-insensitive key derivation.
package text

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	emptyParens    = regexp.MustCompile(`\(\s*\)`)
	multiSpace     = regexp.MustCompile(`\s{2,}`)
	anyWhitespace  = regexp.MustCompile(`\s+`)
	percentSpan    = regexp.MustCompile(`%[^%]*%`)
	percentCode    = regexp.MustCompile(`%[\d\-\.\s:/c]{2,}`)
	gluedKeyword   = regexp.MustCompile(`([a-zA-ZÀ-ÿ])(Nation|Faculté|Université|Collège|Studium)`)
	leftoverMarker = regexp.MustCompile(`[%$£*]`)
)

// Cleaner normalizes raw field text against a fixed stop-word set. All
// methods are pure functions of their input.
type Cleaner struct {
	stopWords map[string]struct{}
}

// NewCleaner builds a cleaner with the given stop words (matched
// case-insensitively)
func NewCleaner(stopWords []string) *Cleaner {
	set := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		set[strings.ToUpper(w)] = struct{}{}
	}
	return &Cleaner{stopWords: set}
}

func (c *Cleaner) isStopWord(s string) bool {
	_, ok := c.stopWords[strings.ToUpper(s)]
	return ok
}

// Clean strips currency/emphasis and uncertainty markers, collapses repeated
// whitespace and trims trailing punctuation. The second return is false when
// the result is empty or a stop word.
func (c *Cleaner) Clean(text string) (string, bool) {
	t := strings.TrimSpace(text)
	t = strings.NewReplacer("$", "", "£", "", "*", "", "?", "").Replace(t)
	t = emptyParens.ReplaceAllString(t, "")
	t = multiSpace.ReplaceAllString(t, " ")
	t = strings.TrimRight(t, ";")
	t = strings.TrimRight(t, ",")
	t = strings.TrimRight(t, ".")
	t = strings.TrimSpace(t)
	if t == "" || c.isStopWord(t) {
		return "", false
	}
	return t, true
}

// CleanInstitution cleans an institution-like name: percent-delimited
// annotation spans and short numeric codes are removed, and institutional
// keywords glued to the preceding word get a separating space.
func (c *Cleaner) CleanInstitution(name string) (string, bool) {
	if name == "" {
		return "", false
	}
	n := strings.TrimSpace(name)
	n = strings.NewReplacer("$", "", "£", "", "*", "", "?", "").Replace(n)
	n = percentSpan.ReplaceAllString(n, "")
	n = percentCode.ReplaceAllString(n, "")
	n = gluedKeyword.ReplaceAllString(n, "$1 $2")
	n = leftoverMarker.ReplaceAllString(n, "")
	n = emptyParens.ReplaceAllString(n, "")
	for n != "" && strings.ContainsRune(").,:;", rune(n[len(n)-1])) {
		n = strings.TrimSpace(n[:len(n)-1])
	}
	n = anyWhitespace.ReplaceAllString(n, " ")
	n = strings.TrimSpace(strings.ReplaceAll(n, "=", " "))
	if n == "" || c.isStopWord(n) {
		return "", false
	}
	return n, true
}

// CleanPersonName truncates at the first comma (keeping the part before) and
// strips markers and trailing punctuation
func (c *Cleaner) CleanPersonName(raw string) (string, bool) {
	name := strings.TrimSpace(strings.NewReplacer("$", "", "£", "", "=", " ").Replace(raw))
	if i := strings.Index(name, ","); i >= 0 {
		name = strings.TrimSpace(name[:i])
	}
	name = strings.TrimRight(strings.TrimSpace(name), ".")
	name = strings.TrimRight(name, ";")
	name = strings.TrimSpace(name)
	if name == "" || c.isStopWord(name) {
		return "", false
	}
	return name, true
}

// StripUncertainty detects an uncertainty marker anywhere in the text. When
// present the marker is removed, leftover artifacts are cleaned up, and
// uncertain reports true. ok is false when nothing usable remains.
func (c *Cleaner) StripUncertainty(text string) (cleaned string, uncertain bool, ok bool) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "", false, false
	}
	if !strings.Contains(t, "?") {
		return t, false, true
	}
	t = strings.ReplaceAll(t, "?", "")
	t = emptyParens.ReplaceAllString(t, "")
	t = strings.ReplaceAll(t, " )", ")")
	t = strings.ReplaceAll(t, "( ", "(")
	t = multiSpace.ReplaceAllString(t, " ")
	t = strings.TrimSpace(t)
	for t != "" && strings.ContainsRune(".,;:", rune(t[len(t)-1])) {
		t = strings.TrimSpace(t[:len(t)-1])
	}
	if t == "" {
		return "", true, false
	}
	return t, true, true
}

// NormalizeKey lowercases and strips diacritics for accent-insensitive
// membership tests against the classification reference lists. Characters
// with no ASCII decomposition are dropped entirely.
func NormalizeKey(text string) string {
	t := norm.NFD.String(strings.ToLower(strings.TrimSpace(text)))
	var b strings.Builder
	b.Grow(len(t))
	for _, r := range t {
		if r < 128 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsUncertain reports whether any of the raw values carries an uncertainty
// marker. Used for per-field certainty flags on link edges.
func IsUncertain(values []string) bool {
	for _, v := range values {
		if strings.Contains(v, "?") {
			return true
		}
	}
	return false
}
