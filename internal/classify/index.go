// Package classify routes organization names to exactly one of
// {discipline, nation, institution} using externally supplied reference
// lists. Classification never fails: unmatched names default to institution.
package classify

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	gocache "github.com/patrickmn/go-cache"

	"github.com/studium-parisiense/daphne/internal/text"
)

// Class is the semantic category assigned to an organization name
type Class string

const (
	ClassDiscipline  Class = "discipline"
	ClassNation      Class = "nation"
	ClassInstitution Class = "institution"
)

// Index holds the reference sets, the canonical-name registry and the
// per-run classification decisions
type Index struct {
	cleaner     *text.Cleaner
	disciplines map[string]struct{}
	nations     map[string]struct{}
	canon       map[string]string // case-insensitive form -> first display form seen
	decisions   *gocache.Cache    // display form -> Class, permanent for the run
}

// NewIndex loads the reference lists from configDir. A missing list file is
// not an error: it behaves as an empty set, shifting classification toward
// the institution default.
func NewIndex(cleaner *text.Cleaner, configDir string) (*Index, error) {
	disciplines, err := loadList(filepath.Join(configDir, "disciplines.txt"))
	if err != nil {
		return nil, err
	}
	nations, err := loadList(filepath.Join(configDir, "nations.txt"))
	if err != nil {
		return nil, err
	}
	return &Index{
		cleaner:     cleaner,
		disciplines: disciplines,
		nations:     nations,
		canon:       make(map[string]string),
		decisions:   gocache.New(gocache.NoExpiration, 0),
	}, nil
}

// loadList reads one normalized entry per line; blank lines and '#' comments
// are skipped, and a missing file yields an empty set
func loadList(path string) (map[string]struct{}, error) {
	entries := make(map[string]struct{})
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return entries, nil
		}
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries[text.NormalizeKey(line)] = struct{}{}
	}
	return entries, scanner.Err()
}

// Classify cleans a raw organization name, deduplicates it against previously
// seen case-insensitive forms and assigns its class. The decision is recorded
// permanently: later calls with any variant of the same name return the
// cached canonical form and class. ok is false when the cleaned name is
// empty or a stop word.
func (ix *Index) Classify(rawName string) (canonical string, cls Class, ok bool) {
	cleaned, ok := ix.cleaner.CleanInstitution(rawName)
	if !ok {
		return "", "", false
	}

	low := strings.ToLower(strings.TrimSpace(cleaned))
	display, seen := ix.canon[low]
	if !seen {
		display = cleaned
		ix.canon[low] = display
	}

	if cached, found := ix.decisions.Get(display); found {
		return display, cached.(Class), true
	}

	key := text.NormalizeKey(cleaned)
	switch {
	case contains(ix.disciplines, key):
		cls = ClassDiscipline
	case contains(ix.nations, key):
		cls = ClassNation
	default:
		cls = ClassInstitution
	}
	ix.decisions.Set(display, cls, gocache.NoExpiration)
	return display, cls, true
}

// ClassOf returns the recorded class for a canonical name, defaulting to
// institution for names never classified
func (ix *Index) ClassOf(canonical string) Class {
	if cached, found := ix.decisions.Get(canonical); found {
		return cached.(Class)
	}
	return ClassInstitution
}

// Counts tallies decisions per class for the run summary
func (ix *Index) Counts() map[Class]int {
	counts := make(map[Class]int, 3)
	for _, item := range ix.decisions.Items() {
		counts[item.Object.(Class)]++
	}
	return counts
}

func contains(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}
