// Package temporal derives deduplicated time-node keys from loosely
// structured date sub-records, preserving endpoint qualifiers independently.
package temporal

import (
	"strings"

	"github.com/studium-parisiense/daphne/internal/model"
)

// DateTuple is one normalized date extracted from a meta block
type DateTuple struct {
	Start          string
	End            string
	StartQualifier model.Qualifier
	EndQualifier   model.Qualifier
}

// Empty reports whether the tuple carries no endpoint at all. Empty tuples
// are still emitted by ExtractDates so malformed entries are not silently
// lost; callers must check before acting.
func (d DateTuple) Empty() bool {
	return d.Start == "" && d.End == ""
}

// Resolve builds the Time node for a (start, end, qualifiers) tuple. The key
// is a pure function of the four fields: identical inputs always produce the
// identical node. SIMPLE qualifiers contribute nothing to the key tag, so
// "before 1350" and "1350" key differently while two plain mentions of
// "1350" collapse. Equal endpoints degenerate to an instant. ok is false
// when both endpoints are blank.
func Resolve(start, end string, startQ, endQ model.Qualifier) (model.Time, bool) {
	s := strings.TrimSpace(start)
	e := strings.TrimSpace(end)
	if s == "" && e == "" {
		return model.Time{}, false
	}

	sq := qualifierTag(startQ)
	eq := qualifierTag(endQ)

	switch {
	case s != "" && e != "" && s != e:
		return model.Time{
			ID:             "TI" + sq + "_" + s + eq + "_" + e,
			Type:           model.TimeInterval,
			Begin:          s,
			Finish:         e,
			BeginQualifier: startQ,
			EndQualifier:   endQ,
			Granularity:    "year",
		}, true
	case s != "":
		return model.Time{
			ID:             "I" + sq + "_" + s,
			Type:           model.TimeInstant,
			Begin:          s,
			BeginQualifier: startQ,
			Granularity:    "year",
		}, true
	default:
		return model.Time{
			ID:             "I" + eq + "_" + e,
			Type:           model.TimeInstant,
			Begin:          e,
			BeginQualifier: endQ,
			Granularity:    "year",
		}, true
	}
}

func qualifierTag(q model.Qualifier) string {
	if q == model.QualifierSimple || q == "" {
		return ""
	}
	return "_" + string(q)
}

// ExtractDates normalizes every date sub-object of a meta block into a
// DateTuple. An explicit start/end pair contributes each sub-value's own
// qualifier; a single flat date becomes the start, inheriting the top-level
// qualifier only when that qualifier is non-interval (BEFORE/AFTER/NEAR).
func ExtractDates(meta model.Meta) []DateTuple {
	tuples := make([]DateTuple, 0, len(meta.Dates))
	for _, d := range meta.Dates {
		entry := DateTuple{
			StartQualifier: model.QualifierSimple,
			EndQualifier:   model.QualifierSimple,
		}
		topQ := model.NormalizeQualifier(d.Type)

		startSet := false
		if d.StartDate != nil && (d.StartDate.Date != "" || d.StartDate.Type != "") {
			entry.Start = string(d.StartDate.Date)
			entry.StartQualifier = model.NormalizeQualifier(d.StartDate.Type)
			startSet = true
		} else if d.Date != nil {
			entry.Start = string(*d.Date)
			if promotable(topQ) {
				entry.StartQualifier = topQ
			}
			startSet = true
		}

		endSet := false
		if d.EndDate != nil && (d.EndDate.Date != "" || d.EndDate.Type != "") {
			entry.End = string(d.EndDate.Date)
			entry.EndQualifier = model.NormalizeQualifier(d.EndDate.Type)
			endSet = true
		}

		if !startSet && !endSet && d.Date != nil {
			entry.Start = string(*d.Date)
			if promotable(topQ) {
				entry.StartQualifier = topQ
			}
		}

		tuples = append(tuples, entry)
	}
	return tuples
}

func promotable(q model.Qualifier) bool {
	return q == model.QualifierBefore || q == model.QualifierAfter || q == model.QualifierNear
}
