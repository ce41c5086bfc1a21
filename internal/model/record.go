package model

import (
	"encoding/json"
	"strconv"
)

// Record is one biographical record from the JSONL input stream. Sections are
// decoded once at the pipeline boundary; a missing section is its zero value
// and contributes nothing to extraction.
type Record struct {
	ID                   string               `json:"_id"`
	Title                string               `json:"title"`
	Reference            string               `json:"reference"`
	Link                 string               `json:"link"`
	Identity             Identity             `json:"identity"`
	Origin               Origin               `json:"origin"`
	Curriculum           Curriculum           `json:"curriculum"`
	EcclesiasticalCareer EcclesiasticalCareer `json:"ecclesiasticalCareer"`
	ProfessionalCareer   ProfessionalCareer   `json:"professionalCareer"`
	RelationalInsertion  RelationalInsertion  `json:"relationalInsertion"`
	TextualProduction    TextualProduction    `json:"textualProduction"`
	Bibliography         Bibliography         `json:"bibliography"`
}

// Field is the recurring {value, meta} shape of biographical sub-fields
type Field struct {
	Value string `json:"value"`
	Meta  Meta   `json:"meta"`
}

// Meta carries the structured annotations attached to a field
type Meta struct {
	Dates        []DateEntry `json:"dates"`
	Places       FlexStrings `json:"places"`
	Institutions FlexStrings `json:"institutions"`
	Names        FlexStrings `json:"names"`
}

// DateEntry is one loosely structured date sub-object: either a flat date
// value or an explicit start/end pair
type DateEntry struct {
	Type      string      `json:"type"`
	Date      *FlexString `json:"date"`
	StartDate *DatePart   `json:"startDate"`
	EndDate   *DatePart   `json:"endDate"`
}

// DatePart is one endpoint of a date pair with its own qualifier
type DatePart struct {
	Date FlexString `json:"date"`
	Type string     `json:"type"`
}

// Identity holds the mandatory naming section plus biographical basics
type Identity struct {
	Name             []Field   `json:"name"`
	NameVariant      []Field   `json:"nameVariant"`
	Gender           []Field   `json:"gender"`
	ShortDescription []Field   `json:"shortDescription"`
	Status           FieldList `json:"status"`
	DatesOfActivity  []Field   `json:"datesOfActivity"`
	DatesOfLife      []Field   `json:"datesOfLife"`
}

// Origin holds birth place and diocese assertions
type Origin struct {
	BirthPlace []Field `json:"birthPlace"`
	Diocese    []Field `json:"diocese"`
}

// Curriculum holds the university career of the person as a student
type Curriculum struct {
	University        []Field `json:"university"`
	Grades            []Field `json:"grades"`
	UniversityCollege []Field `json:"universityCollege"`
}

// EcclesiasticalCareer holds church positions and order memberships
type EcclesiasticalCareer struct {
	SecularPosition []Field `json:"secularPosition"`
	RegularOrder    []Field `json:"regularOrder"`
}

// ProfessionalCareer holds teaching and other professional functions
type ProfessionalCareer struct {
	UniversityFunction []Field `json:"universityFunction"`
}

// RelationalInsertion holds person-to-person relationship assertions
type RelationalInsertion struct {
	FamilyNetwork             []Field `json:"familyNetwork"`
	StudentProfessorRelations []Field `json:"studentProfessorRelationships"`
}

// DomainSection groups authored works under one subject domain. Non-object
// values decode to an empty, invalid section that contributes nothing.
type DomainSection struct {
	Opus []Opus `json:"opus"`

	object bool
}

// UnmarshalJSON tolerates non-object values
func (ds *DomainSection) UnmarshalJSON(data []byte) error {
	type alias DomainSection
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		*ds = DomainSection{}
		return nil
	}
	*ds = DomainSection(a)
	ds.object = true
	return nil
}

// IsObject reports whether the section decoded from an actual JSON object
func (ds DomainSection) IsObject() bool {
	return ds.object
}

// Opus is one authored work
type Opus struct {
	MainTitle string `json:"mainTitle"`
}

// Bibliography holds citation cross-references
type Bibliography struct {
	WorkReferences []Field `json:"workReferences"`
	BookReferences []Field `json:"bookReferences"`
}

// TextualProduction maps subject domain labels to their works. Some records
// carry a non-object value here; those decode to an empty map.
type TextualProduction map[string]DomainSection

// UnmarshalJSON tolerates non-object values
func (tp *TextualProduction) UnmarshalJSON(data []byte) error {
	var m map[string]DomainSection
	if err := json.Unmarshal(data, &m); err != nil {
		*tp = nil
		return nil
	}
	*tp = m
	return nil
}

// FlexStrings decodes a JSON array keeping only its string elements; any
// non-array value decodes to empty
type FlexStrings []string

// UnmarshalJSON tolerates non-list values and non-string elements
func (fs *FlexStrings) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		*fs = nil
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			out = append(out, s)
		}
	}
	*fs = out
	return nil
}

// FlexString decodes a JSON string or number as a string
type FlexString string

// UnmarshalJSON accepts strings and bare numbers
func (f *FlexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexString(n.String())
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = FlexString(strconv.FormatBool(b))
		return nil
	}
	*f = ""
	return nil
}

// FieldList decodes either a list of fields or a bare string (seen for the
// identity status section in older records)
type FieldList []Field

// UnmarshalJSON accepts an array of fields or a single string value
func (fl *FieldList) UnmarshalJSON(data []byte) error {
	var items []Field
	if err := json.Unmarshal(data, &items); err == nil {
		*fl = items
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "" {
			*fl = []Field{{Value: s}}
		}
		return nil
	}
	*fl = nil
	return nil
}

// FirstValue returns the value of the first item, or "" when the list is empty
func FirstValue(items []Field) string {
	if len(items) == 0 {
		return ""
	}
	return items[0].Value
}
