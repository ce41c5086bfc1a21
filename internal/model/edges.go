package model

// EdgeType identifies a relationship kind
type EdgeType string

const (
	EdgeMainName        EdgeType = "MAIN_NAME"
	EdgeNamed           EdgeType = "NAMED"
	EdgeBelongsTo       EdgeType = "BELONGS_TO"
	EdgeHasType         EdgeType = "HAS_TYPE"
	EdgeReferTo         EdgeType = "REFER_TO"
	EdgeParticipate     EdgeType = "PARTICIPATE"
	EdgeTookPlaceAt     EdgeType = "TOOK_PLACE_AT"
	EdgeTookPlaceAtZone EdgeType = "TOOK_PLACE_AT_ZONE"
	EdgeAtGroup         EdgeType = "AT_GROUP"
	EdgeInDomain        EdgeType = "IN_DOMAIN"
	EdgeOccurredAt      EdgeType = "OCCURRED_AT"
	EdgeOfType          EdgeType = "OF_TYPE"
	EdgeLinkedTo        EdgeType = "LINKED_TO"
)

// Edge is a typed, attributed relationship. Edges are never deduplicated:
// the same endpoint pair may carry multiple edges if asserted by multiple
// records. Which attribute fields are meaningful is fixed per edge kind by
// EdgeSchemas; the rest stay blank.
type Edge struct {
	Type      EdgeType
	FromID    string
	ToID      string
	Role      Role   // PARTICIPATE
	Rank      string // PARTICIPATE
	Certainty string // TOOK_PLACE_AT, AT_GROUP, IN_DOMAIN
	LinkType  string // LINKED_TO
}

// EdgeSchema fixes the endpoint labels, key properties and extra attribute
// columns for one edge kind
type EdgeSchema struct {
	FromLabel NodeLabel
	FromKey   string
	ToLabel   NodeLabel
	ToKey     string
	Attrs     []string
}

// EdgeSchemas is the static relationship schema: endpoint labels plus the
// attribute columns each kind carries in the exported CSVs
var EdgeSchemas = map[EdgeType]EdgeSchema{
	EdgeMainName:        {LabelPerson, "person_id", LabelName, "name_id", nil},
	EdgeNamed:           {LabelPerson, "person_id", LabelName, "name_id", nil},
	EdgeBelongsTo:       {LabelPerson, "person_id", LabelSource, "source_id", nil},
	EdgeHasType:         {LabelFactoid, "factoid_id", LabelFactoidType, "factoidtype_id", nil},
	EdgeReferTo:         {LabelSource, "source_id", LabelFactoid, "factoid_id", nil},
	EdgeParticipate:     {LabelFactoid, "factoid_id", LabelPerson, "person_id", []string{"role", "rank"}},
	EdgeTookPlaceAt:     {LabelFactoid, "factoid_id", LabelPlace, "place_id", []string{"certainty"}},
	EdgeTookPlaceAtZone: {LabelFactoid, "factoid_id", LabelZone, "zone_id", nil},
	EdgeAtGroup:         {LabelFactoid, "factoid_id", LabelGroup, "group_id", []string{"certainty"}},
	EdgeInDomain:        {LabelFactoid, "factoid_id", LabelDomain, "domain_id", []string{"certainty"}},
	EdgeOccurredAt:      {LabelFactoid, "factoid_id", LabelTime, "time_id", nil},
	EdgeOfType:          {LabelFactoid, "factoid_id", LabelObject, "object_id", nil},
	EdgeLinkedTo:        {LabelSource, "source_id", LabelSource, "source_id", []string{"link_type"}},
}

// Attr returns the value of a named extra attribute for CSV export
func (e Edge) Attr(name string) string {
	switch name {
	case "role":
		return string(e.Role)
	case "rank":
		return e.Rank
	case "certainty":
		return e.Certainty
	case "link_type":
		return e.LinkType
	}
	return ""
}
