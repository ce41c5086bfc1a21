package model

import "fmt"

// NodeLabel is a property-graph node label
type NodeLabel string

const (
	LabelPerson      NodeLabel = "Person"
	LabelName        NodeLabel = "Name"
	LabelGroup       NodeLabel = "GroupP" // "Group" is reserved in Cypher
	LabelPlace       NodeLabel = "Place"
	LabelZone        NodeLabel = "Zone"
	LabelSource      NodeLabel = "Source"
	LabelFactoid     NodeLabel = "Factoid"
	LabelFactoidType NodeLabel = "FactoidType"
	LabelRole        NodeLabel = "Role"
	LabelRank        NodeLabel = "Rank"
	LabelTime        NodeLabel = "Time"
	LabelObject      NodeLabel = "Object"
	LabelObjectType  NodeLabel = "ObjectType"
	LabelDomain      NodeLabel = "Domain"
)

// Person is a historical person, keyed by normalized display name.
// Attribute fields follow first-non-empty-wins across mentions.
type Person struct {
	ID         string
	ShortDesc  string
	Gender     string
	PersonType string
	Status     string
}

// Name is one distinct name form
type Name struct {
	ID           string
	CompleteName string
}

// GroupKind distinguishes the two group classifications
type GroupKind string

const (
	GroupNation      GroupKind = "nation"
	GroupInstitution GroupKind = "institution"
)

// Group is a nation or institution, keyed by canonical label
type Group struct {
	ID          string
	Description string
	Kind        GroupKind
}

// Place is a geographic place, keyed by normalized name
type Place struct {
	ID          string
	Description string
}

// Zone is a diocese or region, distinct from Place
type Zone struct {
	ID          string
	Description string
}

// Source is a provenance record: one per input record plus synthetic ones for
// bibliographic citations
type Source struct {
	ID        string
	Name      string
	Reference string
	Link      string
}

// SourceID derives the source identifier for an input record
func SourceID(recordID string) string {
	return "SRC_" + recordID
}

// Factoid is the central assertion unit. Factoids are never deduplicated:
// every extracted fact gets a fresh identifier.
type Factoid struct {
	ID           string
	Type         FactoidType
	Certainty    string
	Duration     string
	Notes        string
	Description  string
	OriginalText string
	Problem      string
}

// FactoidTypeNode is a catalog node for one factoid type
type FactoidTypeNode struct {
	ID          FactoidType
	Description string
}

// RoleNode is a catalog node for one participant role
type RoleNode struct {
	ID          Role
	Description string
}

// Rank is an academic grade label, created lazily
type Rank struct {
	ID   string
	Name string
}

// TimeType distinguishes instants from intervals
type TimeType string

const (
	TimeInstant  TimeType = "Instant"
	TimeInterval TimeType = "TimeInterval"
)

// Time is a deduplicated temporal node. ID is a pure function of the four
// temporal fields, so identical inputs always resolve to the identical node.
type Time struct {
	ID             string
	Type           TimeType
	Begin          string
	Finish         string
	BeginQualifier Qualifier
	EndQualifier   Qualifier
	Granularity    string
}

// Object is an authored work, keyed by normalized title
type Object struct {
	ID          string
	Description string
	Value       string
}

// ObjectTypeNode categorizes objects
type ObjectTypeNode struct {
	ID          string
	Description string
}

// Domain is a discipline or subject area
type Domain struct {
	ID   string
	Name string
}

// FactoidID formats a sequential factoid identifier
func FactoidID(n int) string {
	return fmt.Sprintf("F_%06d", n)
}
