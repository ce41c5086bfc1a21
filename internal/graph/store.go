// Package graph holds the accumulating in-memory node/edge registries and
// the factoid builder that grows them. The store is an explicit context
// object owned by the run driver and threaded through every pipeline call;
// there is no ambient state and no locking — processing is single-threaded.
package graph

import "github.com/studium-parisiense/daphne/internal/model"

// Store is the shared registry of all deduplicated nodes and all edges for
// one run. Nodes are created on demand and never deleted; edges are
// append-only and never deduplicated.
type Store struct {
	Persons      map[string]*model.Person
	Names        map[string]*model.Name
	Groups       map[string]*model.Group
	Places       map[string]*model.Place
	Zones        map[string]*model.Zone
	Sources      map[string]*model.Source
	Factoids     map[string]*model.Factoid
	FactoidTypes map[model.FactoidType]*model.FactoidTypeNode
	Roles        map[model.Role]*model.RoleNode
	Ranks        map[string]*model.Rank
	Times        map[string]*model.Time
	Objects      map[string]*model.Object
	ObjectTypes  map[string]*model.ObjectTypeNode
	Domains      map[string]*model.Domain

	Edges []model.Edge

	factoidCounter int
}

// NewStore creates an empty store with the factoid-type and role catalogs
// pre-populated
func NewStore() *Store {
	s := &Store{
		Persons:      make(map[string]*model.Person),
		Names:        make(map[string]*model.Name),
		Groups:       make(map[string]*model.Group),
		Places:       make(map[string]*model.Place),
		Zones:        make(map[string]*model.Zone),
		Sources:      make(map[string]*model.Source),
		Factoids:     make(map[string]*model.Factoid),
		FactoidTypes: make(map[model.FactoidType]*model.FactoidTypeNode),
		Roles:        make(map[model.Role]*model.RoleNode),
		Ranks:        make(map[string]*model.Rank),
		Times:        make(map[string]*model.Time),
		Objects:      make(map[string]*model.Object),
		ObjectTypes:  make(map[string]*model.ObjectTypeNode),
		Domains:      make(map[string]*model.Domain),
	}
	for id, desc := range model.FactoidTypeDescriptions {
		s.FactoidTypes[id] = &model.FactoidTypeNode{ID: id, Description: desc}
	}
	for id, desc := range model.RoleDescriptions {
		s.Roles[id] = &model.RoleNode{ID: id, Description: desc}
	}
	return s
}

// NextFactoidID allocates the next sequential factoid identifier. Identifiers
// are strictly increasing and never reused within a run.
func (s *Store) NextFactoidID() string {
	s.factoidCounter++
	return model.FactoidID(s.factoidCounter)
}

// EnsurePerson creates the person on first mention and fills blank fields on
// later mentions. A populated field is never overwritten (first-non-empty-wins).
func (s *Store) EnsurePerson(name, gender, shortDesc, status string) *model.Person {
	p, ok := s.Persons[name]
	if !ok {
		p = &model.Person{ID: name, PersonType: "PhysicalPerson"}
		s.Persons[name] = p
	}
	if gender != "" && p.Gender == "" {
		p.Gender = gender
	}
	if shortDesc != "" && p.ShortDesc == "" {
		p.ShortDesc = shortDesc
	}
	if status != "" && p.Status == "" {
		p.Status = status
	}
	return p
}

// EnsureName interns one distinct name form
func (s *Store) EnsureName(name string) {
	if _, ok := s.Names[name]; !ok {
		s.Names[name] = &model.Name{ID: name, CompleteName: name}
	}
}

// EnsureGroup interns a nation or institution node
func (s *Store) EnsureGroup(name string, kind model.GroupKind) {
	if _, ok := s.Groups[name]; !ok {
		s.Groups[name] = &model.Group{ID: name, Kind: kind}
	}
}

// EnsureDomain interns a discipline / subject-area node
func (s *Store) EnsureDomain(name string) {
	if _, ok := s.Domains[name]; !ok {
		s.Domains[name] = &model.Domain{ID: name, Name: name}
	}
}

// EnsurePlace interns a place node
func (s *Store) EnsurePlace(name string) {
	if _, ok := s.Places[name]; !ok {
		s.Places[name] = &model.Place{ID: name, Description: name}
	}
}

// EnsureZone interns a diocese/region node
func (s *Store) EnsureZone(name string) {
	if _, ok := s.Zones[name]; !ok {
		s.Zones[name] = &model.Zone{ID: name, Description: name}
	}
}

// EnsureRank interns an academic grade node
func (s *Store) EnsureRank(grade string) {
	if _, ok := s.Ranks[grade]; !ok {
		s.Ranks[grade] = &model.Rank{ID: grade, Name: grade}
	}
}

// EnsureTime interns a keyed time node; identical keys resolve to the
// existing node
func (s *Store) EnsureTime(t model.Time) {
	if _, ok := s.Times[t.ID]; !ok {
		copied := t
		s.Times[t.ID] = &copied
	}
}

// EnsureObject interns an authored work
func (s *Store) EnsureObject(title string) {
	if _, ok := s.Objects[title]; !ok {
		s.Objects[title] = &model.Object{ID: title, Description: title, Value: title}
	}
}

// EnsureObjectType interns an object-type catalog node
func (s *Store) EnsureObjectType(id, description string) {
	if _, ok := s.ObjectTypes[id]; !ok {
		s.ObjectTypes[id] = &model.ObjectTypeNode{ID: id, Description: description}
	}
}

// PutSource records the source node for an input record, replacing any
// earlier placeholder
func (s *Store) PutSource(src model.Source) {
	copied := src
	s.Sources[src.ID] = &copied
}

// EnsureSource interns a source node without overwriting an existing one
// (used for synthetic bibliographic sources)
func (s *Store) EnsureSource(src model.Source) {
	if _, ok := s.Sources[src.ID]; !ok {
		copied := src
		s.Sources[src.ID] = &copied
	}
}

// AddEdge appends one edge. Edges are never deduplicated.
func (s *Store) AddEdge(e model.Edge) {
	s.Edges = append(s.Edges, e)
}

// NodeCount is one (label, rows) pair of the store summary
type NodeCount struct {
	Label model.NodeLabel
	Count int
}

// NodeCounts returns per-label node totals in a fixed report order
func (s *Store) NodeCounts() []NodeCount {
	return []NodeCount{
		{model.LabelPerson, len(s.Persons)},
		{model.LabelName, len(s.Names)},
		{model.LabelGroup, len(s.Groups)},
		{model.LabelPlace, len(s.Places)},
		{model.LabelZone, len(s.Zones)},
		{model.LabelSource, len(s.Sources)},
		{model.LabelFactoid, len(s.Factoids)},
		{model.LabelFactoidType, len(s.FactoidTypes)},
		{model.LabelRole, len(s.Roles)},
		{model.LabelRank, len(s.Ranks)},
		{model.LabelTime, len(s.Times)},
		{model.LabelObject, len(s.Objects)},
		{model.LabelObjectType, len(s.ObjectTypes)},
		{model.LabelDomain, len(s.Domains)},
	}
}

// EdgeCounts returns per-type edge totals
func (s *Store) EdgeCounts() map[model.EdgeType]int {
	counts := make(map[model.EdgeType]int)
	for _, e := range s.Edges {
		counts[e.Type]++
	}
	return counts
}
