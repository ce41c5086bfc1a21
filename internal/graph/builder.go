package graph

import (
	"github.com/studium-parisiense/daphne/internal/classify"
	"github.com/studium-parisiense/daphne/internal/model"
	"github.com/studium-parisiense/daphne/internal/temporal"
)

// Builder synthesizes factoid nodes and the edges linking them to their
// type, provenance source, participants, places, groups and times. Linking
// operations are side-effect-only appends; callers filter missing inputs
// before invocation.
type Builder struct {
	store *Store
	index *classify.Index
}

// NewBuilder creates a factoid builder over the shared store
func NewBuilder(store *Store, index *classify.Index) *Builder {
	return &Builder{store: store, index: index}
}

// NewFactoid allocates a fresh factoid with a monotonically assigned
// identifier and unconditionally emits its HAS_TYPE and provenance edges
func (b *Builder) NewFactoid(recordID string, ftype model.FactoidType, description, originalText, certainty string) string {
	fid := b.store.NextFactoidID()
	b.store.Factoids[fid] = &model.Factoid{
		ID:           fid,
		Type:         ftype,
		Certainty:    certainty,
		Description:  description,
		OriginalText: originalText,
	}
	b.store.AddEdge(model.Edge{Type: model.EdgeHasType, FromID: fid, ToID: string(ftype)})
	b.store.AddEdge(model.Edge{Type: model.EdgeReferTo, FromID: model.SourceID(recordID), ToID: fid})
	return fid
}

// LinkParticipant appends a PARTICIPATE edge carrying the role and an
// optional rank
func (b *Builder) LinkParticipant(factoidID, person string, role model.Role, rank string) {
	b.store.AddEdge(model.Edge{
		Type:   model.EdgeParticipate,
		FromID: factoidID,
		ToID:   person,
		Role:   role,
		Rank:   rank,
	})
}

// LinkPlace appends a TOOK_PLACE_AT edge, creating the place on demand
func (b *Builder) LinkPlace(factoidID, place, certainty string) {
	b.store.EnsurePlace(place)
	b.store.AddEdge(model.Edge{
		Type:      model.EdgeTookPlaceAt,
		FromID:    factoidID,
		ToID:      place,
		Certainty: certainty,
	})
}

// LinkZone appends a TOOK_PLACE_AT_ZONE edge, creating the zone on demand
func (b *Builder) LinkZone(factoidID, zone string) {
	b.store.EnsureZone(zone)
	b.store.AddEdge(model.Edge{Type: model.EdgeTookPlaceAtZone, FromID: factoidID, ToID: zone})
}

// EnsureClassified interns the node a classified name resolves to: a Domain
// for disciplines, a GroupP with the matching kind otherwise. Every
// classification decision creates its node, whether or not an edge follows.
func (b *Builder) EnsureClassified(name string, cls classify.Class) {
	switch cls {
	case classify.ClassDiscipline:
		b.store.EnsureDomain(name)
	case classify.ClassNation:
		b.store.EnsureGroup(name, model.GroupNation)
	default:
		b.store.EnsureGroup(name, model.GroupInstitution)
	}
}

// LinkGroup routes the edge by the target's classification: disciplines get
// IN_DOMAIN, nations and institutions get AT_GROUP. The target node is
// created on demand in the registry matching the route. This is the single
// branch point where classification changes graph topology.
func (b *Builder) LinkGroup(factoidID, group, certainty string) {
	cls := b.index.ClassOf(group)
	b.EnsureClassified(group, cls)
	edgeType := model.EdgeAtGroup
	if cls == classify.ClassDiscipline {
		edgeType = model.EdgeInDomain
	}
	b.store.AddEdge(model.Edge{
		Type:      edgeType,
		FromID:    factoidID,
		ToID:      group,
		Certainty: certainty,
	})
}

// LinkTime resolves the time key and appends an OCCURRED_AT edge; blank
// endpoints link nothing
func (b *Builder) LinkTime(factoidID, start, end string, startQ, endQ model.Qualifier) {
	t, ok := temporal.Resolve(start, end, startQ, endQ)
	if !ok {
		return
	}
	b.store.EnsureTime(t)
	b.store.AddEdge(model.Edge{Type: model.EdgeOccurredAt, FromID: factoidID, ToID: t.ID})
}

// LinkTimeFromDates links the first extracted date tuple, if any
func (b *Builder) LinkTimeFromDates(factoidID string, dates []temporal.DateTuple) {
	if len(dates) == 0 {
		return
	}
	d := dates[0]
	b.LinkTime(factoidID, d.Start, d.End, d.StartQualifier, d.EndQualifier)
}
