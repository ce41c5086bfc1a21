package graph

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/studium-parisiense/daphne/internal/classify"
	"github.com/studium-parisiense/daphne/internal/model"
	"github.com/studium-parisiense/daphne/internal/text"
)

func newTestBuilder(t *testing.T) (*Builder, *Store, *classify.Index) {
	t.Helper()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "disciplines.txt"), []byte("Theologia\n"), 0644); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	cleaner := text.NewCleaner(nil)
	index, err := classify.NewIndex(cleaner, dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	store := NewStore()
	return NewBuilder(store, index), store, index
}

func findEdges(store *Store, et model.EdgeType) []model.Edge {
	var out []model.Edge
	for _, e := range store.Edges {
		if e.Type == et {
			out = append(out, e)
		}
	}
	return out
}

func TestNewFactoid_EmitsTypeAndProvenance(t *testing.T) {
	b, store, _ := newTestBuilder(t)

	fid := b.NewFactoid("1234", model.FactoidBirth, "Birth of Johannes", "Parisius", "")
	if fid != "F_000001" {
		t.Errorf("Expected F_000001, got %s", fid)
	}

	f, ok := store.Factoids[fid]
	if !ok {
		t.Fatal("Expected factoid in store")
	}
	if f.Type != model.FactoidBirth || f.Description != "Birth of Johannes" {
		t.Errorf("Unexpected factoid %+v", f)
	}

	hasType := findEdges(store, model.EdgeHasType)
	if len(hasType) != 1 || hasType[0].FromID != fid || hasType[0].ToID != "BIRTH" {
		t.Errorf("Unexpected HAS_TYPE edges %+v", hasType)
	}

	referTo := findEdges(store, model.EdgeReferTo)
	if len(referTo) != 1 || referTo[0].FromID != "SRC_1234" || referTo[0].ToID != fid {
		t.Errorf("Unexpected REFER_TO edges %+v", referTo)
	}
}

func TestLinkGroup_RoutesDisciplinesToDomain(t *testing.T) {
	b, store, index := newTestBuilder(t)

	name, cls, ok := index.Classify("Theologia")
	if !ok || cls != classify.ClassDiscipline {
		t.Fatalf("Expected discipline, got (%s, %v)", cls, ok)
	}

	fid := b.NewFactoid("1", model.FactoidUniversityStudy, "", "", "")
	b.LinkGroup(fid, name, "")

	if got := findEdges(store, model.EdgeInDomain); len(got) != 1 || got[0].ToID != name {
		t.Errorf("Expected one IN_DOMAIN edge to %q, got %+v", name, got)
	}
	if got := findEdges(store, model.EdgeAtGroup); len(got) != 0 {
		t.Errorf("Expected no AT_GROUP edges, got %+v", got)
	}
	if _, ok := store.Domains[name]; !ok {
		t.Error("Expected domain node to be created")
	}
	if len(store.Groups) != 0 {
		t.Errorf("Expected no group nodes, got %d", len(store.Groups))
	}
}

func TestLinkGroup_RoutesInstitutionsToGroup(t *testing.T) {
	b, store, index := newTestBuilder(t)

	name, cls, ok := index.Classify("Collège de Navarre")
	if !ok || cls != classify.ClassInstitution {
		t.Fatalf("Expected institution, got (%s, %v)", cls, ok)
	}

	fid := b.NewFactoid("1", model.FactoidCollegeMembership, "", "", "")
	b.LinkGroup(fid, name, "uncertain")

	atGroup := findEdges(store, model.EdgeAtGroup)
	if len(atGroup) != 1 || atGroup[0].ToID != name || atGroup[0].Certainty != "uncertain" {
		t.Errorf("Expected one AT_GROUP edge with certainty, got %+v", atGroup)
	}
	if got := findEdges(store, model.EdgeInDomain); len(got) != 0 {
		t.Errorf("Expected no IN_DOMAIN edges, got %+v", got)
	}
	g, ok := store.Groups[name]
	if !ok {
		t.Fatal("Expected group node to be created")
	}
	if g.Kind != model.GroupInstitution {
		t.Errorf("Expected institution kind, got %s", g.Kind)
	}
}

func TestEnsureClassified(t *testing.T) {
	b, store, _ := newTestBuilder(t)

	b.EnsureClassified("Anglicana", classify.ClassNation)
	b.EnsureClassified("Theologia", classify.ClassDiscipline)
	b.EnsureClassified("Sorbonne", classify.ClassInstitution)

	if g, ok := store.Groups["Anglicana"]; !ok || g.Kind != model.GroupNation {
		t.Errorf("Expected nation group, got %+v", g)
	}
	if g, ok := store.Groups["Sorbonne"]; !ok || g.Kind != model.GroupInstitution {
		t.Errorf("Expected institution group, got %+v", g)
	}
	if _, ok := store.Domains["Theologia"]; !ok {
		t.Error("Expected domain node")
	}
	if _, ok := store.Groups["Theologia"]; ok {
		t.Error("Expected discipline to intern a Domain, not a GroupP")
	}
}

func TestLinkTime_DeduplicatesByKey(t *testing.T) {
	b, store, _ := newTestBuilder(t)

	f1 := b.NewFactoid("1", model.FactoidBirth, "", "", "")
	f2 := b.NewFactoid("1", model.FactoidLifePeriod, "", "", "")
	b.LinkTime(f1, "1350", "", model.QualifierSimple, model.QualifierSimple)
	b.LinkTime(f2, "1350", "", model.QualifierSimple, model.QualifierSimple)

	if len(store.Times) != 1 {
		t.Errorf("Expected 1 time node, got %d", len(store.Times))
	}
	if got := findEdges(store, model.EdgeOccurredAt); len(got) != 2 {
		t.Errorf("Expected 2 OCCURRED_AT edges, got %d", len(got))
	}
}

func TestLinkTime_BlankLinksNothing(t *testing.T) {
	b, store, _ := newTestBuilder(t)

	fid := b.NewFactoid("1", model.FactoidBirth, "", "", "")
	b.LinkTime(fid, "", "", model.QualifierSimple, model.QualifierSimple)

	if len(store.Times) != 0 {
		t.Errorf("Expected no time nodes, got %d", len(store.Times))
	}
	if got := findEdges(store, model.EdgeOccurredAt); len(got) != 0 {
		t.Errorf("Expected no OCCURRED_AT edges, got %+v", got)
	}
}

func TestLinkParticipant_CarriesRoleAndRank(t *testing.T) {
	b, store, _ := newTestBuilder(t)

	fid := b.NewFactoid("1", model.FactoidAcademicGrade, "", "", "")
	b.LinkParticipant(fid, "Johannes", model.RoleSubject, "magister")

	got := findEdges(store, model.EdgeParticipate)
	if len(got) != 1 {
		t.Fatalf("Expected 1 PARTICIPATE edge, got %d", len(got))
	}
	if got[0].Role != model.RoleSubject || got[0].Rank != "magister" {
		t.Errorf("Unexpected edge attrs %+v", got[0])
	}
}
