package graph

import (
	"testing"

	"github.com/studium-parisiense/daphne/internal/model"
)

func TestNewStore_CatalogsPrepopulated(t *testing.T) {
	s := NewStore()

	if len(s.FactoidTypes) != len(model.FactoidTypeDescriptions) {
		t.Errorf("Expected %d factoid types, got %d", len(model.FactoidTypeDescriptions), len(s.FactoidTypes))
	}
	if len(s.Roles) != len(model.RoleDescriptions) {
		t.Errorf("Expected %d roles, got %d", len(model.RoleDescriptions), len(s.Roles))
	}
	if ft, ok := s.FactoidTypes[model.FactoidBirth]; !ok || ft.Description == "" {
		t.Error("Expected BIRTH catalog entry with a description")
	}
}

func TestNextFactoidID_Monotonic(t *testing.T) {
	s := NewStore()

	first := s.NextFactoidID()
	second := s.NextFactoidID()
	third := s.NextFactoidID()

	if first != "F_000001" || second != "F_000002" || third != "F_000003" {
		t.Errorf("Expected F_000001..F_000003, got %s, %s, %s", first, second, third)
	}
}

func TestEnsurePerson_FirstNonEmptyWins(t *testing.T) {
	s := NewStore()

	p := s.EnsurePerson("Johannes de Parisiis", "", "", "")
	if p.Gender != "" {
		t.Errorf("Expected blank gender, got %q", p.Gender)
	}
	if p.PersonType != "PhysicalPerson" {
		t.Errorf("Expected PhysicalPerson, got %q", p.PersonType)
	}

	s.EnsurePerson("Johannes de Parisiis", "male", "theologian", "")
	if p.Gender != "male" || p.ShortDesc != "theologian" {
		t.Errorf("Expected later mention to fill blanks, got gender=%q shortdesc=%q", p.Gender, p.ShortDesc)
	}

	s.EnsurePerson("Johannes de Parisiis", "female", "jurist", "secular")
	if p.Gender != "male" {
		t.Errorf("Expected populated gender to survive, got %q", p.Gender)
	}
	if p.ShortDesc != "theologian" {
		t.Errorf("Expected populated shortdesc to survive, got %q", p.ShortDesc)
	}
	if p.Status != "secular" {
		t.Errorf("Expected blank status to be filled, got %q", p.Status)
	}

	if len(s.Persons) != 1 {
		t.Errorf("Expected 1 person, got %d", len(s.Persons))
	}
}

func TestEnsureTime_Idempotent(t *testing.T) {
	s := NewStore()

	tm := model.Time{ID: "I_1350", Type: model.TimeInstant, Begin: "1350"}
	s.EnsureTime(tm)
	first := s.Times["I_1350"]

	s.EnsureTime(model.Time{ID: "I_1350", Type: model.TimeInstant, Begin: "9999"})
	if s.Times["I_1350"] != first {
		t.Error("Expected second insert to keep the existing node")
	}
	if s.Times["I_1350"].Begin != "1350" {
		t.Errorf("Expected original begin to survive, got %q", s.Times["I_1350"].Begin)
	}
}

func TestPutSource_Overwrites(t *testing.T) {
	s := NewStore()

	s.EnsureSource(model.Source{ID: "SRC_1", Name: "placeholder"})
	s.PutSource(model.Source{ID: "SRC_1", Name: "real record"})
	if s.Sources["SRC_1"].Name != "real record" {
		t.Errorf("Expected overwrite, got %q", s.Sources["SRC_1"].Name)
	}

	s.EnsureSource(model.Source{ID: "SRC_1", Name: "late placeholder"})
	if s.Sources["SRC_1"].Name != "real record" {
		t.Errorf("Expected EnsureSource to keep the existing node, got %q", s.Sources["SRC_1"].Name)
	}
}

func TestNodeCounts_Order(t *testing.T) {
	s := NewStore()
	s.EnsurePerson("P", "", "", "")
	s.EnsurePlace("Parisius")

	counts := s.NodeCounts()
	if len(counts) != 14 {
		t.Fatalf("Expected 14 labels, got %d", len(counts))
	}
	if counts[0].Label != model.LabelPerson || counts[0].Count != 1 {
		t.Errorf("Expected Person first with count 1, got %s=%d", counts[0].Label, counts[0].Count)
	}
	if counts[13].Label != model.LabelDomain {
		t.Errorf("Expected Domain last, got %s", counts[13].Label)
	}
}

func TestEdgeCounts(t *testing.T) {
	s := NewStore()
	s.AddEdge(model.Edge{Type: model.EdgeParticipate, FromID: "F_000001", ToID: "P"})
	s.AddEdge(model.Edge{Type: model.EdgeParticipate, FromID: "F_000002", ToID: "P"})
	s.AddEdge(model.Edge{Type: model.EdgeHasType, FromID: "F_000001", ToID: "BIRTH"})

	counts := s.EdgeCounts()
	if counts[model.EdgeParticipate] != 2 {
		t.Errorf("Expected 2 PARTICIPATE edges, got %d", counts[model.EdgeParticipate])
	}
	if counts[model.EdgeHasType] != 1 {
		t.Errorf("Expected 1 HAS_TYPE edge, got %d", counts[model.EdgeHasType])
	}
}
