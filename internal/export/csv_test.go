package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/studium-parisiense/daphne/internal/graph"
	"github.com/studium-parisiense/daphne/internal/model"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return rows
}

func TestWriteAll_NodeFiles(t *testing.T) {
	store := graph.NewStore()
	store.EnsurePerson("Petrus", "male", "theologian", "")
	store.EnsurePerson("Johannes", "", "", "")
	store.EnsurePlace("Parisius")

	dir := t.TempDir()
	summary, err := WriteAll(store, dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// All 14 node files exist even when their registries are empty.
	if len(summary.Nodes) != 14 {
		t.Errorf("Expected 14 node files, got %d", len(summary.Nodes))
	}

	rows := readCSV(t, filepath.Join(dir, "nodes_person.csv"))
	if len(rows) != 3 {
		t.Fatalf("Expected header + 2 rows, got %d", len(rows))
	}
	wantHeader := []string{"person_id", "shortdesc", "genre", "person_type", "status"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("Header column %d = %q, want %q", i, rows[0][i], col)
		}
	}
	// Rows are sorted by key.
	if rows[1][0] != "Johannes" || rows[2][0] != "Petrus" {
		t.Errorf("Expected key-sorted rows, got %q then %q", rows[1][0], rows[2][0])
	}
	if rows[2][1] != "theologian" || rows[2][2] != "male" {
		t.Errorf("Unexpected person row %v", rows[2])
	}

	rows = readCSV(t, filepath.Join(dir, "nodes_groupp.csv"))
	if len(rows) != 1 {
		t.Errorf("Expected header only for empty group file, got %d rows", len(rows))
	}

	rows = readCSV(t, filepath.Join(dir, "nodes_factoidtype.csv"))
	if len(rows) != 1+len(model.FactoidTypeDescriptions) {
		t.Errorf("Expected full factoid-type catalog, got %d rows", len(rows)-1)
	}
}

func TestWriteAll_EdgeFiles(t *testing.T) {
	store := graph.NewStore()
	store.AddEdge(model.Edge{Type: model.EdgeParticipate, FromID: "F_000001", ToID: "Petrus", Role: model.RoleSubject, Rank: "magister"})
	store.AddEdge(model.Edge{Type: model.EdgeTookPlaceAt, FromID: "F_000001", ToID: "Parisius", Certainty: "uncertain"})

	dir := t.TempDir()
	summary, err := WriteAll(store, dir)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(summary.Edges) != 2 {
		t.Errorf("Expected 2 edge files, got %d", len(summary.Edges))
	}

	rows := readCSV(t, filepath.Join(dir, "edges_participate.csv"))
	if len(rows) != 2 {
		t.Fatalf("Expected header + 1 row, got %d", len(rows))
	}
	wantHeader := []string{"from_id", "to_id", "role", "rank"}
	for i, col := range wantHeader {
		if rows[0][i] != col {
			t.Errorf("Header column %d = %q, want %q", i, rows[0][i], col)
		}
	}
	if rows[1][2] != "SUBJECT" || rows[1][3] != "magister" {
		t.Errorf("Unexpected participate row %v", rows[1])
	}

	rows = readCSV(t, filepath.Join(dir, "edges_took_place_at.csv"))
	if len(rows) != 2 || rows[1][2] != "uncertain" {
		t.Errorf("Unexpected took_place_at rows %v", rows)
	}

	// Edge files for unseen types are not created.
	if _, err := os.Stat(filepath.Join(dir, "edges_linked_to.csv")); !os.IsNotExist(err) {
		t.Error("Expected no file for unseen edge type")
	}
}

func TestWriteAll_Deterministic(t *testing.T) {
	build := func() *graph.Store {
		s := graph.NewStore()
		s.EnsurePlace("Oxonia")
		s.EnsurePlace("Parisius")
		s.EnsurePlace("Bononia")
		return s
	}

	dirA, dirB := t.TempDir(), t.TempDir()
	if _, err := WriteAll(build(), dirA); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := WriteAll(build(), dirB); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	a, err := os.ReadFile(filepath.Join(dirA, "nodes_place.csv"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	b, err := os.ReadFile(filepath.Join(dirB, "nodes_place.csv"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if string(a) != string(b) {
		t.Error("Expected identical output across runs")
	}
}

func TestNodeFileName(t *testing.T) {
	if got := NodeFileName(model.LabelGroup); got != "nodes_groupp.csv" {
		t.Errorf("Expected nodes_groupp.csv, got %q", got)
	}
	if got := NodeFileName(model.LabelPerson); got != "nodes_person.csv" {
		t.Errorf("Expected nodes_person.csv, got %q", got)
	}
}
