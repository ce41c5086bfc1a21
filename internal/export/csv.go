// Package export serializes the in-memory graph to one flat CSV per node
// type and one per edge type, the handoff contract for the bulk loader.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/studium-parisiense/daphne/internal/graph"
	"github.com/studium-parisiense/daphne/internal/model"
)

// Count is one (file, rows) pair of the export summary
type Count struct {
	Name string
	Rows int
}

// Summary reports what was written
type Summary struct {
	Nodes []Count
	Edges []Count
}

// NodeFile describes one node CSV: file name, header and key-sorted rows
type nodeFile struct {
	name   string
	header []string
	rows   [][]string
}

// WriteAll writes every node and edge CSV into dir, creating it if needed.
// Node rows are sorted by key so output is deterministic across runs.
func WriteAll(store *graph.Store, dir string) (*Summary, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	summary := &Summary{}
	for _, nf := range nodeFiles(store) {
		if err := writeCSV(filepath.Join(dir, nf.name), nf.header, nf.rows); err != nil {
			return nil, fmt.Errorf("write %s: %w", nf.name, err)
		}
		summary.Nodes = append(summary.Nodes, Count{Name: nf.name, Rows: len(nf.rows)})
	}

	edgesByType := make(map[model.EdgeType][]model.Edge)
	for _, e := range store.Edges {
		edgesByType[e.Type] = append(edgesByType[e.Type], e)
	}
	types := make([]string, 0, len(edgesByType))
	for t := range edgesByType {
		types = append(types, string(t))
	}
	sort.Strings(types)

	for _, t := range types {
		edgeType := model.EdgeType(t)
		name := edgeFileName(edgeType)
		schema := model.EdgeSchemas[edgeType]
		header := append([]string{"from_id", "to_id"}, schema.Attrs...)
		rows := make([][]string, 0, len(edgesByType[edgeType]))
		for _, e := range edgesByType[edgeType] {
			row := []string{e.FromID, e.ToID}
			for _, attr := range schema.Attrs {
				row = append(row, e.Attr(attr))
			}
			rows = append(rows, row)
		}
		if err := writeCSV(filepath.Join(dir, name), header, rows); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		summary.Edges = append(summary.Edges, Count{Name: name, Rows: len(rows)})
	}

	return summary, nil
}

// edgeFileName maps an edge type to its CSV file name
func edgeFileName(t model.EdgeType) string {
	return "edges_" + strings.ToLower(string(t)) + ".csv"
}

// NodeFileName maps a node label to its CSV file name
func NodeFileName(label model.NodeLabel) string {
	return "nodes_" + strings.ToLower(string(label)) + ".csv"
}

func nodeFiles(store *graph.Store) []nodeFile {
	return []nodeFile{
		{NodeFileName(model.LabelPerson),
			[]string{"person_id", "shortdesc", "genre", "person_type", "status"},
			sortedRows(store.Persons, func(p *model.Person) []string {
				return []string{p.ID, p.ShortDesc, p.Gender, p.PersonType, p.Status}
			})},
		{NodeFileName(model.LabelName),
			[]string{"name_id", "completename"},
			sortedRows(store.Names, func(n *model.Name) []string {
				return []string{n.ID, n.CompleteName}
			})},
		{NodeFileName(model.LabelGroup),
			[]string{"group_id", "group_descr", "group_type"},
			sortedRows(store.Groups, func(g *model.Group) []string {
				return []string{g.ID, g.Description, string(g.Kind)}
			})},
		{NodeFileName(model.LabelPlace),
			[]string{"place_id", "place_description"},
			sortedRows(store.Places, func(p *model.Place) []string {
				return []string{p.ID, p.Description}
			})},
		{NodeFileName(model.LabelZone),
			[]string{"zone_id", "zone_description"},
			sortedRows(store.Zones, func(z *model.Zone) []string {
				return []string{z.ID, z.Description}
			})},
		{NodeFileName(model.LabelSource),
			[]string{"source_id", "name", "reference", "link"},
			sortedRows(store.Sources, func(s *model.Source) []string {
				return []string{s.ID, s.Name, s.Reference, s.Link}
			})},
		{NodeFileName(model.LabelFactoid),
			[]string{"factoid_id", "factoidtype", "certainty", "duration", "notes", "description", "original_text", "problem"},
			sortedRows(store.Factoids, func(f *model.Factoid) []string {
				return []string{f.ID, string(f.Type), f.Certainty, f.Duration, f.Notes, f.Description, f.OriginalText, f.Problem}
			})},
		{NodeFileName(model.LabelFactoidType),
			[]string{"factoidtype_id", "description"},
			sortedRows(store.FactoidTypes, func(ft *model.FactoidTypeNode) []string {
				return []string{string(ft.ID), ft.Description}
			})},
		{NodeFileName(model.LabelRole),
			[]string{"role_id", "role_description"},
			sortedRows(store.Roles, func(r *model.RoleNode) []string {
				return []string{string(r.ID), r.Description}
			})},
		{NodeFileName(model.LabelRank),
			[]string{"rank_id", "rankname"},
			sortedRows(store.Ranks, func(r *model.Rank) []string {
				return []string{r.ID, r.Name}
			})},
		{NodeFileName(model.LabelTime),
			[]string{"time_id", "time_type", "begin", "finish", "begin_qualifier", "end_qualifier", "granularity"},
			sortedRows(store.Times, func(t *model.Time) []string {
				return []string{t.ID, string(t.Type), t.Begin, t.Finish, string(t.BeginQualifier), string(t.EndQualifier), t.Granularity}
			})},
		{NodeFileName(model.LabelObject),
			[]string{"object_id", "object_description", "value"},
			sortedRows(store.Objects, func(o *model.Object) []string {
				return []string{o.ID, o.Description, o.Value}
			})},
		{NodeFileName(model.LabelObjectType),
			[]string{"type_id", "type_description"},
			sortedRows(store.ObjectTypes, func(ot *model.ObjectTypeNode) []string {
				return []string{ot.ID, ot.Description}
			})},
		{NodeFileName(model.LabelDomain),
			[]string{"domain_id", "name"},
			sortedRows(store.Domains, func(d *model.Domain) []string {
				return []string{d.ID, d.Name}
			})},
	}
}

// sortedRows renders a node registry to rows ordered by key
func sortedRows[K ~string, V any](nodes map[K]V, render func(V) []string) [][]string {
	keys := make([]string, 0, len(nodes))
	for k := range nodes {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, render(nodes[K(k)]))
	}
	return rows
}

func writeCSV(path string, header []string, rows [][]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
