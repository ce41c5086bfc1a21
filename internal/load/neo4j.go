// Package load bulk-loads the exported CSVs into a Neo4j property graph:
// uniqueness constraints per node type, then batched idempotent MERGE
// upserts for nodes (by key) and edges (by endpoint pair and type).
package load

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"golang.org/x/time/rate"

	"github.com/studium-parisiense/daphne/internal/export"
	"github.com/studium-parisiense/daphne/internal/model"
)

// nodeSpec describes one node CSV and its graph mapping
type nodeSpec struct {
	label model.NodeLabel
	key   string
	props []string
}

// nodeSpecs lists every node type in load order
var nodeSpecs = []nodeSpec{
	{model.LabelPerson, "person_id", []string{"shortdesc", "genre", "person_type", "status"}},
	{model.LabelName, "name_id", []string{"completename"}},
	{model.LabelGroup, "group_id", []string{"group_descr", "group_type"}},
	{model.LabelPlace, "place_id", []string{"place_description"}},
	{model.LabelZone, "zone_id", []string{"zone_description"}},
	{model.LabelSource, "source_id", []string{"name", "reference", "link"}},
	{model.LabelFactoid, "factoid_id", []string{"factoidtype", "certainty", "duration", "notes", "description", "original_text", "problem"}},
	{model.LabelFactoidType, "factoidtype_id", []string{"description"}},
	{model.LabelRole, "role_id", []string{"role_description"}},
	{model.LabelRank, "rank_id", []string{"rankname"}},
	{model.LabelTime, "time_id", []string{"time_type", "begin", "finish", "begin_qualifier", "end_qualifier", "granularity"}},
	{model.LabelObject, "object_id", []string{"object_description", "value"}},
	{model.LabelObjectType, "type_id", []string{"type_description"}},
	{model.LabelDomain, "domain_id", []string{"name"}},
}

// Loader drives the Neo4j loading phase
type Loader struct {
	driver    neo4j.DriverWithContext
	database  string
	batchSize int
	limiter   *rate.Limiter // nil when unthrottled
	wipe      bool
	verbose   bool
}

// NewLoader connects to Neo4j and verifies connectivity
func NewLoader(ctx context.Context, cfg model.Neo4jConfig, loadCfg model.LoadConfig, verbose bool) (*Loader, error) {
	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.User, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("init driver: %w", err)
	}
	if err := driver.VerifyConnectivity(ctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("verify connectivity: %w", err)
	}

	var limiter *rate.Limiter
	if loadCfg.BatchesPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(loadCfg.BatchesPerSecond), 1)
	}

	batchSize := loadCfg.BatchSize
	if batchSize <= 0 {
		batchSize = 1000
	}

	return &Loader{
		driver:    driver,
		database:  cfg.Database,
		batchSize: batchSize,
		limiter:   limiter,
		wipe:      loadCfg.Wipe,
		verbose:   verbose,
	}, nil
}

// Close releases the driver
func (l *Loader) Close(ctx context.Context) error {
	return l.driver.Close(ctx)
}

// Load runs the full loading phase against the CSV directory
func (l *Loader) Load(ctx context.Context, dir string) error {
	session := l.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: l.database})
	defer session.Close(ctx)

	if l.wipe {
		fmt.Fprintln(os.Stderr, "⚙️  Wiping database...")
		if _, err := session.Run(ctx, "MATCH (n) DETACH DELETE n", nil); err != nil {
			return fmt.Errorf("wipe database: %w", err)
		}
	}

	fmt.Fprintln(os.Stderr, "⚙️  Creating constraints...")
	if err := l.createConstraints(ctx, session); err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, "⚙️  Loading nodes...")
	for _, spec := range nodeSpecs {
		if err := l.loadNodes(ctx, session, dir, spec); err != nil {
			return fmt.Errorf("load %s nodes: %w", spec.label, err)
		}
	}

	fmt.Fprintln(os.Stderr, "⚙️  Loading edges...")
	edgeTypes := make([]string, 0, len(model.EdgeSchemas))
	for t := range model.EdgeSchemas {
		edgeTypes = append(edgeTypes, string(t))
	}
	sort.Strings(edgeTypes)
	for _, t := range edgeTypes {
		if err := l.loadEdges(ctx, session, dir, model.EdgeType(t)); err != nil {
			return fmt.Errorf("load %s edges: %w", t, err)
		}
	}

	return l.printSummary(ctx, session)
}

// createConstraints ensures a uniqueness constraint on every node type's key
func (l *Loader) createConstraints(ctx context.Context, session neo4j.SessionWithContext) error {
	for _, spec := range nodeSpecs {
		query := fmt.Sprintf(
			"CREATE CONSTRAINT IF NOT EXISTS FOR (n:%s) REQUIRE n.%s IS UNIQUE",
			spec.label, spec.key)
		if _, err := session.Run(ctx, query, nil); err != nil {
			return fmt.Errorf("constraint on %s: %w", spec.label, err)
		}
	}
	return nil
}

// loadNodes merges one node CSV by key, batched. A missing file is skipped.
func (l *Loader) loadNodes(ctx context.Context, session neo4j.SessionWithContext, dir string, spec nodeSpec) error {
	rows, err := readCSV(filepath.Join(dir, export.NodeFileName(spec.label)))
	if err != nil {
		return err
	}
	if rows == nil {
		if l.verbose {
			fmt.Fprintf(os.Stderr, "   skipped %s (no file)\n", export.NodeFileName(spec.label))
		}
		return nil
	}

	setParts := make([]string, len(spec.props))
	for i, p := range spec.props {
		setParts[i] = fmt.Sprintf("n.%s = row.%s", p, p)
	}
	setClause := ""
	if len(setParts) > 0 {
		setClause = "SET " + strings.Join(setParts, ", ")
	}
	query := fmt.Sprintf(
		"UNWIND $rows AS row MERGE (n:%s {%s: row.%s}) %s",
		spec.label, spec.key, spec.key, setClause)

	if err := l.runBatches(ctx, session, query, rows); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "   %s: %d nodes\n", spec.label, len(rows))
	return nil
}

// loadEdges matches both endpoints and merges the relationship, setting any
// extra attributes the edge kind carries. A missing file is skipped.
func (l *Loader) loadEdges(ctx context.Context, session neo4j.SessionWithContext, dir string, edgeType model.EdgeType) error {
	schema := model.EdgeSchemas[edgeType]
	name := "edges_" + strings.ToLower(string(edgeType)) + ".csv"
	rows, err := readCSV(filepath.Join(dir, name))
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	setParts := make([]string, len(schema.Attrs))
	for i, attr := range schema.Attrs {
		setParts[i] = fmt.Sprintf("r.%s = row.%s", attr, attr)
	}
	setClause := ""
	if len(setParts) > 0 {
		setClause = "SET " + strings.Join(setParts, ", ")
	}
	query := fmt.Sprintf(
		"UNWIND $rows AS row MATCH (a:%s {%s: row.from_id}) MATCH (b:%s {%s: row.to_id}) MERGE (a)-[r:%s]->(b) %s",
		schema.FromLabel, schema.FromKey, schema.ToLabel, schema.ToKey, edgeType, setClause)

	if err := l.runBatches(ctx, session, query, rows); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "   %s: %d edges\n", edgeType, len(rows))
	return nil
}

// runBatches submits rows in batchSize chunks, honoring the rate limit
func (l *Loader) runBatches(ctx context.Context, session neo4j.SessionWithContext, query string, rows []map[string]any) error {
	for i := 0; i < len(rows); i += l.batchSize {
		end := i + l.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		if l.limiter != nil {
			if err := l.limiter.Wait(ctx); err != nil {
				return err
			}
		}
		batch := rows[i:end]
		_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
			return tx.Run(ctx, query, map[string]any{"rows": batch})
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// printSummary reports node and relationship totals from the live graph
func (l *Loader) printSummary(ctx context.Context, session neo4j.SessionWithContext) error {
	fmt.Println("\nGraph summary:")

	result, err := session.Run(ctx,
		"MATCH (n) RETURN labels(n)[0] AS label, count(*) AS cnt ORDER BY cnt DESC", nil)
	if err != nil {
		return fmt.Errorf("node summary: %w", err)
	}
	for result.Next(ctx) {
		rec := result.Record()
		label, _ := rec.Get("label")
		cnt, _ := rec.Get("cnt")
		fmt.Printf("   %v: %v nodes\n", label, cnt)
	}
	if err := result.Err(); err != nil {
		return err
	}

	result, err = session.Run(ctx,
		"MATCH ()-[r]->() RETURN type(r) AS rel, count(*) AS cnt ORDER BY cnt DESC", nil)
	if err != nil {
		return fmt.Errorf("edge summary: %w", err)
	}
	for result.Next(ctx) {
		rec := result.Record()
		rel, _ := rec.Get("rel")
		cnt, _ := rec.Get("cnt")
		fmt.Printf("   %v: %v edges\n", rel, cnt)
	}
	return result.Err()
}

// readCSV reads a headed CSV into row maps; a missing file returns nil rows
func readCSV(path string) ([]map[string]any, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return []map[string]any{}, nil
		}
		return nil, err
	}

	var rows []map[string]any
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make(map[string]any, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	if rows == nil {
		rows = []map[string]any{}
	}
	return rows, nil
}
