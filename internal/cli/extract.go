package cli

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/studium-parisiense/daphne/internal/classify"
	"github.com/studium-parisiense/daphne/internal/export"
	"github.com/studium-parisiense/daphne/internal/graph"
	"github.com/studium-parisiense/daphne/internal/model"
	"github.com/studium-parisiense/daphne/internal/pipeline"
	"github.com/studium-parisiense/daphne/internal/text"
)

var (
	outputDir string
	configDir string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <jsonl>",
	Short: "Extract the factoid graph from a JSONL record stream",
	Long: `Extract reads biographical records one per line and builds the complete
factoid graph in memory:
- Clean and normalize free-text fields
- Deduplicate persons, institutions, places and time spans
- Classify organizations into disciplines, nations and institutions
- Synthesize factoid nodes with roles, certainty and provenance
- Write one CSV per node type and per edge type

Example:
  daphne extract records.jsonl
  daphne extract records.jsonl --output-dir ./import_csv --config-dir ./config`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&outputDir, "output-dir", "./import_csv", "output directory for CSV files")
	extractCmd.Flags().StringVar(&configDir, "config-dir", "./config", "directory holding disciplines.txt / nations.txt")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	cfg.Extract.OutputDir = outputDir
	cfg.Extract.ConfigDir = configDir
	cfg.Output.Verbose = verbose

	store, err := extractPhase(context.Background(), cfg, args[0])
	if err != nil {
		return err
	}

	_, err = exportPhase(store, cfg.Extract.OutputDir)
	return err
}

// extractPhase streams the input file through the pipeline and prints the
// extraction summary
func extractPhase(ctx context.Context, cfg *model.Config, path string) (*graph.Store, error) {
	fmt.Fprintf(os.Stderr, "⚙️  Reading %s...\n", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	cleaner := text.NewCleaner(cfg.Extract.StopWords)
	index, err := classify.NewIndex(cleaner, cfg.Extract.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("load classification lists: %w", err)
	}

	store := graph.NewStore()
	p := pipeline.New(cleaner, index, store, cfg)

	if err := p.Run(ctx, f); err != nil {
		return nil, fmt.Errorf("extract: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Processed %d records", p.Stats.Records)
	if p.Stats.Dropped > 0 {
		fmt.Fprintf(os.Stderr, " (%d dropped without usable name)", p.Stats.Dropped)
	}
	if p.Stats.Malformed > 0 {
		fmt.Fprintf(os.Stderr, " (%d malformed lines skipped)", p.Stats.Malformed)
	}
	fmt.Fprintln(os.Stderr)

	counts := index.Counts()
	fmt.Fprintln(os.Stderr, "\nEntity classification:")
	fmt.Fprintf(os.Stderr, "  Disciplines  -> Domain:               %d\n", counts[classify.ClassDiscipline])
	fmt.Fprintf(os.Stderr, "  Nations      -> GroupP(nation):       %d\n", counts[classify.ClassNation])
	fmt.Fprintf(os.Stderr, "  Institutions -> GroupP(institution):  %d\n", counts[classify.ClassInstitution])

	fmt.Fprintln(os.Stderr, "\nNode counts:")
	for _, nc := range store.NodeCounts() {
		fmt.Fprintf(os.Stderr, "  %-12s %d\n", nc.Label, nc.Count)
	}

	edgeCounts := store.EdgeCounts()
	types := make([]string, 0, len(edgeCounts))
	for t := range edgeCounts {
		types = append(types, string(t))
	}
	sort.Strings(types)
	fmt.Fprintln(os.Stderr, "\nEdge counts:")
	for _, t := range types {
		fmt.Fprintf(os.Stderr, "  %-20s %d\n", t, edgeCounts[model.EdgeType(t)])
	}

	return store, nil
}

// exportPhase writes the CSVs and prints the export summary
func exportPhase(store *graph.Store, dir string) (*export.Summary, error) {
	fmt.Fprintf(os.Stderr, "\n⚙️  Writing CSVs to %s...\n", dir)

	summary, err := export.WriteAll(store, dir)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	if verbose {
		for _, c := range summary.Nodes {
			fmt.Fprintf(os.Stderr, "  %s: %d rows\n", c.Name, c.Rows)
		}
		for _, c := range summary.Edges {
			fmt.Fprintf(os.Stderr, "  %s: %d rows\n", c.Name, c.Rows)
		}
	}
	fmt.Fprintf(os.Stderr, "✓ Wrote %d node files and %d edge files\n", len(summary.Nodes), len(summary.Edges))
	return summary, nil
}
