package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/studium-parisiense/daphne/internal/model"
)

var runTimeout time.Duration

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <jsonl>",
	Short: "Extract the factoid graph and load it into Neo4j in one pass",
	Long: `Run performs the complete conversion: extraction to CSVs followed by the
Neo4j bulk load. Equivalent to 'daphne extract' followed by 'daphne load'.

Extraction always completes before loading starts, so a failed load can be
retried with 'daphne load' without re-reading the input.

Example:
  daphne run records.jsonl
  daphne run records.jsonl --output-dir ./import_csv --wipe`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&outputDir, "output-dir", "./import_csv", "output directory for CSV files")
	runCmd.Flags().StringVar(&configDir, "config-dir", "./config", "directory holding disciplines.txt / nations.txt")
	runCmd.Flags().StringVar(&neo4jURI, "uri", "bolt://localhost:7687", "Neo4j connection URI")
	runCmd.Flags().StringVar(&neo4jUser, "user", "neo4j", "Neo4j user")
	runCmd.Flags().StringVar(&neo4jDatabase, "database", "", "Neo4j database name (default database if empty)")
	runCmd.Flags().IntVar(&batchSize, "batch-size", 1000, "rows per UNWIND batch")
	runCmd.Flags().Float64Var(&batchRate, "rate", 0, "max batches per second (0 = unthrottled)")
	runCmd.Flags().BoolVar(&wipe, "wipe", false, "DETACH DELETE all existing data first")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", time.Hour, "overall timeout")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	cfg := model.DefaultConfig()
	cfg.Extract.OutputDir = outputDir
	cfg.Extract.ConfigDir = configDir
	cfg.Output.Verbose = verbose

	store, err := extractPhase(ctx, cfg, args[0])
	if err != nil {
		return err
	}
	if _, err := exportPhase(store, cfg.Extract.OutputDir); err != nil {
		return err
	}

	fmt.Println()
	loadCfg := model.LoadConfig{
		BatchSize:        batchSize,
		BatchesPerSecond: batchRate,
		Wipe:             wipe,
	}
	return loadPhase(ctx, neo4jConfigFromFlags(), loadCfg, cfg.Extract.OutputDir)
}
