package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/studium-parisiense/daphne/internal/load"
	"github.com/studium-parisiense/daphne/internal/model"
)

var (
	neo4jURI      string
	neo4jUser     string
	neo4jDatabase string
	inputDir      string
	batchSize     int
	batchRate     float64
	wipe          bool
	loadTimeout   time.Duration
)

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Bulk-load the exported CSVs into Neo4j",
	Long: `Load merges the exported node and edge CSVs into a Neo4j database:
- Create a uniqueness constraint on every node type's key property
- Upsert nodes by key (MERGE + SET), batched for throughput
- Upsert edges by endpoint pair and type

The password is read from the NEO4J_PASSWORD environment variable.

Example:
  daphne load
  daphne load --uri bolt://localhost:7687 --input-dir ./import_csv --wipe
  daphne load --batch-size 500 --rate 10`,
	Args: cobra.NoArgs,
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVar(&neo4jURI, "uri", "bolt://localhost:7687", "Neo4j connection URI")
	loadCmd.Flags().StringVar(&neo4jUser, "user", "neo4j", "Neo4j user")
	loadCmd.Flags().StringVar(&neo4jDatabase, "database", "", "Neo4j database name (default database if empty)")
	loadCmd.Flags().StringVar(&inputDir, "input-dir", "./import_csv", "directory holding the exported CSVs")
	loadCmd.Flags().IntVar(&batchSize, "batch-size", 1000, "rows per UNWIND batch")
	loadCmd.Flags().Float64Var(&batchRate, "rate", 0, "max batches per second (0 = unthrottled)")
	loadCmd.Flags().BoolVar(&wipe, "wipe", false, "DETACH DELETE all existing data first")
	loadCmd.Flags().DurationVar(&loadTimeout, "timeout", 30*time.Minute, "overall load timeout")
}

func runLoad(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	cfg := neo4jConfigFromFlags()
	loadCfg := model.LoadConfig{
		BatchSize:        batchSize,
		BatchesPerSecond: batchRate,
		Wipe:             wipe,
	}

	return loadPhase(ctx, cfg, loadCfg, inputDir)
}

// neo4jConfigFromFlags assembles the connection settings; the password comes
// from the environment, never a flag
func neo4jConfigFromFlags() model.Neo4jConfig {
	return model.Neo4jConfig{
		URI:      neo4jURI,
		User:     neo4jUser,
		Password: os.Getenv("NEO4J_PASSWORD"),
		Database: neo4jDatabase,
	}
}

// loadPhase connects and runs the full load
func loadPhase(ctx context.Context, cfg model.Neo4jConfig, loadCfg model.LoadConfig, dir string) error {
	if cfg.Password == "" {
		fmt.Fprintln(os.Stderr, "Warning: NEO4J_PASSWORD not set in environment")
	}

	fmt.Fprintf(os.Stderr, "⚙️  Connecting to %s...\n", cfg.URI)
	loader, err := load.NewLoader(ctx, cfg, loadCfg, verbose)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer loader.Close(ctx)

	if err := loader.Load(ctx, dir); err != nil {
		return fmt.Errorf("load: %w", err)
	}

	fmt.Fprintln(os.Stderr, "✓ Load complete")
	return nil
}
