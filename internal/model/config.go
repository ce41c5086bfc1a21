package model

// Config holds the full daphne configuration
type Config struct {
	Extract ExtractConfig `yaml:"extract"`
	Neo4j   Neo4jConfig   `yaml:"neo4j"`
	Load    LoadConfig    `yaml:"load"`
	Output  OutputConfig  `yaml:"output"`
}

// ExtractConfig controls the extraction phase
type ExtractConfig struct {
	ConfigDir     string   `yaml:"config_dir"`     // directory holding disciplines.txt / nations.txt
	OutputDir     string   `yaml:"output_dir"`     // destination for the CSV export
	StopWords     []string `yaml:"stop_words"`     // values treated as absent
	ProgressEvery int      `yaml:"progress_every"` // progress line interval (records)
}

// Neo4jConfig holds graph database connection settings
type Neo4jConfig struct {
	URI      string `yaml:"uri"`
	User     string `yaml:"user"`
	Password string `yaml:"password"` // normally supplied via NEO4J_PASSWORD
	Database string `yaml:"database"`
}

// LoadConfig controls the bulk-loading phase
type LoadConfig struct {
	BatchSize        int     `yaml:"batch_size"`
	BatchesPerSecond float64 `yaml:"batches_per_second"` // 0 = unthrottled
	Wipe             bool    `yaml:"wipe"`               // DETACH DELETE everything first
}

// OutputConfig controls reporting
type OutputConfig struct {
	Verbose bool `yaml:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			ConfigDir:     "./config",
			OutputDir:     "./import_csv",
			StopWords:     DefaultStopWords(),
			ProgressEvery: 5000,
		},
		Neo4j: Neo4jConfig{
			URI:  "bolt://localhost:7687",
			User: "neo4j",
		},
		Load: LoadConfig{
			BatchSize: 1000,
		},
		Output: OutputConfig{},
	}
}

// DefaultStopWords are the values the source corpus uses for "unknown"
func DefaultStopWords() []string {
	return []string{"INCONNU", "NON SPÉCIFIÉ", "NON SPECIFIE", "?"}
}
