package config

// ValidationConfig holds the defaults of validation runs.
type ValidationConfig struct {
	// ResourceDir holds the profiles, SQL files and mapping files.
	ResourceDir string `mapstructure:"resource_dir" default:"resources"`
	// PageSize is the fetch window when neither the request nor the profile sets one.
	PageSize int `mapstructure:"page_size" default:"1000"`
	// TargetRecords caps validated records when neither the request nor the profile
	// sets one. Zero validates the whole remote population.
	TargetRecords int `mapstructure:"target_records" default:"0"`
	// OutputDir receives the report workbooks.
	OutputDir string `mapstructure:"output_dir" default:"reports"`
	// Reports enables the workbook reports.
	Reports bool `mapstructure:"reports" default:"true"`
	// Upload publishes reports to object storage.
	Upload bool `mapstructure:"upload" default:"false"`
}
