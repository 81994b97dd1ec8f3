// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Input     InputConfig     `mapstructure:"input"`
	Output    OutputConfig    `mapstructure:"output"`
	Normalize NormalizeConfig `mapstructure:"normalize"`
	Manifest  ManifestConfig  `mapstructure:"manifest"`
	AWS       AWSConfig       `mapstructure:"aws"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// InputConfig locates the template to normalize. Path may be a local
// file path or an s3:// URI. Format is "json", "yaml" or "" for
// detection from the path extension.
type InputConfig struct {
	Path   string `mapstructure:"path"`
	Format string `mapstructure:"format"`
}

// OutputConfig locates the normalized template. An empty Path rewrites
// the input file in place (local inputs only).
type OutputConfig struct {
	Path string `mapstructure:"path"`
}

// NormalizeConfig toggles the optional passes.
type NormalizeConfig struct {
	Parameters bool `mapstructure:"parameters"`
}

// ManifestConfig controls the optional build manifest.
type ManifestConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// AWSConfig holds settings for the s3:// template fetcher.
type AWSConfig struct {
	Region string `mapstructure:"region"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
