// Package config provides configuration management for kioskpack.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - ContentRoot
//   - Import: verify, public_key
//   - Derivatives: thumb_size, screen_size, jpeg_quality
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - StagedDB, ActiveDB (per-command database overrides)
//   - Import.SkipDerivatives, Derivatives.Force
//   - Check.Level, Check.Target, Check.Format
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use KIOSKPACK_ prefix with underscores for nesting:
//
//	KIOSKPACK_CONTENT_ROOT=/srv/kiosk/content
//	KIOSKPACK_IMPORT_PUBLIC_KEY=/etc/kiosk/pack.pub
//	KIOSKPACK_LOG_LEVEL=info
//	KIOSKPACK_JOBS_NUMBER=4
package config

import (
	"runtime"
)

// Config represents the complete kioskpack configuration.
type Config struct {
	// ContentRoot is the directory that holds the kiosk databases, assets,
	// derivatives and import logs. Every component receives it explicitly.
	ContentRoot string `mapstructure:"content_root" yaml:"content_root"`

	// StagedDB overrides the staged database path derived from ContentRoot.
	StagedDB string `mapstructure:"-" yaml:"-"`

	// ActiveDB overrides the active database path derived from ContentRoot.
	ActiveDB string `mapstructure:"-" yaml:"-"`

	// Import contains settings of the import-pack command.
	Import ImportConfig `mapstructure:"import" yaml:"import"`

	// Derivatives contains settings for thumbnail and screen renditions.
	Derivatives DerivativesConfig `mapstructure:"derivatives" yaml:"derivatives"`

	// Check contains settings of the check-integrity command.
	Check CheckConfig `mapstructure:"-" yaml:"-"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for derivative
	// generation. Default value is set according to the number of threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `mapstructure:"-" yaml:"-"`
}

// ImportConfig contains settings specific to the import-pack command.
type ImportConfig struct {
	// Verify requires a valid detached Ed25519 signature of the manifest.
	// A pack without signature.sig, or with a bad one, is rejected.
	Verify bool `mapstructure:"verify" yaml:"verify"`

	// PublicKey is the path to the Ed25519 public key (raw, base64 or PEM)
	// used when Verify is true.
	PublicKey string `mapstructure:"public_key" yaml:"public_key"`

	// SkipDerivatives disables derivative generation after asset sync.
	SkipDerivatives bool `mapstructure:"-" yaml:"-"`
}

// DerivativesConfig contains settings for image renditions.
type DerivativesConfig struct {
	// ThumbSize is the side of square, centre-cropped thumbnails.
	ThumbSize int `mapstructure:"thumb_size" yaml:"thumb_size"`

	// ScreenSize is the bounding box side of screen-sized renditions.
	// Images smaller than the box are not upscaled.
	ScreenSize int `mapstructure:"screen_size" yaml:"screen_size"`

	// JPEGQuality is used when a rendition is encoded as JPEG.
	JPEGQuality int `mapstructure:"jpeg_quality" yaml:"jpeg_quality"`

	// Force regenerates renditions even if they already exist.
	Force bool `mapstructure:"-" yaml:"-"`
}

// CheckConfig contains settings of the check-integrity command.
type CheckConfig struct {
	// Level is 'basic' or 'strict'.
	Level string

	// Target is 'active' or 'staged'.
	Target string

	// Format of the printed report, 'json' or 'yaml'.
	Format string
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		ContentRoot: "content",
		Derivatives: DerivativesConfig{
			ThumbSize:   256,
			ScreenSize:  1600,
			JPEGQuality: 85,
		},
		Check: CheckConfig{
			Level:  "basic",
			Target: "active",
			Format: "json",
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}
