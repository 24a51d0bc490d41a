package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// stringOption trims s and sets it with set unless it is empty.
func stringOption(name, s string, set func(*Config, string)) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString(name, s) {
			set(c, s)
		}
	}
}

// enumOption normalises s and sets it with set if it is a known value
// of the enum name.
func enumOption(name, s string, set func(*Config, string)) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidEnum(name, s) {
			set(c, s)
		}
	}
}

// OptContentRoot sets the directory that holds databases and assets.
func OptContentRoot(s string) Option {
	return stringOption("Content Root", s, func(c *Config, v string) { c.ContentRoot = v })
}

// OptStagedDB overrides the staged database path.
// Runtime-only field - not in ToOptions().
func OptStagedDB(s string) Option {
	return stringOption("Staged Database", s, func(c *Config, v string) { c.StagedDB = v })
}

// OptActiveDB overrides the active database path.
// Runtime-only field - not in ToOptions().
func OptActiveDB(s string) Option {
	return stringOption("Active Database", s, func(c *Config, v string) { c.ActiveDB = v })
}

// OptImportVerify sets whether the manifest signature must be verified.
func OptImportVerify(b bool) Option {
	return func(c *Config) {
		c.Import.Verify = b
	}
}

// OptImportPublicKey sets the path to the Ed25519 public key.
func OptImportPublicKey(s string) Option {
	return stringOption("Public Key", s, func(c *Config, v string) { c.Import.PublicKey = v })
}

// OptImportSkipDerivatives disables derivative generation during import.
// Runtime-only field - not in ToOptions().
func OptImportSkipDerivatives(b bool) Option {
	return func(c *Config) {
		c.Import.SkipDerivatives = b
	}
}

// OptDerivativesForce regenerates existing derivatives.
// Runtime-only field - not in ToOptions().
func OptDerivativesForce(b bool) Option {
	return func(c *Config) {
		c.Derivatives.Force = b
	}
}

// OptDerivativesThumbSize sets the side of square thumbnails in pixels.
func OptDerivativesThumbSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Thumbnail Size", i) {
			c.Derivatives.ThumbSize = i
		}
	}
}

// OptDerivativesScreenSize sets the bounding box of screen renditions.
func OptDerivativesScreenSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Screen Size", i) {
			c.Derivatives.ScreenSize = i
		}
	}
}

// OptDerivativesJPEGQuality sets JPEG quality (1-100) of renditions.
func OptDerivativesJPEGQuality(i int) Option {
	return func(c *Config) {
		if !isValidInt("JPEG Quality", i) {
			return
		}
		if i > 100 {
			warnRange("JPEG Quality", i, 100)
			return
		}
		c.Derivatives.JPEGQuality = i
	}
}

// OptCheckLevel sets integrity check strictness.
// Valid values: "basic", "strict".
// Runtime-only field - not in ToOptions().
func OptCheckLevel(s string) Option {
	return enumOption("Check.Level", s, func(c *Config, v string) { c.Check.Level = v })
}

// OptCheckTarget sets which database is checked.
// Valid values: "active", "staged".
// Runtime-only field - not in ToOptions().
func OptCheckTarget(s string) Option {
	return enumOption("Check.Target", s, func(c *Config, v string) { c.Check.Target = v })
}

// OptCheckFormat sets the output format of the integrity report.
// Valid values: "json", "yaml".
// Runtime-only field - not in ToOptions().
func OptCheckFormat(s string) Option {
	return enumOption("Check.Format", s, func(c *Config, v string) { c.Check.Format = v })
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	return enumOption("Log.Level", s, func(c *Config, v string) { c.Log.Level = v })
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	return enumOption("Log.Format", s, func(c *Config, v string) { c.Log.Format = v })
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	return enumOption("Log.Destination", s, func(c *Config, v string) { c.Log.Destination = v })
}

// OptJobsNumber sets the number of concurrent workers.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	return stringOption("Home Directory", s, func(c *Config, v string) { c.HomeDir = v })
}
