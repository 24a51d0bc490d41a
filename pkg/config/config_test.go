package config_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/kioskware/kioskpack/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "kioskpack"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "kioskpack", "logs"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "kioskpack", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()
	require.NotNil(t, cfg)

	assert.Equal(t, "content", cfg.ContentRoot)
	assert.Empty(t, cfg.StagedDB)
	assert.Empty(t, cfg.ActiveDB)
	assert.False(t, cfg.Import.Verify)
	assert.False(t, cfg.Import.SkipDerivatives)

	assert.Equal(t, 256, cfg.Derivatives.ThumbSize)
	assert.Equal(t, 1600, cfg.Derivatives.ScreenSize)
	assert.Equal(t, 85, cfg.Derivatives.JPEGQuality)
	assert.False(t, cfg.Derivatives.Force)

	assert.Equal(t, "basic", cfg.Check.Level)
	assert.Equal(t, "active", cfg.Check.Target)
	assert.Equal(t, "json", cfg.Check.Format)

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Log.Destination)
	assert.Equal(t, runtime.NumCPU(), cfg.JobsNumber)
}

func TestOptionContentRoot(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets valid root", "/srv/kiosk", "/srv/kiosk"},
		{"trims whitespace", "  /srv/kiosk  ", "/srv/kiosk"},
		{"ignores empty string", "", "content"},
		{"ignores whitespace-only", "   ", "content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptContentRoot(tt.input)})
			assert.Equal(t, tt.expected, cfg.ContentRoot)
		})
	}
}

func TestOptionCheckLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets basic", "basic", "basic"},
		{"sets strict", "strict", "strict"},
		{"normalizes to lowercase", "STRICT", "strict"},
		{"ignores invalid value", "paranoid", "basic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptCheckLevel(tt.input)})
			assert.Equal(t, tt.expected, cfg.Check.Level)
		})
	}
}

func TestOptionCheckTarget(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets staged", "staged", "staged"},
		{"sets active", "active", "active"},
		{"ignores invalid value", "previous", "active"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptCheckTarget(tt.input)})
			assert.Equal(t, tt.expected, cfg.Check.Target)
		})
	}
}

func TestOptionLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"sets debug", "debug", "debug"},
		{"sets error", "error", "error"},
		{"normalizes to lowercase", "WARN", "warn"},
		{"ignores invalid value", "verbose", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLogLevel(tt.input)})
			assert.Equal(t, tt.expected, cfg.Log.Level)
		})
	}
}

func TestOptionJPEGQuality(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"sets valid quality", 70, 70},
		{"accepts maximum", 100, 100},
		{"ignores zero", 0, 85},
		{"ignores above maximum", 101, 85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptDerivativesJPEGQuality(tt.input)})
			assert.Equal(t, tt.expected, cfg.Derivatives.JPEGQuality)
		})
	}
}

func TestOptionJobsNumber(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{config.OptJobsNumber(3)})
	assert.Equal(t, 3, cfg.JobsNumber)

	cfg.Update([]config.Option{config.OptJobsNumber(-1)})
	assert.Equal(t, 3, cfg.JobsNumber, "negative value should be ignored")
}

func TestMultipleOptions(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptContentRoot("/data/content"),
		config.OptStagedDB("/tmp/staged.db"),
		config.OptActiveDB("/tmp/active.db"),
		config.OptImportVerify(true),
		config.OptImportPublicKey("/etc/kiosk/pack.pub"),
		config.OptImportSkipDerivatives(true),
		config.OptDerivativesForce(true),
	})

	assert.Equal(t, "/data/content", cfg.ContentRoot)
	assert.Equal(t, "/tmp/staged.db", cfg.StagedDB)
	assert.Equal(t, "/tmp/active.db", cfg.ActiveDB)
	assert.True(t, cfg.Import.Verify)
	assert.Equal(t, "/etc/kiosk/pack.pub", cfg.Import.PublicKey)
	assert.True(t, cfg.Import.SkipDerivatives)
	assert.True(t, cfg.Derivatives.Force)
}

func TestToOptions(t *testing.T) {
	t.Run("converts config to options correctly", func(t *testing.T) {
		original := config.New()
		original.Update([]config.Option{
			config.OptContentRoot("/srv/content"),
			config.OptImportVerify(true),
			config.OptImportPublicKey("/keys/pack.pub"),
			config.OptDerivativesThumbSize(128),
			config.OptDerivativesScreenSize(1024),
			config.OptDerivativesJPEGQuality(90),
			config.OptLogLevel("debug"),
			config.OptLogFormat("text"),
			config.OptLogDestination("stdout"),
			config.OptJobsNumber(2),
		})

		newCfg := config.New()
		newCfg.Update(original.ToOptions())

		assert.Equal(t, original.ContentRoot, newCfg.ContentRoot)
		assert.Equal(t, original.Import.Verify, newCfg.Import.Verify)
		assert.Equal(t, original.Import.PublicKey, newCfg.Import.PublicKey)
		assert.Equal(t, original.Derivatives.ThumbSize, newCfg.Derivatives.ThumbSize)
		assert.Equal(t, original.Derivatives.ScreenSize, newCfg.Derivatives.ScreenSize)
		assert.Equal(t, original.Derivatives.JPEGQuality, newCfg.Derivatives.JPEGQuality)
		assert.Equal(t, original.Log, newCfg.Log)
		assert.Equal(t, original.JobsNumber, newCfg.JobsNumber)
	})

	t.Run("excludes runtime-only fields", func(t *testing.T) {
		cfg := config.New()
		cfg.Update([]config.Option{
			config.OptHomeDir("/custom/home"),
			config.OptStagedDB("/tmp/staged.db"),
			config.OptActiveDB("/tmp/active.db"),
			config.OptImportSkipDerivatives(true),
			config.OptDerivativesForce(true),
			config.OptCheckLevel("strict"),
			config.OptCheckTarget("staged"),
		})

		newCfg := config.New()
		newCfg.Update(cfg.ToOptions())

		assert.Equal(t, "", newCfg.HomeDir)
		assert.Equal(t, "", newCfg.StagedDB)
		assert.Equal(t, "", newCfg.ActiveDB)
		assert.False(t, newCfg.Import.SkipDerivatives)
		assert.False(t, newCfg.Derivatives.Force)
		assert.Equal(t, "basic", newCfg.Check.Level)
		assert.Equal(t, "active", newCfg.Check.Target)
	})
}
