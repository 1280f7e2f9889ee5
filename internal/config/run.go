package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/banshee-data/flatland/internal/fsutil"
	"github.com/banshee-data/flatland/internal/input"
	"github.com/banshee-data/flatland/internal/units"
)

//go:embed flatland.defaults.json
var defaultsJSON []byte

// RunConfig holds the input bounds and output settings for a run.
// Every field is optional; the Get* methods fall back to the classic
// problem bounds for anything left unset.
type RunConfig struct {
	// Input bounds
	AngleMin    *float64 `json:"angle_min,omitempty"`
	AngleMax    *float64 `json:"angle_max,omitempty"`
	CountMax    *int     `json:"count_max,omitempty"`
	PositionMax *float64 `json:"position_max,omitempty"`
	HeightMin   *float64 `json:"height_min,omitempty"`
	HeightMax   *float64 `json:"height_max,omitempty"`
	AngleUnits  *string  `json:"angle_units,omitempty"` // "deg" or "rad"

	// Output
	Precision *int `json:"precision,omitempty"` // decimal digits printed
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyRunConfig returns a RunConfig with all fields set to nil.
func EmptyRunConfig() *RunConfig {
	return &RunConfig{}
}

// DefaultRunConfig returns a fresh copy of the embedded defaults file.
func DefaultRunConfig() (*RunConfig, error) {
	cfg := EmptyRunConfig()
	if err := json.Unmarshal(defaultsJSON, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse embedded defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid embedded defaults: %w", err)
	}
	return cfg, nil
}

// LoadRunConfig loads a RunConfig from a JSON file on fsys.
// The file must have a .json extension and be under 1MB. Fields omitted
// from the file keep the embedded defaults.
func LoadRunConfig(fsys fsutil.FileSystem, path string) (*RunConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	f, err := fsys.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	fileInfo, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := io.ReadAll(io.LimitReader(f, maxFileSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := DefaultRunConfig()
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configured bounds are usable.
func (c *RunConfig) Validate() error {
	if c.AngleMin != nil && *c.AngleMin <= 0 {
		return fmt.Errorf("angle_min must be positive, got %f", *c.AngleMin)
	}
	if c.AngleMax != nil && *c.AngleMax >= 90 {
		return fmt.Errorf("angle_max must be below 90, got %f", *c.AngleMax)
	}
	if c.GetAngleMin() > c.GetAngleMax() {
		return fmt.Errorf("angle_min (%f) exceeds angle_max (%f)", c.GetAngleMin(), c.GetAngleMax())
	}

	if c.CountMax != nil && *c.CountMax < 1 {
		return fmt.Errorf("count_max must be at least 1, got %d", *c.CountMax)
	}
	if c.PositionMax != nil && *c.PositionMax < 0 {
		return fmt.Errorf("position_max must be non-negative, got %f", *c.PositionMax)
	}
	if c.HeightMin != nil && *c.HeightMin <= 0 {
		return fmt.Errorf("height_min must be positive, got %f", *c.HeightMin)
	}
	if c.GetHeightMin() > c.GetHeightMax() {
		return fmt.Errorf("height_min (%f) exceeds height_max (%f)", c.GetHeightMin(), c.GetHeightMax())
	}

	if c.AngleUnits != nil && !units.IsValid(*c.AngleUnits) {
		return fmt.Errorf("angle_units must be one of %s, got %q", units.GetValidUnitsString(), *c.AngleUnits)
	}
	if c.Precision != nil && (*c.Precision < 0 || *c.Precision > 17) {
		return fmt.Errorf("precision must be between 0 and 17, got %d", *c.Precision)
	}

	return nil
}

// GetAngleMin returns the angle_min value or the default.
func (c *RunConfig) GetAngleMin() float64 {
	if c.AngleMin == nil {
		return 10
	}
	return *c.AngleMin
}

// GetAngleMax returns the angle_max value or the default.
func (c *RunConfig) GetAngleMax() float64 {
	if c.AngleMax == nil {
		return 80
	}
	return *c.AngleMax
}

// GetCountMax returns the count_max value or the default.
func (c *RunConfig) GetCountMax() int {
	if c.CountMax == nil {
		return 100_000
	}
	return *c.CountMax
}

// GetPositionMax returns the position_max value or the default.
func (c *RunConfig) GetPositionMax() float64 {
	if c.PositionMax == nil {
		return 300_000
	}
	return *c.PositionMax
}

// GetHeightMin returns the height_min value or the default.
func (c *RunConfig) GetHeightMin() float64 {
	if c.HeightMin == nil {
		return 1
	}
	return *c.HeightMin
}

// GetHeightMax returns the height_max value or the default.
func (c *RunConfig) GetHeightMax() float64 {
	if c.HeightMax == nil {
		return 1000
	}
	return *c.HeightMax
}

// GetAngleUnits returns the angle_units value or the default.
func (c *RunConfig) GetAngleUnits() string {
	if c.AngleUnits == nil {
		return units.Degrees
	}
	return *c.AngleUnits
}

// GetPrecision returns the precision value or the default.
func (c *RunConfig) GetPrecision() int {
	if c.Precision == nil {
		return 13
	}
	return *c.Precision
}

// Limits returns the input bounds described by the config.
func (c *RunConfig) Limits() input.Limits {
	limits := input.DefaultLimits()
	limits.AngleMin = c.GetAngleMin()
	limits.AngleMax = c.GetAngleMax()
	limits.CountMax = c.GetCountMax()
	limits.PositionMax = c.GetPositionMax()
	limits.HeightMin = c.GetHeightMin()
	limits.HeightMax = c.GetHeightMax()
	limits.AngleUnits = c.GetAngleUnits()
	return limits
}
