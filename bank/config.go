// Package bank holds the configuration of a filament bank and the
// dimensions derived from it. All lengths are in millimetres and all
// angles in degrees.
package bank

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Config holds the base parameters of one filament bank. Every other
// dimension is derived from these on demand.
type Config struct {
	Name          string `yaml:"name" toml:"name"`
	OutputDir     string `yaml:"output_dir" toml:"output_dir"`
	FilamentCount int    `yaml:"filament_count" toml:"filament_count"` // spools held side by side
	Material      string `yaml:"material" toml:"material"`             // pla, petg or abs

	// Tolerance is the clearance added to mating dimensions.
	Tolerance float64 `yaml:"tolerance" toml:"tolerance"`
	// MinimumThickness is the thinnest feature that prints reliably.
	MinimumThickness float64 `yaml:"minimum_thickness" toml:"minimum_thickness"`
	// MinimumStructureThickness is the thinnest load bearing wall.
	MinimumStructureThickness float64 `yaml:"minimum_structure_thickness" toml:"minimum_structure_thickness"`

	Spool     SpoolConfig     `yaml:"spool" toml:"spool"`
	Wheel     WheelConfig     `yaml:"wheel" toml:"wheel"`
	Bearing   BearingConfig   `yaml:"bearing" toml:"bearing"`
	Frame     FrameConfig     `yaml:"frame" toml:"frame"`
	Wall      WallConfig      `yaml:"wall" toml:"wall"`
	TwistSnap TwistSnapConfig `yaml:"twist_snap" toml:"twist_snap"`
	LockPin   LockPinConfig   `yaml:"lock_pin" toml:"lock_pin"`
	Render    RenderConfig    `yaml:"render" toml:"render"`
}

// SpoolConfig describes the filament spools the bank holds.
type SpoolConfig struct {
	Diameter float64 `yaml:"diameter" toml:"diameter"`
	Width    float64 `yaml:"width" toml:"width"`
	// CradleAngle is the angle between the two wheels as seen from the
	// spool axis.
	CradleAngle float64 `yaml:"cradle_angle" toml:"cradle_angle"`
}

// WheelConfig describes the wheels the spool rests on.
type WheelConfig struct {
	Diameter     float64 `yaml:"diameter" toml:"diameter"`
	Thickness    float64 `yaml:"thickness" toml:"thickness"`
	LipHeight    float64 `yaml:"lip_height" toml:"lip_height"`
	LipThickness float64 `yaml:"lip_thickness" toml:"lip_thickness"`
	SpokeCount   int     `yaml:"spoke_count" toml:"spoke_count"` // 0 for a solid web
	RimThickness float64 `yaml:"rim_thickness" toml:"rim_thickness"`
}

// BearingConfig describes the print in place roller bearing in each wheel.
type BearingConfig struct {
	AxleDiameter   float64 `yaml:"axle_diameter" toml:"axle_diameter"`
	RollerDiameter float64 `yaml:"roller_diameter" toml:"roller_diameter"`
	RingThickness  float64 `yaml:"ring_thickness" toml:"ring_thickness"`
	RollerCount    int     `yaml:"roller_count" toml:"roller_count"` // 0 derives the count
}

type FrameConfig struct {
	BaseDepth       float64 `yaml:"base_depth" toml:"base_depth"`
	ConnectorLength float64 `yaml:"connector_length" toml:"connector_length"`
}

type WallConfig struct {
	Thickness          float64 `yaml:"thickness" toml:"thickness"`
	GuidewallThickness float64 `yaml:"guidewall_thickness" toml:"guidewall_thickness"`
	TubeDiameter       float64 `yaml:"tube_diameter" toml:"tube_diameter"`
	LighteningHoles    bool    `yaml:"lightening_holes" toml:"lightening_holes"`
}

// TwistSnapConfig describes the bayonet fastener holding the sidewalls.
type TwistSnapConfig struct {
	Diameter     float64 `yaml:"diameter" toml:"diameter"`
	Height       float64 `yaml:"height" toml:"height"`
	LugCount     int     `yaml:"lug_count" toml:"lug_count"`
	LugDepth     float64 `yaml:"lug_depth" toml:"lug_depth"`
	TwistDegrees float64 `yaml:"twist_degrees" toml:"twist_degrees"`
}

type LockPinConfig struct {
	Diameter float64 `yaml:"diameter" toml:"diameter"`
}

// RenderConfig controls meshing of the parts.
type RenderConfig struct {
	// Resolution is the number of cells along the longest axis of a part.
	Resolution int  `yaml:"resolution" toml:"resolution"`
	Preview    bool `yaml:"preview" toml:"preview"`

	// CompensateShrink scales every exported part up by the material's
	// thermal shrinkage.
	CompensateShrink bool `yaml:"compensate_shrink" toml:"compensate_shrink"`
}

// DefaultConfig returns the configuration of a four spool bank for
// standard 1kg spools.
func DefaultConfig() *Config {
	return &Config{
		Name:                      "default",
		OutputDir:                 "stl",
		FilamentCount:             4,
		Material:                  "pla",
		Tolerance:                 0.2,
		MinimumThickness:          1.0,
		MinimumStructureThickness: 4.0,
		Spool: SpoolConfig{
			Diameter:    200,
			Width:       70,
			CradleAngle: 60,
		},
		Wheel: WheelConfig{
			Diameter:     70,
			Thickness:    10,
			LipHeight:    2,
			LipThickness: 1.5,
			SpokeCount:   5,
			RimThickness: 3,
		},
		Bearing: BearingConfig{
			AxleDiameter:   4,
			RollerDiameter: 4,
			RingThickness:  1.6,
		},
		Frame: FrameConfig{
			BaseDepth:       8,
			ConnectorLength: 20,
		},
		Wall: WallConfig{
			Thickness:          3,
			GuidewallThickness: 2,
			TubeDiameter:       4.2,
			LighteningHoles:    true,
		},
		TwistSnap: TwistSnapConfig{
			Diameter:     8,
			Height:       6,
			LugCount:     2,
			LugDepth:     1,
			TwistDegrees: 45,
		},
		LockPin: LockPinConfig{
			Diameter: 3,
		},
		Render: RenderConfig{
			Resolution: 200,
			Preview:    true,
		},
	}
}

type format int

const (
	formatYAML format = iota
	formatTOML
)

func formatOf(path string) (format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return formatYAML, nil
	case ".toml":
		return formatTOML, nil
	default:
		return 0, fmt.Errorf("unsupported config extension %q (want .yaml, .yml or .toml)", ext)
	}
}

// Load reads a YAML or TOML configuration file, chosen by extension.
// Fields missing from the file keep their default value. A config
// without a name is named after its file.
func Load(path string) (*Config, error) {
	f, err := formatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg := DefaultConfig()
	cfg.Name = ""
	switch f {
	case formatYAML:
		err = yaml.Unmarshal(data, cfg)
	case formatTOML:
		_, err = toml.Decode(string(data), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return cfg, nil
}

// Save writes the configuration to path as YAML or TOML, chosen by extension.
func (c *Config) Save(path string) error {
	f, err := formatOf(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	var data []byte
	switch f {
	case formatYAML:
		data, err = yaml.Marshal(c)
	case formatTOML:
		var buf bytes.Buffer
		err = toml.NewEncoder(&buf).Encode(c)
		data = buf.Bytes()
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
