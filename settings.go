package mpath

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// SmoothingMethod selects the post-processing applied to a found path.
type SmoothingMethod uint8

const (
	// SmoothingNone returns the raw A* path.
	SmoothingNone SmoothingMethod = iota
	// SmoothingSimple drops waypoints that continue in the same direction.
	SmoothingSimple
	// SmoothingStringPulling jumps to the furthest waypoint in line of sight.
	SmoothingStringPulling
)

func (m SmoothingMethod) String() string {
	switch m {
	case SmoothingNone:
		return "none"
	case SmoothingSimple:
		return "simple"
	case SmoothingStringPulling:
		return "string_pulling"
	default:
		return "smoothing(" + strconv.Itoa(int(m)) + ")"
	}
}

func (m SmoothingMethod) valid() bool { return m <= SmoothingStringPulling }

// MarshalText implements encoding.TextMarshaler.
func (m SmoothingMethod) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, fmt.Errorf("%w: unknown smoothing method %d", ErrInvalidSettings, m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *SmoothingMethod) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "none":
		*m = SmoothingNone
	case "simple":
		*m = SmoothingSimple
	case "string_pulling", "string-pulling", "stringpulling":
		*m = SmoothingStringPulling
	default:
		return fmt.Errorf("%w: unknown smoothing method %q", ErrInvalidSettings, text)
	}
	return nil
}

// Settings configures a Pathfinder. It is copied at construction and never
// changes afterwards.
type Settings struct {
	DiagonalMovement bool `yaml:"diagonal_movement"`
	// CornerCutting allows a diagonal step even when both flanking
	// orthogonal cells are blocked.
	CornerCutting bool `yaml:"corner_cutting"`
	// BlockOccupied treats occupied cells as blocked.
	BlockOccupied      bool            `yaml:"block_occupied"`
	CellWeights        bool            `yaml:"cell_weights"`
	StraightMultiplier float32         `yaml:"straight_multiplier" validate:"finite,gte=0"`
	DiagonalMultiplier float32         `yaml:"diagonal_multiplier" validate:"finite,gte=0"`
	Smoothing          SmoothingMethod `yaml:"smoothing" validate:"lte=2"`
	// InitialBufferSize pre-sizes the open set. Zero uses the default.
	InitialBufferSize int `yaml:"initial_buffer_size" validate:"gte=0"`
}

// DefaultSettings returns the settings used when none are supplied.
func DefaultSettings() Settings {
	return Settings{
		DiagonalMovement:   true,
		CornerCutting:      false,
		BlockOccupied:      true,
		CellWeights:        true,
		StraightMultiplier: 1.0,
		DiagonalMultiplier: 1.41,
		Smoothing:          SmoothingNone,
	}
}

// settingsValidate checks the validate tags on Settings.
var settingsValidate *validator.Validate

func init() {
	settingsValidate = validator.New()
	_ = settingsValidate.RegisterValidation("finite", validateFinite)
}

// validateFinite rejects NaN and infinite floats.
func validateFinite(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Validate checks that the settings can drive a search.
func (s Settings) Validate() error {
	if err := settingsValidate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	return nil
}

// LoadSettings builds settings from defaults, then the YAML file at path (if
// path is non-empty and the file exists), then MPATH_* environment variables.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()

	if path != "" {
		if err := loadSettingsFile(path, &settings); err != nil {
			return settings, fmt.Errorf("load settings file: %w", err)
		}
	}

	if err := loadSettingsFromEnv(&settings); err != nil {
		return settings, fmt.Errorf("load settings from env: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}

func loadSettingsFile(path string, settings *Settings) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil // keep defaults
		}
		return err
	}
	return yaml.Unmarshal(data, settings)
}

func loadSettingsFromEnv(settings *Settings) error {
	bools := []struct {
		name string
		dst  *bool
	}{
		{"MPATH_DIAGONAL_MOVEMENT", &settings.DiagonalMovement},
		{"MPATH_CORNER_CUTTING", &settings.CornerCutting},
		{"MPATH_BLOCK_OCCUPIED", &settings.BlockOccupied},
		{"MPATH_CELL_WEIGHTS", &settings.CellWeights},
	}
	for _, b := range bools {
		v := os.Getenv(b.name)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidSettings, b.name, v)
		}
		*b.dst = parsed
	}

	floats := []struct {
		name string
		dst  *float32
	}{
		{"MPATH_STRAIGHT_MULTIPLIER", &settings.StraightMultiplier},
		{"MPATH_DIAGONAL_MULTIPLIER", &settings.DiagonalMultiplier},
	}
	for _, f := range floats {
		v := os.Getenv(f.name)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 32)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidSettings, f.name, v)
		}
		*f.dst = float32(parsed)
	}

	if v := os.Getenv("MPATH_SMOOTHING"); v != "" {
		if err := settings.Smoothing.UnmarshalText([]byte(v)); err != nil {
			return err
		}
	}
	if v := os.Getenv("MPATH_INITIAL_BUFFER_SIZE"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: MPATH_INITIAL_BUFFER_SIZE=%q", ErrInvalidSettings, v)
		}
		settings.InitialBufferSize = parsed
	}
	return nil
}
