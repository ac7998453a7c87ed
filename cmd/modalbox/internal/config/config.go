// Package config loads modalbox.yaml and layers environment variables and
// command-line flags over it.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/modalbox/pkg/animation"
	"github.com/go-drift/modalbox/pkg/modal"
)

// FileName is the options file looked up in the working directory.
const FileName = "modalbox.yaml"

// SchemaVersion is the newest options file schema this build understands.
const SchemaVersion = "v1.0.0"

// EnvPrefix prefixes environment overrides, e.g. MODALBOX_MODAL_ANCHOR.
const EnvPrefix = "MODALBOX"

// File represents modalbox.yaml.
type File struct {
	Version string      `yaml:"version,omitempty" mapstructure:"version"`
	Modal   ModalConfig `yaml:"modal" mapstructure:"modal"`
	Demo    DemoConfig  `yaml:"demo" mapstructure:"demo"`
}

// ModalConfig mirrors modal.Options in file form.
type ModalConfig struct {
	Anchor               string        `yaml:"anchor" mapstructure:"anchor"`
	Entry                string        `yaml:"entry" mapstructure:"entry"`
	SwipeToClose         bool          `yaml:"swipe_to_close" mapstructure:"swipe_to_close"`
	SwipeThreshold       float64       `yaml:"swipe_threshold" mapstructure:"swipe_threshold"`
	SwipeArea            float64       `yaml:"swipe_area" mapstructure:"swipe_area"`
	Backdrop             bool          `yaml:"backdrop" mapstructure:"backdrop"`
	BackdropOpacity      float64       `yaml:"backdrop_opacity" mapstructure:"backdrop_opacity"`
	BackdropColor        string        `yaml:"backdrop_color" mapstructure:"backdrop_color"`
	BackdropPressToClose bool          `yaml:"backdrop_press_to_close" mapstructure:"backdrop_press_to_close"`
	AnimationDuration    time.Duration `yaml:"animation_duration" mapstructure:"animation_duration"`
	Easing               string        `yaml:"easing" mapstructure:"easing"`
	Disabled             bool          `yaml:"disabled" mapstructure:"disabled"`
	KeyboardTopOffset    float64       `yaml:"keyboard_top_offset" mapstructure:"keyboard_top_offset"`
	CoverScreen          bool          `yaml:"cover_screen" mapstructure:"cover_screen"`
	StartOpen            bool          `yaml:"start_open" mapstructure:"start_open"`
	BackButtonClose      bool          `yaml:"back_button_close" mapstructure:"back_button_close"`
}

// DemoConfig configures the terminal demo host.
type DemoConfig struct {
	// ContentRows is the height of the modal content in terminal rows.
	ContentRows int `yaml:"content_rows" mapstructure:"content_rows"`
	// ContentColumns is the width of the modal content in terminal columns.
	ContentColumns int `yaml:"content_columns" mapstructure:"content_columns"`
	// FPS is the frame rate the scheduler is stepped at.
	FPS int `yaml:"fps" mapstructure:"fps"`
}

// Default returns a File holding modal.DefaultOptions.
func Default() *File {
	o := modal.DefaultOptions()
	return &File{
		Version: SchemaVersion,
		Modal: ModalConfig{
			Anchor:               o.Anchor.String(),
			Entry:                o.Entry.String(),
			SwipeToClose:         o.SwipeToClose,
			SwipeThreshold:       o.SwipeThreshold,
			SwipeArea:            o.SwipeArea,
			Backdrop:             o.Backdrop,
			BackdropOpacity:      o.BackdropOpacity,
			BackdropColor:        o.BackdropColor,
			BackdropPressToClose: o.BackdropPressToClose,
			AnimationDuration:    o.AnimationDuration,
			Easing:               "elastic",
			Disabled:             o.Disabled,
			KeyboardTopOffset:    o.KeyboardTopOffset,
			CoverScreen:          o.CoverScreen,
			StartOpen:            o.StartOpen,
			BackButtonClose:      o.BackButtonClose,
		},
		Demo: DemoConfig{
			ContentRows:    12,
			ContentColumns: 48,
			FPS:            60,
		},
	}
}

// LoadOptional reads modalbox.yaml from dir if present. A missing file
// yields the defaults.
func LoadOptional(dir string) (*File, error) {
	f, err := Load(filepath.Join(dir, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return f, err
}

// Load reads the options file at path over the defaults. Keys absent from
// the file keep their default values.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	f := Default()
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := checkVersion(f.Version); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"anchor":            "modal.anchor",
	"entry":             "modal.entry",
	"swipe":             "modal.swipe_to_close",
	"threshold":         "modal.swipe_threshold",
	"swipe-area":        "modal.swipe_area",
	"backdrop":          "modal.backdrop",
	"opacity":           "modal.backdrop_opacity",
	"duration":          "modal.animation_duration",
	"easing":            "modal.easing",
	"cover-screen":      "modal.cover_screen",
	"start-open":        "modal.start_open",
	"back-button-close": "modal.back_button_close",
	"fps":               "demo.fps",
}

// Resolve loads the options file at path (or modalbox.yaml in the working
// directory when path is empty) and applies MODALBOX_* environment
// variables, then any flags in flags that were set explicitly.
func Resolve(path string, flags *pflag.FlagSet) (*File, error) {
	var (
		f   *File
		err error
	)
	if path == "" {
		f, err = LoadOptional(".")
	} else {
		f, err = Load(path)
	}
	if err != nil {
		return nil, err
	}

	data, err := yaml.Marshal(f)
	if err != nil {
		return nil, fmt.Errorf("failed to encode options: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to load options: %w", err)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if fl := flags.Lookup(name); fl != nil {
				if err := v.BindPFlag(key, fl); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var out File
	if err := v.Unmarshal(&out); err != nil {
		return nil, fmt.Errorf("failed to resolve options: %w", err)
	}
	if err := checkVersion(out.Version); err != nil {
		return nil, err
	}
	return &out, nil
}

func checkVersion(version string) error {
	if version == "" {
		return nil
	}
	if !semver.IsValid(version) {
		return fmt.Errorf("invalid schema version %q", version)
	}
	if semver.Major(version) != semver.Major(SchemaVersion) || semver.Compare(version, SchemaVersion) > 0 {
		return fmt.Errorf("unsupported schema version %s (this build reads up to %s)", version, SchemaVersion)
	}
	return nil
}

// Options converts the file into modal.Options, resolving curve names with
// animation.CurveByName, and validates the result.
func (f *File) Options() (modal.Options, error) {
	c := f.Modal
	anchor, err := modal.ParseAnchor(c.Anchor)
	if err != nil {
		return modal.Options{}, err
	}
	entry, err := modal.ParseEntry(c.Entry)
	if err != nil {
		return modal.Options{}, err
	}
	curve, ok := animation.CurveByName(c.Easing)
	if !ok {
		return modal.Options{}, fmt.Errorf("unknown easing %q", c.Easing)
	}

	o := modal.DefaultOptions()
	o.Anchor = anchor
	o.Entry = entry
	o.SwipeToClose = c.SwipeToClose
	o.SwipeThreshold = c.SwipeThreshold
	o.SwipeArea = c.SwipeArea
	o.Backdrop = c.Backdrop
	o.BackdropOpacity = c.BackdropOpacity
	o.BackdropColor = c.BackdropColor
	o.BackdropPressToClose = c.BackdropPressToClose
	o.AnimationDuration = c.AnimationDuration
	o.Easing = curve
	o.Disabled = c.Disabled
	o.KeyboardTopOffset = c.KeyboardTopOffset
	o.CoverScreen = c.CoverScreen
	o.StartOpen = c.StartOpen
	o.BackButtonClose = c.BackButtonClose

	if err := o.Validate(); err != nil {
		return modal.Options{}, err
	}
	return o, nil
}
