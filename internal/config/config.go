// Package config loads ls-natal settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-natal/internal/aspects"
	"github.com/litescript/ls-natal/internal/chart"
	"github.com/litescript/ls-natal/internal/ephem"
	"github.com/litescript/ls-natal/internal/houses"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "LS_NATAL_"

type Config struct {
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn warning error"`
		Format string `yaml:"format" default:"console" validate:"oneof=console json"`
	} `yaml:"log"`
	Chart struct {
		HouseSystem string  `yaml:"house_system" default:"placidus" validate:"oneof=placidus koch equal"`
		Obliquity   float64 `yaml:"obliquity" default:"23.4367" validate:"gt=0,lt=90"`
		ExactOrb    float64 `yaml:"exact_orb" default:"1" validate:"gte=0,lte=10"`
	} `yaml:"chart"`
	// Aspects replaces the default aspect table when non-empty.
	Aspects  []Aspect `yaml:"aspects" validate:"dive"`
	Location Location `yaml:"location"`
}

type Aspect struct {
	Kind  string  `yaml:"kind" validate:"required"`
	Angle float64 `yaml:"angle" validate:"gte=0,lte=180"`
	Orb   float64 `yaml:"orb" validate:"gte=0,lte=30"`
}

// Location is the default place used when none is given on the command line.
type Location struct {
	Name      string  `yaml:"name" default:"Greenwich"`
	Latitude  float64 `yaml:"latitude" default:"51.4769" validate:"gte=-90,lte=90"`
	Longitude float64 `yaml:"longitude" validate:"gte=-180,lte=180"`
	TZOffset  float64 `yaml:"tz_offset" validate:"gte=-12,lte=14"`
}

// Default returns the built-in configuration.
func Default() *Config {
	var c Config
	if err := defaults.Set(&c); err != nil {
		panic(fmt.Sprintf("config defaults: %v", err))
	}
	return &c
}

// Load reads and parses a YAML configuration file. Keys missing from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(b)
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(b []byte) (*Config, error) {
	c := Default()
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads config from YAML (or the defaults when path is empty)
// and applies LS_NATAL_* environment overrides.
func LoadWithEnv(path string) (*Config, error) {
	c := Default()
	if path != "" {
		var err error
		if c, err = Load(path); err != nil {
			return nil, err
		}
	}
	if err := c.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(EnvPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *float64) error {
		v, ok := lookup(EnvPrefix + key)
		if !ok || v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
		}
		*dst = f
		return nil
	}

	str("LOG_LEVEL", &c.Log.Level)
	str("LOG_FORMAT", &c.Log.Format)
	str("HOUSE_SYSTEM", &c.Chart.HouseSystem)
	str("LOCATION_NAME", &c.Location.Name)
	c.Chart.HouseSystem = strings.ToLower(c.Chart.HouseSystem)

	return errors.Join(
		num("OBLIQUITY", &c.Chart.Obliquity),
		num("EXACT_ORB", &c.Chart.ExactOrb),
		num("LATITUDE", &c.Location.Latitude),
		num("LONGITUDE", &c.Location.Longitude),
		num("TZ_OFFSET", &c.Location.TZOffset),
	)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks every field constraint and reports all failures at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation: %s", field, fe.Tag())
	}
}

// HouseSystem returns the configured house system.
func (c *Config) HouseSystem() (houses.System, error) {
	return houses.ParseSystem(c.Chart.HouseSystem)
}

// Detector builds the aspect detector from the configured table and exact orb.
func (c *Config) Detector() *aspects.Detector {
	d := aspects.NewDetector()
	d.ExactOrb = c.Chart.ExactOrb
	if len(c.Aspects) > 0 {
		d.Table = make([]aspects.Definition, 0, len(c.Aspects))
		for _, a := range c.Aspects {
			d.Table = append(d.Table, aspects.Definition{
				Kind:  aspects.Kind(strings.ToLower(a.Kind)),
				Angle: a.Angle,
				Orb:   a.Orb,
			})
		}
	}
	return d
}

// ChartOptions assembles chart.Options from the configuration. The ephemeris
// is always the mean-element approximator.
func (c *Config) ChartOptions() (chart.Options, error) {
	sys, err := c.HouseSystem()
	if err != nil {
		return chart.Options{}, err
	}
	return chart.Options{
		HouseSystem: sys,
		Obliquity:   c.Chart.Obliquity,
		Aspects:     c.Detector(),
		Provider:    ephem.NewApproximator(ephem.DefaultTerms()),
	}, nil
}

// Place returns the configured location as a chart coordinate.
func (c *Config) Place() chart.GeoCoordinate {
	return chart.GeoCoordinate{Latitude: c.Location.Latitude, Longitude: c.Location.Longitude}
}
