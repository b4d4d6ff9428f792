package chart

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/litescript/ls-natal/internal/astro"
)

// BirthMoment is a local civil date and time with its offset from UT.
type BirthMoment struct {
	Year     int     `json:"year" validate:"gte=1582,lte=2100"`
	Month    int     `json:"month" validate:"gte=1,lte=12"`
	Day      int     `json:"day" validate:"gte=1,lte=31"`
	Hour     int     `json:"hour" validate:"gte=0,lte=23"`
	Minute   int     `json:"minute" validate:"gte=0,lte=59"`
	Second   int     `json:"second" validate:"gte=0,lte=59"`
	TZOffset float64 `json:"tz_offset" validate:"gte=-12,lte=14"`
}

// MomentFromTime converts t to a BirthMoment in t's own zone.
func MomentFromTime(t time.Time) BirthMoment {
	_, offset := t.Zone()
	return BirthMoment{
		Year:     t.Year(),
		Month:    int(t.Month()),
		Day:      t.Day(),
		Hour:     t.Hour(),
		Minute:   t.Minute(),
		Second:   t.Second(),
		TZOffset: float64(offset) / 3600,
	}
}

// Time returns the moment as a time.Time in a fixed zone at TZOffset.
func (m BirthMoment) Time() time.Time {
	zone := time.FixedZone(formatOffset(m.TZOffset), int(m.TZOffset*3600))
	return time.Date(m.Year, time.Month(m.Month), m.Day, m.Hour, m.Minute, m.Second, 0, zone)
}

// Add returns the moment shifted by d, keeping the same offset.
func (m BirthMoment) Add(d time.Duration) BirthMoment {
	out := MomentFromTime(m.Time().Add(d))
	out.TZOffset = m.TZOffset
	return out
}

// String formats the moment as "2006-01-02 15:04:05 UTC-05:00".
func (m BirthMoment) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d %s",
		m.Year, m.Month, m.Day, m.Hour, m.Minute, m.Second, formatOffset(m.TZOffset))
}

func formatOffset(h float64) string {
	sign := '+'
	if h < 0 {
		sign = '-'
		h = -h
	}
	mins := int(h*60 + 0.5)
	return fmt.Sprintf("UTC%c%02d:%02d", sign, mins/60, mins%60)
}

// GeoCoordinate is a place on Earth in degrees, east longitude positive.
type GeoCoordinate struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// String formats the coordinate as "40.7128°N 74.0060°W".
func (g GeoCoordinate) String() string {
	ns, ew := 'N', 'E'
	lat, lon := g.Latitude, g.Longitude
	if lat < 0 {
		ns, lat = 'S', -lat
	}
	if lon < 0 {
		ew, lon = 'W', -lon
	}
	return fmt.Sprintf("%.4f°%c %.4f°%c", lat, ns, lon, ew)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// validateInput checks struct tags and reports the first failing field as an
// astro.ValidationError so callers see a single error kind.
func validateInput(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err
	}
	fe := verrs[0]
	return &astro.ValidationError{
		Field:  fe.Field(),
		Value:  toFloat(fe.Value()),
		Reason: reasonFor(fe),
	}
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	default:
		return fmt.Sprintf("failed validation: %s", fe.Tag())
	}
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case int:
		return float64(x)
	case float64:
		return x
	default:
		return 0
	}
}
