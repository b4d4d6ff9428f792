package astro

import (
	"errors"
	"math"
	"testing"
)

func TestAscendant_KnownValues(t *testing.T) {
	tests := []struct {
		name     string
		lst, lat float64
		expected float64
		tol      float64
	}{
		{"equator, LST 0", 0, 0, 90, 1e-9},
		{"equator, LST 90", 90, 0, 180, 1e-9},
		{"equator, LST 180", 180, 0, 270, 1e-9},
		{"equator, LST 270", 270, 0, 0, 1e-9},
		// tan(40°)·sin(ε) pulls the ascendant further from the MC.
		{"40N, LST 0", 0, 40, 108.45, 0.05},
		{"40S, LST 0", 0, -40, 71.55, 0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Ascendant(tt.lst, tt.lat, DefaultObliquity)
			if err != nil {
				t.Fatalf("Ascendant() error = %v", err)
			}
			if ShortestSeparation(got, tt.expected) > tt.tol {
				t.Errorf("Ascendant(%v, %v) = %v, want %v (±%v)", tt.lst, tt.lat, got, tt.expected, tt.tol)
			}
		})
	}
}

func TestAscendant_EquatorNearLSTPlus90(t *testing.T) {
	// At the equator the rising ecliptic point sits one quadrant east of the
	// meridian, offset only by the obliquity's projection.
	for lst := 0.0; lst < 360; lst += 7.5 {
		asc, err := Ascendant(lst, 0, DefaultObliquity)
		if err != nil {
			t.Fatalf("Ascendant(%v, 0) error = %v", lst, err)
		}
		if sep := ShortestSeparation(asc, lst+90); sep > 3 {
			t.Errorf("Ascendant(%v, 0) = %v, more than 3° from east point %v", lst, asc, Normalize(lst+90))
		}
	}
}

func TestAscendant_Range(t *testing.T) {
	for lat := -89.0; lat <= 89; lat += 11 {
		for lst := 0.0; lst < 360; lst += 13 {
			asc, err := Ascendant(lst, lat, DefaultObliquity)
			if err != nil {
				t.Fatalf("Ascendant(%v, %v) error = %v", lst, lat, err)
			}
			if asc < 0 || asc >= 360 || math.IsNaN(asc) {
				t.Errorf("Ascendant(%v, %v) = %v, out of [0,360)", lst, lat, asc)
			}
		}
	}
}

func TestAscendant_EastOfMidheavenOutsidePolarCircles(t *testing.T) {
	for _, lat := range []float64{-66, -45, -20, 0, 20, 45, 66} {
		for lst := 0.0; lst < 360; lst += 5 {
			asc, err := Ascendant(lst, lat, DefaultObliquity)
			if err != nil {
				t.Fatal(err)
			}
			arc := SignedArc(Midheaven(lst), asc)
			if arc <= 0 || arc >= 180 {
				t.Errorf("lat=%v lst=%v: MC→ASC arc = %v, want (0,180)", lat, lst, arc)
			}
		}
	}
}

func TestAscendant_RejectsPoles(t *testing.T) {
	for _, lat := range []float64{90, -90, 90.5, -120, math.NaN()} {
		for lst := 0.0; lst < 360; lst += 45 {
			_, err := Ascendant(lst, lat, DefaultObliquity)
			if err == nil {
				t.Fatalf("Ascendant(%v, %v) expected error", lst, lat)
			}
			if !errors.Is(err, ErrValidation) {
				t.Errorf("Ascendant(%v, %v) error %v is not a validation error", lst, lat, err)
			}
		}
	}
}

func TestAscendant_ObliquityIsAParameter(t *testing.T) {
	// With a zero tilt the ecliptic is the equator: ASC is exactly LST+90 everywhere.
	for _, lat := range []float64{-50, 0, 35} {
		asc, err := Ascendant(30, lat, 0)
		if err != nil {
			t.Fatal(err)
		}
		if ShortestSeparation(asc, 120) > 1e-9 {
			t.Errorf("Ascendant(30, %v, 0) = %v, want 120", lat, asc)
		}
	}
}

func TestMidheaven(t *testing.T) {
	tests := []struct {
		lst, want float64
	}{
		{0, 0},
		{123.25, 123.25},
		{-30, 330},
		{400, 40},
	}
	for _, tt := range tests {
		if got := Midheaven(tt.lst); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Midheaven(%v) = %v, want %v", tt.lst, got, tt.want)
		}
	}
}

func TestEclipticEquatorialConversion(t *testing.T) {
	// Cardinal points coincide in both systems.
	for _, lon := range []float64{0, 90, 180, 270} {
		if got := EclipticToRA(lon, DefaultObliquity); ShortestSeparation(got, lon) > 1e-9 {
			t.Errorf("EclipticToRA(%v) = %v, want %v", lon, got, lon)
		}
	}

	for lon := 0.0; lon < 360; lon += 17 {
		ra := EclipticToRA(lon, DefaultObliquity)
		back := RAToEcliptic(ra, DefaultObliquity)
		if ShortestSeparation(back, lon) > 1e-9 {
			t.Errorf("round trip %v -> %v -> %v", lon, ra, back)
		}
		// The two systems never differ by more than ~2.5°.
		if ShortestSeparation(ra, lon) > 2.6 {
			t.Errorf("EclipticToRA(%v) = %v, too far from longitude", lon, ra)
		}
	}
}

func TestEclipticDeclination(t *testing.T) {
	if got := EclipticDeclination(90, DefaultObliquity); math.Abs(got-DefaultObliquity) > 1e-9 {
		t.Errorf("declination at 90° = %v, want %v", got, DefaultObliquity)
	}
	if got := EclipticDeclination(270, DefaultObliquity); math.Abs(got+DefaultObliquity) > 1e-9 {
		t.Errorf("declination at 270° = %v, want %v", got, -DefaultObliquity)
	}
	if got := EclipticDeclination(0, DefaultObliquity); math.Abs(got) > 1e-9 {
		t.Errorf("declination at 0° = %v, want 0", got)
	}
}
