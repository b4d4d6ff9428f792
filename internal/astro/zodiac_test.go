package astro

import (
	"math"
	"testing"
)

func TestSignOf(t *testing.T) {
	tests := []struct {
		lon  float64
		want Sign
	}{
		{0, Aries},
		{29.999, Aries},
		{30, Taurus},
		{75.5, Gemini},
		{180, Libra},
		{359.9, Pisces},
		{-10, Pisces},
		{390, Taurus},
	}
	for _, tt := range tests {
		if got := SignOf(tt.lon); got != tt.want {
			t.Errorf("SignOf(%v) = %v, want %v", tt.lon, got, tt.want)
		}
	}
}

func TestSignString(t *testing.T) {
	if Aries.String() != "Aries" || Pisces.String() != "Pisces" {
		t.Errorf("unexpected sign names: %v %v", Aries, Pisces)
	}
	if Sagittarius.Abbrev() != "Sag" {
		t.Errorf("Sagittarius.Abbrev() = %q", Sagittarius.Abbrev())
	}
	if Sign(12).String() != "Unknown" {
		t.Errorf("Sign(12) = %q, want Unknown", Sign(12).String())
	}
}

func TestDegreeInSign(t *testing.T) {
	if got := DegreeInSign(75.5); math.Abs(got-15.5) > 1e-9 {
		t.Errorf("DegreeInSign(75.5) = %v, want 15.5", got)
	}
	if got := DegreeInSign(-1); math.Abs(got-29) > 1e-9 {
		t.Errorf("DegreeInSign(-1) = %v, want 29", got)
	}
}

func TestFormatLongitude(t *testing.T) {
	tests := []struct {
		lon  float64
		want string
	}{
		{75.5, "15°30' Gemini"},
		{0, "0°00' Aries"},
		{359.999, "0°00' Aries"},
		{29.9999, "0°00' Taurus"},
		{200.25, "20°15' Libra"},
		{math.NaN(), "NaN"},
	}
	for _, tt := range tests {
		if got := FormatLongitude(tt.lon); got != tt.want {
			t.Errorf("FormatLongitude(%v) = %q, want %q", tt.lon, got, tt.want)
		}
	}
}
