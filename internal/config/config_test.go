package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-natal/internal/aspects"
	"github.com/litescript/ls-natal/internal/astro"
	"github.com/litescript/ls-natal/internal/houses"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, "console", c.Log.Format)
	assert.Equal(t, "placidus", c.Chart.HouseSystem)
	assert.Equal(t, astro.DefaultObliquity, c.Chart.Obliquity)
	assert.Equal(t, aspects.DefaultExactOrb, c.Chart.ExactOrb)
	assert.Equal(t, "Greenwich", c.Location.Name)
	assert.InDelta(t, 51.4769, c.Location.Latitude, 1e-9)
	assert.Empty(t, c.Aspects)
	assert.NoError(t, c.Validate())
}

func TestParse_OverridesDefaults(t *testing.T) {
	c, err := Parse([]byte(`
log:
  level: debug
chart:
  house_system: koch
location:
  name: Quito
  latitude: 0
  longitude: -78.4678
  tz_offset: -5
`))
	require.NoError(t, err)

	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "console", c.Log.Format, "unset keys keep defaults")
	assert.Equal(t, "koch", c.Chart.HouseSystem)
	assert.Equal(t, astro.DefaultObliquity, c.Chart.Obliquity)
	assert.Equal(t, "Quito", c.Location.Name)
	assert.Zero(t, c.Location.Latitude, "explicit zero must not be replaced by the default")
	assert.Equal(t, -5.0, c.Location.TZOffset)

	sys, err := c.HouseSystem()
	require.NoError(t, err)
	assert.Equal(t, houses.SystemKoch, sys)
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad level", "log: {level: loud}", "log.level must be one of"},
		{"bad system", "chart: {house_system: porphyry}", "chart.house_system must be one of"},
		{"zero obliquity", "chart: {obliquity: 0}", "chart.obliquity must be greater than 0"},
		{"latitude", "location: {latitude: 95}", "location.latitude must be less than or equal to 90"},
		{"tz", "location: {tz_offset: -13}", "location.tz_offset must be greater than or equal to -12"},
		{"aspect kind", "aspects: [{angle: 90, orb: 5}]", "aspects[0].kind is required"},
		{"aspect angle", "aspects: [{kind: x, angle: 200, orb: 5}]", "aspects[0].angle"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParse_ReportsAllFailures(t *testing.T) {
	_, err := Parse([]byte("log: {level: loud, format: xml}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log.level")
	assert.Contains(t, err.Error(), "log.format")
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("chart: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoadWithEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "natal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chart: {house_system: equal}\n"), 0o644))

	t.Setenv("LS_NATAL_HOUSE_SYSTEM", "KOCH")
	t.Setenv("LS_NATAL_LATITUDE", "-33.87")
	t.Setenv("LS_NATAL_LOG_LEVEL", "error")

	c, err := LoadWithEnv(path)
	require.NoError(t, err)
	assert.Equal(t, "koch", c.Chart.HouseSystem)
	assert.Equal(t, -33.87, c.Location.Latitude)
	assert.Equal(t, "error", c.Log.Level)
}

func TestLoadWithEnv_NoFile(t *testing.T) {
	t.Setenv("LS_NATAL_TZ_OFFSET", "5.5")
	c, err := LoadWithEnv("")
	require.NoError(t, err)
	assert.Equal(t, 5.5, c.Location.TZOffset)
	assert.Equal(t, "placidus", c.Chart.HouseSystem)
}

func TestLoadWithEnv_BadValues(t *testing.T) {
	t.Setenv("LS_NATAL_LONGITUDE", "west")
	_, err := LoadWithEnv("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LS_NATAL_LONGITUDE")

	t.Setenv("LS_NATAL_LONGITUDE", "200")
	_, err = LoadWithEnv("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "location.longitude")
}

func TestApplyEnv_IgnoresEmpty(t *testing.T) {
	c := Default()
	env := map[string]string{EnvPrefix + "LOG_FORMAT": "", EnvPrefix + "OBLIQUITY": "23.5"}
	require.NoError(t, c.applyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}))
	assert.Equal(t, "console", c.Log.Format)
	assert.Equal(t, 23.5, c.Chart.Obliquity)
}

func TestDetector(t *testing.T) {
	c := Default()
	d := c.Detector()
	assert.Equal(t, aspects.DefaultTable(), d.Table)
	assert.Equal(t, 1.0, d.ExactOrb)

	c, err := Parse([]byte(`
chart: {exact_orb: 0.5}
aspects:
  - {kind: Quincunx, angle: 150, orb: 2}
  - {kind: square, angle: 90, orb: 6}
`))
	require.NoError(t, err)
	d = c.Detector()
	assert.Equal(t, 0.5, d.ExactOrb)
	assert.Equal(t, []aspects.Definition{
		{Kind: "quincunx", Angle: 150, Orb: 2},
		{Kind: aspects.Square, Angle: 90, Orb: 6},
	}, d.Table)
}

func TestChartOptions(t *testing.T) {
	c := Default()
	c.Chart.HouseSystem = "equal"
	c.Chart.Obliquity = 23.44

	opts, err := c.ChartOptions()
	require.NoError(t, err)
	assert.Equal(t, houses.SystemEqual, opts.HouseSystem)
	assert.Equal(t, 23.44, opts.Obliquity)
	require.NotNil(t, opts.Aspects)
	require.NotNil(t, opts.Provider)
	assert.Equal(t, "mean-elements", opts.Provider.Name())

	c.Chart.HouseSystem = "bogus"
	_, err = c.ChartOptions()
	assert.Error(t, err)
}

func TestPlace(t *testing.T) {
	c := Default()
	c.Location.Latitude, c.Location.Longitude = 35.68, 139.69
	p := c.Place()
	assert.Equal(t, 35.68, p.Latitude)
	assert.Equal(t, 139.69, p.Longitude)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "natal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chart: {house_system: equal}\n"), 0o644))

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("chart: {house_system: koch}\n"), 0o644))

	select {
	case c := <-w.Changes():
		assert.Equal(t, "koch", c.Chart.HouseSystem)
	case err := <-w.Errors():
		t.Fatalf("unexpected watcher error: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after writing the config file")
	}

	require.NoError(t, os.WriteFile(path, []byte("chart: {house_system: nope}\n"), 0o644))
	select {
	case err := <-w.Errors():
		assert.Contains(t, err.Error(), "house_system")
	case c := <-w.Changes():
		t.Fatalf("invalid config was delivered: %+v", c)
	case <-time.After(5 * time.Second):
		t.Fatal("no error after writing an invalid config")
	}
}

func TestWatcher_OverrideSurvivesReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "natal.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chart: {house_system: koch}\n"), 0o644))

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	w.Override(func(c *Config) { c.Chart.HouseSystem = "equal" })

	c, err := w.load()
	require.NoError(t, err)
	assert.Equal(t, "equal", c.Chart.HouseSystem)

	// The override result is validated like the file itself.
	w.Override(func(c *Config) { c.Log.Level = "loud" })
	_, err = w.load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "level")
	require.NoError(t, w.fs.Close())
}

func TestOffer_KeepsLatest(t *testing.T) {
	ch := make(chan int, 1)
	offer(ch, 1)
	offer(ch, 2)
	assert.Equal(t, 2, <-ch)
}
