package ui

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-natal/internal/chart"
	"github.com/litescript/ls-natal/internal/config"
	"github.com/litescript/ls-natal/internal/ephem"
	"github.com/litescript/ls-natal/internal/houses"
)

var testPositions = ephem.Fixed{
	ephem.Sun:     10,
	ephem.Moon:    10.5,
	ephem.Mercury: 45,
	ephem.Venus:   75,
}

func newTestModel(t *testing.T, lat float64, sys houses.System) Model {
	t.Helper()
	opts := chart.Options{HouseSystem: sys, Provider: testPositions}
	c, err := chart.Compute(
		chart.BirthMoment{Year: 2025, Month: 6, Day: 15, Hour: 8, TZOffset: -4},
		chart.GeoCoordinate{Latitude: lat, Longitude: -74.0060},
		opts,
	)
	if err != nil {
		t.Fatalf("compute chart: %v", err)
	}
	return New(c, opts, "Test City", nil)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestModelInit(t *testing.T) {
	m := newTestModel(t, 40.7128, houses.SystemPlacidus)

	if m.viewMode != ViewWheel {
		t.Errorf("expected wheel view, got %d", m.viewMode)
	}
	if m.Chart() == nil {
		t.Fatal("expected initial chart")
	}
	if m.View() != "Initializing..." {
		t.Errorf("expected placeholder before first resize, got %q", m.View())
	}
	if m.Init() != nil {
		t.Error("Init without a watcher should return nil")
	}
}

func TestViewSwitching(t *testing.T) {
	m := newTestModel(t, 40.7128, houses.SystemPlacidus)

	tests := []struct {
		key  string
		want ViewMode
	}{
		{"2", ViewPositions},
		{"3", ViewHouses},
		{"4", ViewAspects},
		{"tab", ViewWheel},
		{"tab", ViewPositions},
		{"shift+tab", ViewWheel},
		{"shift+tab", ViewAspects},
		{"1", ViewWheel},
	}
	for _, tt := range tests {
		m = send(m, key(tt.key))
		if m.viewMode != tt.want {
			t.Errorf("after %q: view = %d, want %d", tt.key, m.viewMode, tt.want)
		}
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, 40.7128, houses.SystemPlacidus)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestHouseSystemCycle(t *testing.T) {
	m := newTestModel(t, 40.7128, houses.SystemPlacidus)

	m = send(m, key("h"))
	if m.Chart().HouseSystem != houses.SystemKoch {
		t.Errorf("expected koch, got %s", m.Chart().HouseSystem)
	}
	if m.statusMsg != "House system: koch" {
		t.Errorf("unexpected status %q", m.statusMsg)
	}

	m = send(m, key("h"), key("h"))
	if m.Chart().HouseSystem != houses.SystemPlacidus {
		t.Errorf("expected wrap to placidus, got %s", m.Chart().HouseSystem)
	}
}

func TestRecomputeFailureKeepsChart(t *testing.T) {
	// Placidus is undefined this far north; Equal is not.
	m := newTestModel(t, 70, houses.SystemEqual)
	before := m.Chart()

	m = send(m, key("h"))
	if m.opts.HouseSystem != houses.SystemPlacidus {
		t.Fatalf("requested system = %s, want placidus", m.opts.HouseSystem)
	}
	if m.Chart() != before {
		t.Error("failed recompute replaced the chart")
	}
	if m.lastErr == nil {
		t.Fatal("expected an error")
	}

	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 50})
	if !strings.Contains(m.View(), "ERROR:") {
		t.Error("footer should show the error")
	}
}

func TestTimeStepping(t *testing.T) {
	m := newTestModel(t, 40.7128, houses.SystemPlacidus)
	start := m.Chart().Moment.Time()

	tests := []struct {
		key  string
		want time.Duration
	}{
		{"+", time.Hour},
		{"+", 2 * time.Hour},
		{"-", time.Hour},
		{"]", 25 * time.Hour},
		{"[", time.Hour},
	}
	for _, tt := range tests {
		m = send(m, key(tt.key))
		got := m.Chart().Moment.Time().Sub(start)
		if got != tt.want {
			t.Errorf("after %q: offset = %v, want %v", tt.key, got, tt.want)
		}
	}
	if m.Chart().Moment.TZOffset != -4 {
		t.Errorf("stepping changed the offset to %v", m.Chart().Moment.TZOffset)
	}
}

func TestLiveMode(t *testing.T) {
	m := newTestModel(t, 40.7128, houses.SystemPlacidus)

	next, cmd := m.Update(key("l"))
	m = next.(Model)
	if !m.live || cmd == nil {
		t.Fatal("l should start live mode with a tick")
	}

	stale := TickMsg{Seq: m.liveSeq - 1, Time: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)}
	before := m.Chart()
	m = send(m, stale)
	if m.Chart() != before {
		t.Error("stale tick recomputed the chart")
	}

	tick := TickMsg{Seq: m.liveSeq, Time: time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC)}
	m = send(m, tick)
	got := m.Chart().Moment
	if got.Year != 2030 || got.Hour != 8 || got.TZOffset != -4 {
		t.Errorf("live tick moment = %s, want 2030-01-01 08:00 at UTC-04:00", got)
	}

	m = send(m, key("l"))
	if m.live {
		t.Error("second l should stop live mode")
	}
	before = m.Chart()
	m = send(m, TickMsg{Seq: m.liveSeq, Time: time.Now()})
	if m.Chart() != before {
		t.Error("tick after live mode ended recomputed the chart")
	}
}

func TestConfigChanged(t *testing.T) {
	m := newTestModel(t, 40.7128, houses.SystemPlacidus)

	cfg := config.Default()
	cfg.Chart.HouseSystem = "equal"
	m = send(m, ConfigChangedMsg{Config: cfg})
	if m.Chart().HouseSystem != houses.SystemEqual {
		t.Errorf("expected equal after reload, got %s", m.Chart().HouseSystem)
	}
	if m.Chart().Place.Latitude != 40.7128 {
		t.Error("reload must not move the chart")
	}
	if m.statusMsg != "Config reloaded" {
		t.Errorf("unexpected status %q", m.statusMsg)
	}

	bad := config.Default()
	bad.Chart.HouseSystem = "bogus"
	m = send(m, ConfigChangedMsg{Config: bad})
	if m.lastErr == nil || !strings.Contains(m.lastErr.Error(), "reload config") {
		t.Errorf("expected reload error, got %v", m.lastErr)
	}
	if m.Chart().HouseSystem != houses.SystemEqual {
		t.Error("bad reload replaced the chart")
	}
}

func TestErrorMsg(t *testing.T) {
	m := newTestModel(t, 40.7128, houses.SystemPlacidus)
	msg := SendError(errTest)()
	m = send(m, msg, tea.WindowSizeMsg{Width: 120, Height: 50})
	if !strings.Contains(m.View(), "ERROR: boom") {
		t.Error("footer should show background errors")
	}
}

type testError string

func (e testError) Error() string { return string(e) }

const errTest = testError("boom")

func TestViewsRender(t *testing.T) {
	m := newTestModel(t, 40.7128, houses.SystemPlacidus)
	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 50})

	tests := []struct {
		key  string
		want []string
	}{
		{"1", []string{"▶ [1] Wheel", "AC", "MC", "☉", "ASC"}},
		{"2", []string{"▶ [2] Positions", "Sun", "10°00' Aries", "Sun aspects"}},
		{"3", []string{"▶ [3] Houses", "Houses (placidus)", "XII"}},
		{"4", []string{"▶ [4] Aspects", "Moon", "exact"}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			view := send(m, key(tt.key)).View()
			for _, want := range tt.want {
				if !strings.Contains(view, want) {
					t.Errorf("view %s missing %q", tt.key, want)
				}
			}
			if !strings.Contains(view, "Test City") {
				t.Error("footer should name the location")
			}
		})
	}
}

func TestScreenAngle(t *testing.T) {
	const asc = 123.4
	tests := []struct {
		lon  float64
		want float64
	}{
		{asc, math.Pi},
		{asc + 180, 0},
		{asc + 90, 3 * math.Pi / 2},
		{asc - 90, math.Pi / 2},
	}
	for _, tt := range tests {
		if got := screenAngle(tt.lon, asc); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("screenAngle(%v) = %v, want %v", tt.lon, got, tt.want)
		}
	}
}

func TestWheelTooSmall(t *testing.T) {
	w := NewWheelModel().SetSize(20, 8)
	if !strings.Contains(w.View(), "too small") {
		t.Error("expected size warning")
	}
	if got := NewWheelModel().SetSize(100, 40).View(); got != "No chart" {
		t.Errorf("expected empty state, got %q", got)
	}
}

func TestWheelPlacesEveryBody(t *testing.T) {
	m := newTestModel(t, 40.7128, houses.SystemPlacidus)
	view := m.wheel.SetSize(120, 40).View()
	// Several bodies share a longitude in the fixed positions; each must
	// still get its own cell.
	for _, b := range ephem.AllBodies() {
		if !strings.Contains(view, b.Glyph()) {
			t.Errorf("wheel missing %s", b.Name())
		}
	}
}

func TestPositionsCursor(t *testing.T) {
	m := newTestModel(t, 40.7128, houses.SystemPlacidus)
	m = send(m, key("2"))

	if b, _ := m.positions.Selected(); b != ephem.Sun {
		t.Errorf("initial selection = %s, want SUN", b)
	}
	m = send(m, key("down"), key("down"))
	if b, _ := m.positions.Selected(); b != ephem.Mercury {
		t.Errorf("selection = %s, want MERCURY", b)
	}
	m = send(m, key("up"), key("up"), key("up"))
	if m.positions.cursor != 0 {
		t.Errorf("cursor went past the top: %d", m.positions.cursor)
	}
	for i := 0; i < 20; i++ {
		m = send(m, key("j"))
	}
	if b, _ := m.positions.Selected(); b != ephem.Pluto {
		t.Errorf("selection = %s, want PLUTO", b)
	}

	// Recomputing keeps the selection.
	m = send(m, key("+"))
	if b, _ := m.positions.Selected(); b != ephem.Pluto {
		t.Errorf("selection after recompute = %s, want PLUTO", b)
	}
}

func TestAspectsExactFilter(t *testing.T) {
	m := newTestModel(t, 40.7128, houses.SystemPlacidus)
	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 50}, key("4"))

	all := len(m.aspects.visible())
	m = send(m, key("e"))
	exact := m.aspects.visible()
	if len(exact) == 0 || len(exact) >= all {
		t.Fatalf("exact filter kept %d of %d aspects", len(exact), all)
	}
	for _, a := range exact {
		if !a.Exact {
			t.Errorf("non-exact aspect in filtered list: %+v", a)
		}
	}
	if !strings.Contains(m.View(), "Aspects (exact only)") {
		t.Error("title should show the filter")
	}
}

func TestAspectsScrollBounds(t *testing.T) {
	m := newTestModel(t, 40.7128, houses.SystemPlacidus)
	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 14}, key("4"))

	for i := 0; i < 100; i++ {
		m = send(m, key("down"))
	}
	want := max(len(m.aspects.visible())-m.aspects.maxRows(), 0)
	if m.aspects.offset != want {
		t.Errorf("offset = %d, want %d", m.aspects.offset, want)
	}
	for i := 0; i < 100; i++ {
		m = send(m, key("up"))
	}
	if m.aspects.offset != 0 {
		t.Errorf("offset = %d after scrolling up", m.aspects.offset)
	}
}

func TestGradientColor(t *testing.T) {
	if got := gradientColor(0, 0, 10, 6); got != "#4338CA" {
		t.Errorf("left edge = %s", got)
	}
	if got := gradientColor(10, 0, 10, 6); got != "#F5B841" {
		t.Errorf("right edge = %s", got)
	}
}
