// Package ui provides the terminal chart viewer using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-natal/internal/chart"
	"github.com/litescript/ls-natal/internal/config"
	"github.com/litescript/ls-natal/internal/logging"
	"github.com/litescript/ls-natal/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewWheel ViewMode = iota
	ViewPositions
	ViewHouses
	ViewAspects
)

const viewCount = 4

// Msg types for Bubble Tea
type (
	// TickMsg drives live mode. Ticks from an earlier live session are ignored.
	TickMsg struct {
		Seq  int
		Time time.Time
	}

	// ConfigChangedMsg carries a configuration reloaded from disk.
	ConfigChangedMsg struct {
		Config *config.Config
	}

	// ErrorMsg reports a background failure.
	ErrorMsg struct {
		Error error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	log     *logging.Logger
	watcher *config.Watcher

	// Requested chart inputs. The displayed chart lags behind them when a
	// recompute fails.
	moment   chart.BirthMoment
	place    chart.GeoCoordinate
	opts     chart.Options
	location string
	chart    *chart.Chart

	// UI state
	viewMode  ViewMode
	width     int
	height    int
	ready     bool
	statusMsg string
	lastErr   error
	live      bool
	liveSeq   int

	// Sub-models
	wheel     WheelModel
	positions PositionsModel
	houses    HousesModel
	aspects   AspectsModel
}

// New creates the root model around an already computed chart. opts are the
// options c was computed with and are reused for every recompute.
func New(c *chart.Chart, opts chart.Options, location string, log *logging.Logger) Model {
	if log == nil {
		log = logging.Discard()
	}
	m := Model{
		log:       log,
		moment:    c.Moment,
		place:     c.Place,
		opts:      opts,
		location:  location,
		viewMode:  ViewWheel,
		wheel:     NewWheelModel(),
		positions: NewPositionsModel(),
		houses:    NewHousesModel(),
		aspects:   NewAspectsModel(),
	}
	m.setChart(c)
	return m
}

// WithWatcher returns a copy of m that applies configuration reloads from w.
func (m Model) WithWatcher(w *config.Watcher) Model {
	m.watcher = w
	return m
}

// Chart returns the chart currently on screen.
func (m Model) Chart() *chart.Chart {
	return m.chart
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return waitForConfig(m.watcher)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1":
			m.viewMode = ViewWheel
		case "2":
			m.viewMode = ViewPositions
		case "3":
			m.viewMode = ViewHouses
		case "4":
			m.viewMode = ViewAspects
		case "tab":
			m.viewMode = (m.viewMode + 1) % viewCount
		case "shift+tab":
			m.viewMode = (m.viewMode + viewCount - 1) % viewCount

		case "h":
			m.opts.HouseSystem = m.opts.HouseSystem.Next()
			m.recompute(fmt.Sprintf("House system: %s", m.opts.HouseSystem))
		case "+", "=":
			m.step(time.Hour)
		case "-", "_":
			m.step(-time.Hour)
		case "]":
			m.step(24 * time.Hour)
		case "[":
			m.step(-24 * time.Hour)
		case "n":
			m.moment = m.now()
			m.recompute("Moved to now")
		case "l":
			m.live = !m.live
			m.liveSeq++
			if m.live {
				m.statusMsg = "Live mode on"
				cmds = append(cmds, tickCmd(m.liveSeq))
			} else {
				m.statusMsg = "Live mode off"
			}

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Logo and tabs take ~10 lines, footer ~2
		contentHeight := msg.Height - 12
		m.wheel = m.wheel.SetSize(msg.Width, contentHeight)
		m.positions = m.positions.SetSize(msg.Width, contentHeight)
		m.houses = m.houses.SetSize(msg.Width, contentHeight)
		m.aspects = m.aspects.SetSize(msg.Width, contentHeight)

	case TickMsg:
		if !m.live || msg.Seq != m.liveSeq {
			break
		}
		m.moment = chart.MomentFromTime(msg.Time.In(m.zone()))
		m.recompute("")
		cmds = append(cmds, tickCmd(m.liveSeq))

	case ConfigChangedMsg:
		m.applyConfig(msg.Config)
		cmds = append(cmds, waitForConfig(m.watcher))

	case ErrorMsg:
		m.lastErr = msg.Error
		m.log.Warn("background error", logging.Err(msg.Error))
		if m.watcher != nil {
			cmds = append(cmds, waitForConfig(m.watcher))
		}

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewPositions:
		m.positions, cmd = m.positions.Update(msg)
	case ViewAspects:
		m.aspects, cmd = m.aspects.Update(msg)
	}
	return cmd
}

func (m *Model) step(d time.Duration) {
	m.moment = m.moment.Add(d)
	m.recompute("")
}

// recompute rebuilds the chart from the requested inputs. On failure the
// previous chart stays on screen and the error goes to the footer.
func (m *Model) recompute(status string) {
	start := time.Now()
	c, err := chart.Compute(m.moment, m.place, m.opts)
	if err != nil {
		m.lastErr = err
		m.log.Warn("chart recompute failed",
			logging.Str("moment", m.moment.String()),
			logging.Str("houses", m.opts.HouseSystem.String()),
			logging.Err(err))
		return
	}
	m.lastErr = nil
	m.statusMsg = status
	m.setChart(c)
	m.log.Debug("chart recomputed",
		logging.Str("moment", c.Moment.String()),
		logging.Str("houses", c.HouseSystem.String()),
		logging.Int("aspects", len(c.Aspects)),
		logging.Dur("took", time.Since(start)))
}

func (m *Model) setChart(c *chart.Chart) {
	m.chart = c
	m.wheel = m.wheel.UpdateData(c)
	m.positions = m.positions.UpdateData(c)
	m.houses = m.houses.UpdateData(c)
	m.aspects = m.aspects.UpdateData(c)
}

// applyConfig takes the chart settings and log settings from a reloaded
// configuration. The place stays as given on the command line.
func (m *Model) applyConfig(cfg *config.Config) {
	opts, err := cfg.ChartOptions()
	if err != nil {
		m.lastErr = fmt.Errorf("reload config: %w", err)
		return
	}
	m.log.SetLevel(logging.ParseLevel(cfg.Log.Level))
	m.log.SetFormat(logging.ParseFormat(cfg.Log.Format))
	m.log.Info("config reloaded", logging.Str("houses", opts.HouseSystem.String()))
	m.opts = opts
	m.recompute("Config reloaded")
}

func (m Model) zone() *time.Location {
	return m.moment.Time().Location()
}

func (m Model) now() chart.BirthMoment {
	return chart.MomentFromTime(time.Now().In(m.zone()))
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewWheel:
		content = m.wheel.View()
	case ViewPositions:
		content = m.positions.View()
	case ViewHouses:
		content = m.houses.View()
	case ViewAspects:
		content = m.aspects.View()
	}

	return m.renderFrame(content)
}

func (m Model) renderFrame(content string) string {
	header := m.renderHeader()
	footer := m.renderFooter()

	return header + "\n" + content + "\n" + footer
}

func (m Model) renderHeader() string {
	return m.renderLogo() + m.renderStatusLine()
}

func (m Model) renderLogo() string {
	logo := []string{
		`  ██╗     ███████╗      ███╗   ██╗ █████╗ ████████╗ █████╗ ██╗     `,
		`  ██║     ██╔════╝      ████╗  ██║██╔══██╗╚══██╔══╝██╔══██╗██║     `,
		`  ██║     ███████╗█████╗██╔██╗ ██║███████║   ██║   ███████║██║     `,
		`  ██║     ╚════██║╚════╝██║╚██╗██║██╔══██║   ██║   ██╔══██║██║     `,
		`  ███████╗███████║      ██║ ╚████║██║  ██║   ██║   ██║  ██║███████╗`,
		`  ╚══════╝╚══════╝      ╚═╝  ╚═══╝╚═╝  ╚═╝   ╚═╝   ╚═╝  ╚═╝╚══════╝`,
	}

	var b strings.Builder
	b.WriteString("\n")

	for row, line := range logo {
		runes := []rune(line)
		lineLen := len(runes)

		for col, r := range runes {
			color := gradientColor(col, row, lineLen, len(logo))
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
			b.WriteString(style.Render(string(r)))
		}
		b.WriteString("\n")
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	b.WriteString(muted.Render(fmt.Sprintf("  Natal Charts · v%s", version.Version)))
	b.WriteString("\n\n")

	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient:
// deep blue through violet to gold, darker toward the bottom rows.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	var r, g, b float64
	if xRatio < 0.5 {
		// Indigo (#4338CA) -> Violet (#9D4EDD)
		t := xRatio / 0.5
		r = 67 + t*(157-67)
		g = 56 + t*(78-56)
		b = 202 + t*(221-202)
	} else {
		// Violet -> Gold (#F5B841)
		t := (xRatio - 0.5) / 0.5
		r = 157 + t*(245-157)
		g = 78 + t*(184-78)
		b = 221 + t*(65-221)
	}

	brightness := 1.0 - (yRatio * 0.5)
	return fmt.Sprintf("#%02X%02X%02X", clampByte(r*brightness), clampByte(g*brightness), clampByte(b*brightness))
}

func clampByte(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return int(v)
	}
}

func (m Model) renderStatusLine() string {
	tabs := m.renderTabs()
	return tabs + "\n"
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Wheel", "[2] Positions", "[3] Houses", "[4] Aspects"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	var status string
	if m.lastErr != nil {
		status = errorStyle.Render("ERROR: " + m.lastErr.Error())
	} else {
		c := m.chart
		status = accentStyle.Render(c.Moment.String()) + dimStyle.Render(" @ "+m.placeLabel()+" · "+c.HouseSystem.String())
		if m.live {
			status += accentStyle.Render(" ● live")
		}
	}

	var help string
	switch m.viewMode {
	case ViewPositions:
		help = dimStyle.Render("↑↓: select body | h: houses | +/-: hour | [/]: day | n: now | l: live")
	case ViewAspects:
		help = dimStyle.Render("↑↓: scroll | e: exact only | h: houses | +/-: hour | [/]: day")
	default:
		help = dimStyle.Render("h: houses | +/-: hour | [/]: day | n: now | l: live | tab: switch view")
	}

	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + help

	if m.statusMsg != "" {
		footer += "\n  " + dimStyle.Render(m.statusMsg)
	}

	return footer
}

func (m Model) placeLabel() string {
	if m.location != "" {
		return m.location
	}
	return m.place.String()
}

func tickCmd(seq int) tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Seq: seq, Time: t}
	})
}

// waitForConfig blocks until the watcher delivers a reload or an error.
func waitForConfig(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case c := <-w.Changes():
			return ConfigChangedMsg{Config: c}
		case err := <-w.Errors():
			return ErrorMsg{Error: err}
		}
	}
}

// SendError creates a command that sends an error message.
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Error: err}
	}
}
