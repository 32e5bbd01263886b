// Package menu implements the interactive sensor menu TUI using BubbleTea:
// create sensors, record readings, process and list them, with a live
// sensor panel showing reading sparklines.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/luki/sensorhub/internal/chart"
	"github.com/luki/sensorhub/internal/registry"
	"github.com/luki/sensorhub/internal/sensor"
	"github.com/luki/sensorhub/internal/session"
)

const maxLogLines = 12

// ── State ────────────────────────────────────────────────────────────

type mode int

const (
	modeMenu mode = iota
	modeCreateName
	modeRecordName
	modeRecordValue
)

type logLine struct {
	text string
	err  bool
}

// ── Model ────────────────────────────────────────────────────────────

// Model is the BubbleTea model for the sensor menu.
type Model struct {
	sess        *session.Session
	mode        mode
	pendingKind sensor.Kind
	pendingName string
	input       string
	log         []logLine
	width       int
	height      int

	closed   bool
	stats    registry.Stats
	closeErr error
}

// New creates the menu model over sess. The model closes sess on quit.
func New(sess *session.Session) Model {
	return Model{sess: sess}
}

// Result returns what closing the session released. It is only meaningful
// once the program has quit.
func (m Model) Result() (registry.Stats, error) {
	return m.stats, m.closeErr
}

// ── Init / Update ────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		if m.mode == modeMenu {
			return m.updateMenu(msg)
		}
		return m.updatePrompt(msg)
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "1":
		m.mode, m.pendingKind = modeCreateName, sensor.KindTemperature
	case "2":
		m.mode, m.pendingKind = modeCreateName, sensor.KindPressure
	case "3":
		m.mode = modeRecordName
	case "4":
		m.addLog("--- Processing sensors ---", false)
		for _, rep := range m.sess.Process() {
			m.addLog(rep.String(), false)
		}
	case "5":
		m.addLog("--- Registered sensors ---", false)
		for _, d := range m.sess.Describe() {
			m.addLog(d.String(), false)
		}
	case "0", "q":
		return m.quit()
	default:
		m.addLog(fmt.Sprintf("Invalid option %q.", msg.String()), true)
	}
	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.resetPrompt()
	case tea.KeyEnter:
		m.submit()
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

func (m *Model) submit() {
	input := strings.TrimSpace(m.input)
	m.input = ""

	switch m.mode {
	case modeCreateName:
		sn, err := m.sess.Create(m.pendingKind, input)
		if err != nil {
			m.addLog("Error: "+err.Error(), true)
		} else {
			m.addLog(fmt.Sprintf("%s sensor '%s' registered.", sn.Kind().FriendlyName(), sn.Name()), false)
		}

	case modeRecordName:
		sn, ok := m.sess.Lookup(input)
		if !ok {
			m.addLog(fmt.Sprintf("Sensor %q not found.", input), true)
			break
		}
		m.pendingKind, m.pendingName = sn.Kind(), sn.Name()
		m.mode = modeRecordValue
		return

	case modeRecordValue:
		if _, err := m.sess.Record(m.pendingName, input); err != nil {
			m.addLog("Error: "+err.Error(), true)
		} else {
			m.addLog(fmt.Sprintf("Reading %s %s recorded on %s.", input, m.pendingKind.Unit(), m.pendingName), false)
		}
	}
	m.resetPrompt()
}

func (m *Model) resetPrompt() {
	m.mode = modeMenu
	m.input = ""
	m.pendingName = ""
	m.pendingKind = 0
}

func (m *Model) addLog(text string, isErr bool) {
	m.log = append(m.log, logLine{text: text, err: isErr})
	if len(m.log) > maxLogLines {
		m.log = m.log[len(m.log)-maxLogLines:]
	}
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if !m.closed {
		m.stats, m.closeErr = m.sess.Close()
		m.closed = true
	}
	return m, tea.Quit
}

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("17")
	colorTitleFg  = lipgloss.Color("51")
	colorBorder   = lipgloss.Color("62")
	colorName     = lipgloss.Color("147")
	colorLabel    = lipgloss.Color("252")
	colorDim      = lipgloss.Color("240")
	colorFooterBg = lipgloss.Color("235")
	colorErr      = lipgloss.Color("196")
	colorPrompt   = lipgloss.Color("220")
)

// ── View ─────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.closed {
		return ""
	}

	contentWidth := m.width - 2
	if contentWidth < 60 {
		contentWidth = 60
	}

	sections := []string{
		m.renderTitleBar(contentWidth),
		m.renderSensorPanel(contentWidth),
	}
	if len(m.log) > 0 {
		sections = append(sections, m.renderLog(contentWidth))
	}
	sections = append(sections, m.renderFooter(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTitleBar(width int) string {
	logo := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorTitleFg).
		Render("SENSOR HUB")

	right := lipgloss.NewStyle().
		Foreground(colorDim).
		Render(fmt.Sprintf("%d sensors", m.sess.Len()))

	gap := width - lipgloss.Width(logo) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}

	return lipgloss.NewStyle().
		Background(colorTitleBg).
		Width(width).
		Padding(0, 1).
		Render(logo + strings.Repeat(" ", gap) + right)
}

func (m Model) renderSensorPanel(width int) string {
	descs := m.sess.Describe()
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	valS := lipgloss.NewStyle().Foreground(colorLabel)

	var rows []string
	if len(descs) == 0 {
		rows = append(rows, dimS.Render("No sensors registered yet."))
	}

	nameW, kindW, scaleW := 16, 12, 10
	chartWidth := width - nameW - kindW - scaleW - 34
	if chartWidth < 10 {
		chartWidth = 10
	}
	if chartWidth > 80 {
		chartWidth = 80
	}

	for _, d := range descs {
		name := lipgloss.NewStyle().
			Bold(true).
			Foreground(colorName).
			Width(nameW).
			Render(truncate(d.Name, nameW))
		kind := lipgloss.NewStyle().
			Foreground(colorLabel).
			Width(kindW).
			Render(d.Kind.FriendlyName())

		_, hi := chart.Range(d.Values)
		lo := d.Low
		spark := chart.RenderSparkline(d.Values, chartWidth, lo, hi)

		var last string
		if d.Readings > 0 {
			last = valS.Render(fmt.Sprintf(" %8s%s ", formatReading(d.Kind, d.Last), d.Kind.Unit())) +
				chart.RenderScale(d.Last, lo, hi, scaleW)
		} else {
			last = dimS.Render(fmt.Sprintf(" %9s  %s", "-", strings.Repeat("·", scaleW)))
		}
		count := dimS.Render(fmt.Sprintf(" %4d readings", d.Readings))

		rows = append(rows, name+kind+spark+last+count)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderLog(width int) string {
	okS := lipgloss.NewStyle().Foreground(colorLabel)
	errS := lipgloss.NewStyle().Foreground(colorErr)

	lines := make([]string, 0, len(m.log))
	for _, l := range m.log {
		if l.err {
			lines = append(lines, errS.Render(l.text))
		} else {
			lines = append(lines, okS.Render(l.text))
		}
	}
	return lipgloss.NewStyle().
		Padding(0, 1).
		Width(width).
		Render(strings.Join(lines, "\n"))
}

func (m Model) renderFooter(width int) string {
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	labelS := lipgloss.NewStyle().Foreground(colorLabel)
	promptS := lipgloss.NewStyle().Foreground(colorPrompt).Bold(true)

	var content string
	switch m.mode {
	case modeCreateName:
		content = promptS.Render(m.pendingKind.FriendlyName()+" sensor ID: ") + m.input + "_" +
			dimS.Render("  (enter to confirm, esc to cancel)")
	case modeRecordName:
		content = promptS.Render("Sensor ID: ") + m.input + "_" +
			dimS.Render("  (enter to confirm, esc to cancel)")
	case modeRecordValue:
		kind := "decimal"
		if m.pendingKind == sensor.KindPressure {
			kind = "whole"
		}
		content = promptS.Render(fmt.Sprintf("Value for %s (%s, %s): ", m.pendingName, kind, m.pendingKind.Unit())) +
			m.input + "_"
	default:
		items := []string{
			"1:new temperature", "2:new pressure", "3:record",
			"4:process", "5:list", "0:quit",
		}
		var parts []string
		for _, it := range items {
			key, label, _ := strings.Cut(it, ":")
			parts = append(parts, dimS.Render(key)+labelS.Render(":"+label))
		}
		content = strings.Join(parts, "  ")
	}

	return lipgloss.NewStyle().
		Background(colorFooterBg).
		Width(width).
		Padding(0, 1).
		Render(content)
}

func formatReading(k sensor.Kind, v float64) string {
	if k == sensor.KindPressure {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

func truncate(s string, w int) string {
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w <= 3 {
		return string(r[:w])
	}
	return string(r[:w-1]) + "…"
}
