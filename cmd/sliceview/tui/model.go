// Package tui hosts a viewer session in the terminal: it maps keys, mouse
// cells and timer ticks onto session commands and draws the session's frame.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/mrsinham/sliceview/cmd/sliceview/tui/components"
	"github.com/mrsinham/sliceview/internal/dicom/modalities"
	"github.com/mrsinham/sliceview/internal/overlay"
	"github.com/mrsinham/sliceview/internal/viewer"
	"github.com/mrsinham/sliceview/internal/viewport"
	"github.com/mrsinham/sliceview/internal/windowlevel"
)

// Phase represents the current screen of the viewer.
type Phase int

const (
	PhaseView Phase = iota
	PhaseWindow
	PhaseSeek
)

const (
	headerRows = 2
	footerRows = 2
	sideWidth  = 34
	panStep    = 10
)

// tickMsg carries a scheduled callback onto the event loop.
type tickMsg struct {
	fn func()
}

// Model is the bubbletea model wrapping a viewer session.
type Model struct {
	sess    *viewer.Session
	capture *overlay.Capture

	keys      keyMap
	help      help.Model
	helpPanel *components.HelpPanel

	phase       Phase
	form        *huh.Form
	centerInput string
	widthInput  string
	seekInput   string

	presetIndex int

	width, height int
	cols, rows    int

	status   string
	err      error
	quitting bool
}

// NewModel wraps sess. capture may be nil, which disables snapshots.
func NewModel(sess *viewer.Session, capture *overlay.Capture) *Model {
	m := &Model{
		sess:      sess,
		capture:   capture,
		keys:      defaultKeyMap(),
		help:      help.New(),
		helpPanel: components.NewHelpPanel(),
	}
	m.helpPanel.SetTool(string(sess.Viewport().Tool))
	m.resize(80, 24)
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.SetWindowTitle("sliceview")
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tickMsg:
		msg.fn()
		return m, nil
	}

	switch m.phase {
	case PhaseWindow, PhaseSeek:
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	m.cols = max(10, width-sideWidth-1)
	m.rows = max(5, height-headerRows-footerRows)
	m.help.Width = width
	m.helpPanel.SetWidth(sideWidth)
	m.sess.SetContainer(containerFor(m.cols, m.rows))
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		m.sess.Next()
	case key.Matches(msg, m.keys.Prev):
		m.sess.Prev()
	case key.Matches(msg, m.keys.First):
		m.sess.First()
	case key.Matches(msg, m.keys.Last):
		m.sess.Last()
	case key.Matches(msg, m.keys.Play):
		m.sess.TogglePlay()
	case key.Matches(msg, m.keys.ZoomIn):
		m.sess.ZoomIn()
	case key.Matches(msg, m.keys.ZoomOut):
		m.sess.ZoomOut()
	case key.Matches(msg, m.keys.PanLeft):
		m.sess.PanBy(-panStep*cellW, 0)
	case key.Matches(msg, m.keys.PanRight):
		m.sess.PanBy(panStep*cellW, 0)
	case key.Matches(msg, m.keys.PanUp):
		m.sess.PanBy(0, -panStep*cellH)
	case key.Matches(msg, m.keys.PanDown):
		m.sess.PanBy(0, panStep*cellH)
	case key.Matches(msg, m.keys.Reset):
		m.sess.ResetView()
		m.status = "view reset"
	case key.Matches(msg, m.keys.Tool):
		m.selectTool(int(msg.String()[0] - '1'))
	case key.Matches(msg, m.keys.Cancel):
		m.sess.SelectTool(m.sess.Viewport().Tool)
	case key.Matches(msg, m.keys.Annotations):
		m.sess.ToggleAnnotations()
	case key.Matches(msg, m.keys.Preset):
		m.nextPreset()
	case key.Matches(msg, m.keys.Capture):
		m.snapshot()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Window):
		return m, m.openWindowForm()
	case key.Matches(msg, m.keys.Seek):
		return m, m.openSeekForm()
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	x, y := msg.X, msg.Y-headerRows
	inside := x >= 0 && x < m.cols && y >= 0 && y < m.rows
	p := cellToScreen(x, y)

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		if inside {
			m.sess.Wheel(-1)
		}
	case msg.Button == tea.MouseButtonWheelDown:
		if inside {
			m.sess.Wheel(1)
		}
	case msg.Action == tea.MouseActionRelease:
		m.sess.PointerUp()
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if inside {
			m.sess.PointerDown(p)
		}
	case msg.Action == tea.MouseActionMotion:
		m.sess.PointerMove(p)
	}
}

func (m *Model) selectTool(i int) {
	tools := viewport.AllTools()
	if i < 0 || i >= len(tools) {
		return
	}
	m.sess.SelectTool(tools[i])
	m.helpPanel.SetTool(string(tools[i]))
	m.status = fmt.Sprintf("tool: %s", tools[i])
}

func (m *Model) nextPreset() {
	presets := windowlevel.Presets(modalities.Modality(m.sess.Study().Modality))
	if len(presets) == 0 {
		return
	}
	p := presets[m.presetIndex%len(presets)]
	m.presetIndex++
	if err := m.sess.ApplyPreset(p.Name); err != nil {
		m.err = err
		return
	}
	m.status = fmt.Sprintf("preset %s (%.0f/%.0f)", p.Name, p.Center, p.Width)
}

func (m *Model) snapshot() {
	if m.capture == nil {
		m.err = fmt.Errorf("capture is disabled")
		return
	}
	path, err := m.capture.Snapshot()
	if err != nil {
		m.err = err
		return
	}
	m.status = "saved " + path
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	switch m.phase {
	case PhaseWindow:
		return m.viewForm("Window / Level")
	case PhaseSeek:
		return m.viewForm("Go to slice")
	}

	f := m.sess.Frame()
	canvas := lipgloss.NewStyle().Width(m.cols).Height(m.rows).Render(renderCanvas(f, m.cols, m.rows))
	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas, " ", m.viewSide(f))

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewHeader(f),
		body,
		m.viewStatus(),
		m.help.View(m.keys),
	)
}

func (m *Model) viewHeader(f viewer.Frame) string {
	study := f.Study
	title := components.TitleStyle.Render("sliceview") + "  " +
		components.SubtitleStyle.Render(fmt.Sprintf("%s  %s  %s  %s", study.PatientName, study.Modality, study.StudyDate, study.Description))

	info := fmt.Sprintf("Slice %d/%d  loc %.1f mm  WL %.0f WW %.0f  zoom %.2fx",
		f.SliceIndex+1, f.SliceCount, f.Slice.SliceLocationMM, f.Window.Center, f.Window.Width, f.Viewport.Zoom)
	if f.Window.Overridden {
		info += "  (override)"
	}
	if f.Playback.IsPlaying {
		info += "  " + components.PlayingStyle.Render("▶ PLAYING")
	}
	return title + "\n" + components.StatusStyle.Render(info)
}

func (m *Model) viewSide(f viewer.Frame) string {
	var sb strings.Builder
	sb.WriteString(components.TitleStyle.Render("Tools"))
	sb.WriteString("\n")
	for i, t := range viewport.AllTools() {
		label := fmt.Sprintf("%d %s", i+1, t)
		if t == f.Viewport.Tool {
			sb.WriteString(components.ActiveToolStyle.Render(label))
		} else {
			sb.WriteString(components.InactiveToolStyle.Render(label))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(components.TitleStyle.Render("Measurements"))
	sb.WriteString("\n")
	switch {
	case !f.ShowAnnotations:
		sb.WriteString(components.SubtitleStyle.Render("hidden (a)"))
		sb.WriteString("\n")
	case len(f.Measurements) == 0 && f.Draft == nil:
		sb.WriteString(components.SubtitleStyle.Render("none"))
		sb.WriteString("\n")
	default:
		ms := f.Measurements
		if len(ms) > 6 {
			ms = ms[len(ms)-6:]
		}
		for _, meas := range ms {
			sb.WriteString(components.MeasureStyle.Render(fmt.Sprintf("%-9s %s", meas.Kind, meas.Label())))
			sb.WriteString("\n")
		}
		if f.Draft != nil {
			sb.WriteString(components.DraftStyle.Render(fmt.Sprintf("%-9s %d/%d points", f.Draft.Kind, len(f.Draft.Points), f.Draft.Kind.RequiredPoints())))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(m.helpPanel.View())
	return sb.String()
}

func (m *Model) viewStatus() string {
	if m.err != nil {
		return components.ErrorStyle.Render("Error: " + m.err.Error())
	}
	return components.SubtitleStyle.Render(m.status)
}

// --- forms ---

func (m *Model) openWindowForm() tea.Cmd {
	w := m.sess.Window()
	m.phase = PhaseWindow
	m.centerInput = strconv.FormatFloat(w.Center, 'f', -1, 64)
	m.widthInput = strconv.FormatFloat(w.Width, 'f', -1, 64)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("center").
				Title("Window center").
				Value(&m.centerInput).
				Validate(validateFloat),
			huh.NewInput().
				Key("width").
				Title("Window width").
				Description("Widths below 1 are raised to 1").
				Value(&m.widthInput).
				Validate(validateFloat),
		),
	).WithShowHelp(false).WithWidth(40)

	return m.form.Init()
}

func (m *Model) openSeekForm() tea.Cmd {
	m.phase = PhaseSeek
	m.seekInput = strconv.Itoa(m.sess.Index() + 1)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("slice").
				Title(fmt.Sprintf("Slice number (1-%d)", m.sess.Count())).
				Value(&m.seekInput).
				Validate(func(s string) error {
					if _, err := strconv.Atoi(strings.TrimSpace(s)); err != nil {
						return fmt.Errorf("enter a whole number")
					}
					return nil
				}),
		),
	).WithShowHelp(false).WithWidth(40)

	return m.form.Init()
}

func validateFloat(s string) error {
	if _, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
		return fmt.Errorf("enter a number")
	}
	return nil
}

// updateForm handles updates while a form is open.
func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			m.closeForm()
			return m, nil
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.submitForm()
		m.closeForm()
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m *Model) submitForm() {
	var err error
	switch m.phase {
	case PhaseWindow:
		err = m.applyWindow()
	case PhaseSeek:
		err = m.applySeek()
	}
	m.err = err
}

func (m *Model) applyWindow() error {
	center, err := strconv.ParseFloat(strings.TrimSpace(m.centerInput), 64)
	if err != nil {
		return fmt.Errorf("invalid window center: %w", err)
	}
	width, err := strconv.ParseFloat(strings.TrimSpace(m.widthInput), 64)
	if err != nil {
		return fmt.Errorf("invalid window width: %w", err)
	}
	m.sess.SetWindowLevel(center, width)
	w := m.sess.Window()
	m.status = fmt.Sprintf("window %.0f/%.0f until next slice", w.Center, w.Width)
	return nil
}

func (m *Model) applySeek() error {
	n, err := strconv.Atoi(strings.TrimSpace(m.seekInput))
	if err != nil {
		return fmt.Errorf("invalid slice number: %w", err)
	}
	m.sess.Seek(n - 1)
	m.status = fmt.Sprintf("slice %d", m.sess.Index()+1)
	return nil
}

func (m *Model) closeForm() {
	m.phase = PhaseView
	m.form = nil
}

func (m *Model) viewForm(title string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		components.TitleStyle.Render(title),
		"",
		m.form.View(),
		"",
		"Enter: Apply | Esc: Back",
	)
}
