package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mrsinham/sliceview/internal/measure"
	"github.com/mrsinham/sliceview/internal/playback"
	"github.com/mrsinham/sliceview/internal/series"
	"github.com/mrsinham/sliceview/internal/viewer"
	"github.com/mrsinham/sliceview/internal/viewport"
)

func newTestModel(t *testing.T) (*Model, *playback.ManualScheduler) {
	t.Helper()
	study, s := series.Demo()
	sched := playback.NewManualScheduler()
	opts := viewer.DefaultOptions()
	opts.Scheduler = sched
	opts.IDs = &measure.SequentialIDs{Prefix: "m"}
	sess := viewer.New(study, s, opts)
	t.Cleanup(sess.Close)

	m := NewModel(sess, nil)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, sched
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_Resize(t *testing.T) {
	m, _ := newTestModel(t)
	if m.cols != 120-sideWidth-1 || m.rows != 40-headerRows-footerRows {
		t.Errorf("Expected canvas %dx%d, got %dx%d", 120-sideWidth-1, 40-headerRows-footerRows, m.cols, m.rows)
	}
	r := m.sess.ImageRect()
	if r.Size().X != 512 {
		t.Errorf("Expected image width 512 at zoom 1, got %v", r.Size().X)
	}
}

func TestModel_NavigationKeys(t *testing.T) {
	m, _ := newTestModel(t)
	start := m.sess.Index()

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.sess.Index() != start+1 {
		t.Errorf("Expected slice %d after down, got %d", start+1, m.sess.Index())
	}
	m.Update(runes("k"))
	if m.sess.Index() != start {
		t.Errorf("Expected slice %d after k, got %d", start, m.sess.Index())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnd})
	if m.sess.Index() != m.sess.Count()-1 {
		t.Errorf("Expected last slice, got %d", m.sess.Index())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyHome})
	if m.sess.Index() != 0 {
		t.Errorf("Expected first slice, got %d", m.sess.Index())
	}
}

func TestModel_PlaybackKey(t *testing.T) {
	m, sched := newTestModel(t)
	start := m.sess.Index()

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if !m.sess.IsPlaying() {
		t.Fatal("Expected playback to start")
	}
	sched.Advance(300 * time.Millisecond)
	if m.sess.Index() != start+3 {
		t.Errorf("Expected slice %d after 300ms, got %d", start+3, m.sess.Index())
	}

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	if m.sess.IsPlaying() || sched.Active() != 0 {
		t.Errorf("Expected playback stopped, playing=%v tasks=%d", m.sess.IsPlaying(), sched.Active())
	}
}

func TestModel_TickMsgRunsOnLoop(t *testing.T) {
	m, _ := newTestModel(t)
	called := false
	m.Update(tickMsg{fn: func() { called = true }})
	if !called {
		t.Error("Expected tick callback to run")
	}
}

func TestModel_ToolKeys(t *testing.T) {
	m, _ := newTestModel(t)
	for i, tool := range viewport.AllTools() {
		m.Update(runes(string(rune('1' + i))))
		if got := m.sess.Viewport().Tool; got != tool {
			t.Errorf("Key %d: expected tool %s, got %s", i+1, tool, got)
		}
		if m.helpPanel.Tool != string(tool) {
			t.Errorf("Key %d: expected help for %s, got %s", i+1, tool, m.helpPanel.Tool)
		}
	}
}

func TestModel_ZoomKeysAndReset(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(runes("+"))
	if z := m.sess.Viewport().Zoom; z != viewport.ZoomInFactor {
		t.Errorf("Expected zoom %v, got %v", viewport.ZoomInFactor, z)
	}
	m.Update(runes("l"))
	if v := m.sess.Viewport(); v.PanX != panStep*cellW {
		t.Errorf("Expected pan x %d, got %v", panStep*cellW, v.PanX)
	}
	m.Update(runes("r"))
	if v := m.sess.Viewport(); v.Zoom != 1 || v.PanX != 0 || v.PanY != 0 {
		t.Errorf("Expected reset view, got %+v", v)
	}
}

func TestModel_MouseMeasuresLength(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(runes("4"))

	press := func(x, y int) {
		m.Update(tea.MouseMsg{X: x, Y: y + headerRows, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		m.Update(tea.MouseMsg{X: x, Y: y + headerRows, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	}
	press(10, 10)
	if _, ok := m.sess.Draft(); !ok {
		t.Fatal("Expected a draft after the first click")
	}
	m.Update(tea.MouseMsg{X: 15, Y: 10 + headerRows, Action: tea.MouseActionMotion})
	if d, _ := m.sess.Draft(); d.Preview == nil {
		t.Error("Expected a preview point after motion")
	}
	press(20, 10)

	ms := m.sess.Measurements()
	if len(ms) != 1 {
		t.Fatalf("Expected 1 measurement, got %d", len(ms))
	}
	// 10 cells * 4 units at zoom 1, scaled by the demo spacing
	want := 10 * cellW * m.sess.CurrentSlice().PixelSpacingMM
	if diff := ms[0].Value - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("Expected %v mm, got %v", want, ms[0].Value)
	}
	if !strings.Contains(m.View(), ms[0].Label()) {
		t.Error("Expected the measurement label in the side panel")
	}
}

func TestModel_EscapeCancelsDraft(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(runes("5"))
	m.Update(tea.MouseMsg{X: 5, Y: 5 + headerRows, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := m.sess.Draft(); ok {
		t.Error("Expected esc to discard the draft")
	}
}

func TestModel_WheelStepsSlices(t *testing.T) {
	m, _ := newTestModel(t)
	start := m.sess.Index()
	m.Update(tea.MouseMsg{X: 5, Y: 5 + headerRows, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if m.sess.Index() != start+1 {
		t.Errorf("Expected slice %d, got %d", start+1, m.sess.Index())
	}

	// outside the canvas
	m.Update(tea.MouseMsg{X: m.cols + 2, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	if m.sess.Index() != start+1 {
		t.Errorf("Expected wheel outside the canvas to be ignored, got %d", m.sess.Index())
	}
}

func TestModel_WindowForm(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(runes("w"))
	if m.phase != PhaseWindow || m.form == nil {
		t.Fatal("Expected the window form to open")
	}

	m.centerInput = "100"
	m.widthInput = "0"
	if err := m.applyWindow(); err != nil {
		t.Fatalf("applyWindow failed: %v", err)
	}
	if w := m.sess.Window(); w.Center != 100 || w.Width != 1 || !w.Overridden {
		t.Errorf("Expected override 100/1, got %+v", w)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.phase != PhaseView {
		t.Error("Expected esc to close the form")
	}
}

func TestModel_SeekForm(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(runes("g"))
	if m.phase != PhaseSeek {
		t.Fatal("Expected the seek form to open")
	}
	m.seekInput = "500"
	if err := m.applySeek(); err != nil {
		t.Fatalf("applySeek failed: %v", err)
	}
	if m.sess.Index() != m.sess.Count()-1 {
		t.Errorf("Expected seek to clamp to the last slice, got %d", m.sess.Index())
	}

	m.seekInput = "abc"
	if err := m.applySeek(); err == nil {
		t.Error("Expected error for non-numeric slice")
	}
}

func TestModel_PresetCycles(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(runes("p"))
	if m.err != nil {
		t.Fatalf("Unexpected error: %v", m.err)
	}
	if !m.sess.Window().Overridden {
		t.Error("Expected preset to override the window")
	}
	if !strings.HasPrefix(m.status, "preset ") {
		t.Errorf("Unexpected status %q", m.status)
	}
}

func TestModel_CaptureDisabled(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(runes("c"))
	if m.err == nil {
		t.Error("Expected error when capture is disabled")
	}
	if !strings.Contains(m.View(), "capture is disabled") {
		t.Error("Expected error in status line")
	}
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("Expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("Expected empty view after quit")
	}
}

func TestRenderCanvas_Size(t *testing.T) {
	m, _ := newTestModel(t)
	out := renderCanvas(m.sess.Frame(), 20, 6)
	lines := strings.Split(out, "\n")
	if len(lines) != 6 {
		t.Fatalf("Expected 6 rows, got %d", len(lines))
	}
	for i, l := range lines {
		if len([]rune(l)) != 20 {
			t.Errorf("Row %d: expected 20 cells, got %d", i, len([]rune(l)))
		}
	}
}
