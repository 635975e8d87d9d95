package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mrsinham/sliceview/internal/logger"
	"github.com/mrsinham/sliceview/internal/overlay"
	"github.com/mrsinham/sliceview/internal/playback"
	"github.com/mrsinham/sliceview/internal/series"
	"github.com/mrsinham/sliceview/internal/viewer"
)

// RunOptions configures Run.
type RunOptions struct {
	// LogFile receives the session log. Empty discards it, since stdout
	// belongs to the terminal UI.
	LogFile  string
	LogLevel logger.LogLevel
	Capture  *overlay.Capture
}

// Run opens s in the terminal and blocks until the user quits.
func Run(study series.Study, s *series.Series, opts viewer.Options, ro RunOptions) error {
	opts.Logger = logger.NullLogger{}
	if ro.LogFile != "" {
		f, err := tea.LogToFile(ro.LogFile, "sliceview")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer func() { _ = f.Close() }()
		opts.Logger = logger.NewDefault(ro.LogLevel)
	}

	// Ticks are delivered as messages so they run on the event loop. Send
	// blocks until the loop reads it, so it runs on its own goroutine to keep
	// Pause from waiting on the loop that called it.
	var p *tea.Program
	opts.Scheduler = playback.NewRealScheduler(func(fn func()) {
		go p.Send(tickMsg{fn: fn})
	})
	if ro.Capture != nil {
		opts.Sink = ro.Capture
	}

	sess := viewer.New(study, s, opts)
	defer sess.Close()

	p = tea.NewProgram(NewModel(sess, ro.Capture), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running viewer: %w", err)
	}
	return nil
}
