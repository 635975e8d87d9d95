package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the viewer key bindings. It implements help.KeyMap.
type keyMap struct {
	Next        key.Binding
	Prev        key.Binding
	First       key.Binding
	Last        key.Binding
	Play        key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	PanLeft     key.Binding
	PanRight    key.Binding
	PanUp       key.Binding
	PanDown     key.Binding
	Reset       key.Binding
	Tool        key.Binding
	Cancel      key.Binding
	Annotations key.Binding
	Window      key.Binding
	Preset      key.Binding
	Seek        key.Binding
	Capture     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:        key.NewBinding(key.WithKeys("down", "j", "pgdown"), key.WithHelp("↓/j", "next slice")),
		Prev:        key.NewBinding(key.WithKeys("up", "k", "pgup"), key.WithHelp("↑/k", "prev slice")),
		First:       key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "first")),
		Last:        key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "last")),
		Play:        key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		ZoomIn:      key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:     key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "zoom out")),
		PanLeft:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "pan left")),
		PanRight:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "pan right")),
		PanUp:       key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "pan up")),
		PanDown:     key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "pan down")),
		Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset view")),
		Tool:        key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"), key.WithHelp("1-8", "tool")),
		Cancel:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel draft")),
		Annotations: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "annotations")),
		Window:      key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "set window")),
		Preset:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "next preset")),
		Seek:        key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to slice")),
		Capture:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "capture png")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Play, k.Tool, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.First, k.Last, k.Seek, k.Play},
		{k.ZoomIn, k.ZoomOut, k.PanLeft, k.PanRight, k.PanUp, k.PanDown, k.Reset},
		{k.Tool, k.Cancel, k.Annotations, k.Window, k.Preset},
		{k.Capture, k.Help, k.Quit},
	}
}
