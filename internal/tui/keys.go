package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Next          key.Binding
	Play          key.Binding
	Reset         key.Binding
	AutoPlay      key.Binding
	Interval      key.Binding
	Syllables     key.Binding
	Pronunciation key.Binding
	Tier          key.Binding
	RaiseMax      key.Binding
	LowerMax      key.Binding
	Mode          key.Binding
	Help          key.Binding
	Quit          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("n", " ", "space", "right", "enter"),
			key.WithHelp("n/space", "next card"),
		),
		Play: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "play/pause"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		AutoPlay: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "auto-play"),
		),
		Interval: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "interval"),
		),
		Syllables: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "syllables"),
		),
		Pronunciation: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "pronunciation"),
		),
		Tier: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "toggle tier"),
		),
		RaiseMax: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "raise max"),
		),
		LowerMax: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "lower max"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "set/threshold"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "settings"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Play, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Play, k.Reset, k.Quit},
		{k.AutoPlay, k.Interval, k.Syllables, k.Pronunciation},
		{k.Tier, k.RaiseMax, k.LowerMax, k.Mode, k.Help},
	}
}
