package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left     key.Binding
	Right    key.Binding
	Home     key.Binding
	End      key.Binding
	Bang     key.Binding
	Clear    key.Binding
	Refresh  key.Binding
	RMS      key.Binding
	Labels   key.Binding
	Next     key.Binding
	Picker   key.Binding
	Audition key.Binding
	Export   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Bang, k.Audition, k.Next, k.Picker, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Home, k.End},
		{k.Bang, k.Clear, k.Refresh},
		{k.RMS, k.Labels, k.Next, k.Picker},
		{k.Audition, k.Export, k.Help, k.Quit},
	}
}

var keys = keyMap{
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "cursor left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "cursor right"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "0"),
		key.WithHelp("home", "start"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "$"),
		key.WithHelp("end", "last sample"),
	),
	Bang: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "output"),
	),
	Clear: key.NewBinding(
		key.WithKeys("c", "esc"),
		key.WithHelp("c/esc", "clear selection"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "update"),
	),
	RMS: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "rms"),
	),
	Labels: key.NewBinding(
		key.WithKeys("L"),
		key.WithHelp("L", "labels"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next array"),
	),
	Picker: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "arrays"),
	),
	Audition: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "play"),
	),
	Export: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "write wav"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
