package ui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/wavescope/internal/source"
	"github.com/olivier-w/wavescope/internal/util"
)

type arrayPickedMsg struct {
	name string
}

type pickerClosedMsg struct{}

type arrayItem struct {
	name string
	desc string
}

func (i arrayItem) Title() string       { return i.name }
func (i arrayItem) Description() string { return i.desc }
func (i arrayItem) FilterValue() string { return i.name }

// pickerModel lists the registry's tables for re-attaching the view.
type pickerModel struct {
	list list.Model
}

func newPicker(reg *source.Registry, current string, sampleRate float64, width, height int) pickerModel {
	var items []list.Item
	selected := 0
	for i, name := range reg.Names() {
		t, _ := reg.Get(name)
		desc := util.FormatSamples(t.Len(), sampleRate)
		if t.Path() != "" {
			desc += "  " + t.Path()
		}
		items = append(items, arrayItem{name: name, desc: desc})
		if name == current {
			selected = i
		}
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	l := list.New(items, delegate, max(width, 20), max(height, 5))
	l.Title = "arrays"
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = headerStyle
	l.Select(selected)
	return pickerModel{list: l}
}

func (p pickerModel) Update(msg tea.Msg) (pickerModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if p.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "enter":
			if item, ok := p.list.SelectedItem().(arrayItem); ok {
				return p, func() tea.Msg { return arrayPickedMsg{name: item.name} }
			}
		case "q", "esc", "a":
			return p, func() tea.Msg { return pickerClosedMsg{} }
		}

	case tea.WindowSizeMsg:
		p.list.SetWidth(msg.Width)
		p.list.SetHeight(msg.Height)
		return p, nil
	}

	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

func (p pickerModel) View() string {
	return p.list.View()
}
