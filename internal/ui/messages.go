package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/wavescope/internal/audition"
)

type tickMsg time.Time

type auditionEndedMsg struct {
	player *audition.Player
}

type fileSavedMsg struct {
	destName string
	err      error
}

func tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func checkDone(p *audition.Player) tea.Cmd {
	return func() tea.Msg {
		<-p.Done()
		return auditionEndedMsg{player: p}
	}
}
