package tui

import tea "github.com/charmbracelet/bubbletea"

// updatedMsg tells the model the grid changed outside of a key press.
type updatedMsg struct{}

// Updates turns grid notifications into bubbletea messages. Pass Notify as the grid's
// OnUpdate callback. Notifications that arrive while one is pending are coalesced.
type Updates struct {
	ch chan struct{}
}

func NewUpdates() *Updates {
	return &Updates{ch: make(chan struct{}, 1)}
}

// Notify never blocks.
func (u *Updates) Notify() {
	select {
	case u.ch <- struct{}{}:
	default:
	}
}

func (u *Updates) wait() tea.Msg {
	<-u.ch
	return updatedMsg{}
}
