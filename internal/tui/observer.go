package tui

import tea "github.com/charmbracelet/bubbletea"

// ChannelObserver adapts domain.ProgressFunc to a channel for Bubble Tea.
type ChannelObserver struct {
	ch chan<- tea.Msg
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver(ch chan<- tea.Msg) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnProgress sends progress to the channel (non-blocking if full).
func (o *ChannelObserver) OnProgress(loaded, total int) {
	select {
	case o.ch <- ProgressMsg{Loaded: loaded, Total: total}:
	default: // Non-blocking if channel full
	}
}
