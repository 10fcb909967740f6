package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/resource"
)

// waitForState reads one emission from the stream
func waitForState[T any](stream <-chan resource.Resource[T]) tea.Cmd {
	return func() tea.Msg {
		state, ok := <-stream
		if !ok {
			return StateMsg[T]{Closed: true}
		}
		return StateMsg[T]{State: state}
	}
}

// WarmFunc runs a warm and reports progress through onProgress
type WarmFunc func(onProgress domain.ProgressFunc) (domain.WarmResult, error)

// startWarm launches run in the background; its progress and completion
// arrive on events
func startWarm(run WarmFunc, events chan<- tea.Msg) tea.Cmd {
	return func() tea.Msg {
		go func() {
			observer := NewChannelObserver(events)
			result, err := run(observer.OnProgress)
			events <- WarmDoneMsg{Result: result, Err: err}
		}()
		return nil
	}
}

// readEvent reads the next background event
func readEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-events
	}
}
