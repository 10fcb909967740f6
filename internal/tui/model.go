// Package tui renders resource streams and warm runs as Bubble Tea programs.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/resource"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Model follows one resource stream until it closes. While loading it shows
// the cached value under a spinner; the final state replaces it.
type Model[T any] struct {
	title   string
	stream  <-chan resource.Resource[T]
	render  func(T) string
	cancel  context.CancelFunc
	keys    KeyMap
	spinner spinner.Model
	width   int

	state    resource.Resource[T]
	received bool
	done     bool
	aborted  bool
}

// NewModel creates a model for stream. cancel may be nil; when set it is
// called if the user quits before the stream closes.
func NewModel[T any](title string, stream <-chan resource.Resource[T], render func(T) string, cancel context.CancelFunc) Model[T] {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	return Model[T]{
		title:   title,
		stream:  stream,
		render:  render,
		cancel:  cancel,
		keys:    DefaultKeyMap(),
		spinner: s,
	}
}

// Init implements tea.Model
func (m Model[T]) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForState(m.stream))
}

// Update implements tea.Model
func (m Model[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			if !m.done {
				m.aborted = true
				if m.cancel != nil {
					m.cancel()
				}
			}
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case StateMsg[T]:
		if msg.Closed {
			m.done = true
			return m, tea.Quit
		}
		m.state = msg.State
		m.received = true
		return m, waitForState(m.stream)

	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model
func (m Model[T]) View() string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(m.title) + "\n\n")

	switch {
	case !m.received:
		b.WriteString(m.spinner.View() + " " + styles.DimStyle.Render("Reading cache..."))

	case m.state.Status == resource.StatusLoading:
		b.WriteString(m.spinner.View() + " " + styles.DimStyle.Render("Refreshing..."))
		if m.state.HasData {
			b.WriteString("  " + styles.DimBadgeStyle.Render(styles.CachedChar+" cached"))
			b.WriteString("\n\n" + m.render(m.state.Data))
		}

	case m.state.Status == resource.StatusSuccess:
		b.WriteString(styles.SuccessStyle.Render(styles.SuccessChar + " Up to date"))
		if m.state.HasData {
			b.WriteString("\n\n" + m.render(m.state.Data))
		} else {
			b.WriteString("\n\n" + styles.DimStyle.Render("Nothing to show"))
		}

	case m.state.Status == resource.StatusError:
		b.WriteString(RenderError(m.state.Message, m.width))
		if m.state.HasData {
			b.WriteString("  " + styles.DimBadgeStyle.Render(styles.CachedChar+" cached"))
			b.WriteString("\n\n" + m.render(m.state.Data))
		}
	}

	if !m.done {
		b.WriteString("\n\n" + styles.DimStyle.Render(m.keys.Quit.Help().Key+" "+m.keys.Quit.Help().Desc))
	}
	return b.String() + "\n"
}

// State returns the last state received from the stream
func (m Model[T]) State() (resource.Resource[T], bool) {
	return m.state, m.received
}

// Aborted reports whether the user quit before the stream closed
func (m Model[T]) Aborted() bool {
	return m.aborted
}
