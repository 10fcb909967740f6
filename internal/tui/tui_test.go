package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderNames(names []string) string { return strings.Join(names, ",") }

func update[T any](t *testing.T, m Model[T], msg tea.Msg) (Model[T], tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model[T])
	require.True(t, ok)
	return model, cmd
}

func TestModel_FollowsStream(t *testing.T) {
	stream := make(chan resource.Resource[[]string], 2)
	stream <- resource.Loading([]string{"cached"})
	stream <- resource.Success([]string{"fresh"})
	close(stream)

	m := NewModel("popular", stream, renderNames, nil)
	assert.Contains(t, m.View(), "Reading cache")

	m, cmd := update(t, m, waitForState(stream)())
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "cached")
	assert.Contains(t, m.View(), "Refreshing")

	m, cmd = update(t, m, cmd())
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "fresh")
	assert.Contains(t, m.View(), "Up to date")

	msg := cmd()
	assert.Equal(t, StateMsg[[]string]{Closed: true}, msg)
	m, _ = update(t, m, msg)

	state, ok := m.State()
	require.True(t, ok)
	assert.Equal(t, resource.StatusSuccess, state.Status)
	assert.Equal(t, []string{"fresh"}, state.Data)
	assert.False(t, m.Aborted())
	assert.NotContains(t, m.View(), "quit")
}

func TestModel_ErrorShowsFallback(t *testing.T) {
	m := NewModel("popular", nil, renderNames, nil)
	m, _ = update(t, m, StateMsg[[]string]{State: resource.Error("Server is offline", []string{"stale"})})

	view := m.View()
	assert.Contains(t, view, "Server is offline")
	assert.Contains(t, view, "stale")
}

func TestModel_SuccessWithoutData(t *testing.T) {
	m := NewModel("popular", nil, renderNames, nil)
	m, _ = update(t, m, StateMsg[[]string]{State: resource.SuccessEmpty[[]string]()})

	assert.Contains(t, m.View(), "Nothing to show")
}

func TestModel_QuitCancels(t *testing.T) {
	cancelled := false
	m := NewModel("popular", make(chan resource.Resource[[]string]), renderNames, func() { cancelled = true })

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.True(t, cancelled)
	assert.True(t, m.Aborted())
}

func TestModel_QuitAfterDoneDoesNotCancel(t *testing.T) {
	cancelled := false
	m := NewModel("popular", nil, renderNames, func() { cancelled = true })
	m, _ = update(t, m, StateMsg[[]string]{Closed: true})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, cancelled)
	assert.False(t, m.Aborted())
}

func TestWarmModel_ProgressAndResult(t *testing.T) {
	m := NewWarmModel("Warming", nil, nil)

	next, cmd := m.Update(ProgressMsg{Loaded: 2, Total: 4})
	m = next.(WarmModel)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "2/4 pages")

	result := domain.WarmResult{Category: "popular", Pages: 4, Rows: 80}
	next, cmd = m.Update(WarmDoneMsg{Result: result})
	m = next.(WarmModel)
	require.NotNil(t, cmd)

	got, err := m.Result()
	require.NoError(t, err)
	assert.Equal(t, result, got)
	assert.Contains(t, m.View(), "popular: 4 pages, 80 titles cached")
}

func TestWarmModel_Failure(t *testing.T) {
	m := NewWarmModel("Warming", nil, nil)

	next, _ := m.Update(WarmDoneMsg{
		Result: domain.WarmResult{Category: "popular", Pages: 1, Rows: 20},
		Err:    errors.New("warm popular page 2: Server is offline"),
	})
	m = next.(WarmModel)

	_, err := m.Result()
	require.Error(t, err)
	assert.Contains(t, m.View(), "Server is offline")
	assert.Contains(t, m.View(), "1 pages")
}

func TestStartWarm_DeliversProgressThenDone(t *testing.T) {
	events := make(chan tea.Msg, 16)
	run := func(onProgress domain.ProgressFunc) (domain.WarmResult, error) {
		onProgress(1, 2)
		onProgress(2, 2)
		return domain.WarmResult{Category: "popular", Pages: 2, Rows: 40}, nil
	}

	assert.Nil(t, startWarm(run, events)())

	assert.Equal(t, ProgressMsg{Loaded: 1, Total: 2}, readEvent(events)())
	assert.Equal(t, ProgressMsg{Loaded: 2, Total: 2}, readEvent(events)())
	done, ok := readEvent(events)().(WarmDoneMsg)
	require.True(t, ok)
	assert.Equal(t, 40, done.Result.Rows)
	assert.NoError(t, done.Err)
}

func TestChannelObserver_DropsWhenFull(t *testing.T) {
	events := make(chan tea.Msg, 1)
	observer := NewChannelObserver(events)

	observer.OnProgress(1, 3)
	observer.OnProgress(2, 3)

	assert.Len(t, events, 1)
	assert.Equal(t, ProgressMsg{Loaded: 1, Total: 3}, <-events)
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "no data found", 20, "no data found"},
		{"wraps", "server is offline right now", 10, "server is\noffline\nright now"},
		{"no width", "a b", 0, "a b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wordWrap(tt.text, tt.width))
		})
	}
}

func TestRenderTitles(t *testing.T) {
	shows := []*domain.TvShow{
		{Name: "Breaking Bad", FirstAirDate: "2008-01-20"},
		{Name: "Untitled"},
	}

	out := RenderTitles(shows)
	assert.Contains(t, out, "Breaking Bad")
	assert.Contains(t, out, "(2008)")
	assert.Contains(t, out, "Untitled")
	assert.Equal(t, 2, strings.Count(out, "\n")+1)

	assert.Contains(t, RenderTitles([]*domain.Movie{}), "No titles")
}

func TestRenderMovie(t *testing.T) {
	movie := &domain.Movie{
		Title:       "Heat",
		ReleaseDate: "1995-12-15",
		Runtime:     170,
		Genres:      []domain.Genre{{ID: 80, Name: "Crime"}},
	}
	movie.Casts = []domain.Cast{{Name: "Al Pacino", Character: "Vincent Hanna"}}
	for i := 0; i < 7; i++ {
		movie.Similar = append(movie.Similar, &domain.Movie{Title: "Similar"})
	}

	out := RenderMovie(movie)
	assert.Contains(t, out, "Heat")
	assert.Contains(t, out, "2h 50m")
	assert.Contains(t, out, "Crime")
	assert.Contains(t, out, "Al Pacino as Vincent Hanna")
	assert.Contains(t, out, "2 more")
	assert.NotContains(t, out, "Reviews")

	assert.Contains(t, RenderMovie(nil), "Not found")
}

func TestRenderTvShow(t *testing.T) {
	show := &domain.TvShow{Name: "Dark", NumberOfSeasons: 3, EpisodeRunTime: 60, Status: "Ended"}
	show.Reviews = []domain.Review{{Author: "critic", Content: strings.Repeat("great ", 30)}}

	out := RenderTvShow(show)
	assert.Contains(t, out, "3 seasons")
	assert.Contains(t, out, "60m episodes")
	assert.Contains(t, out, "critic: great")
	assert.Contains(t, out, "…")
}
