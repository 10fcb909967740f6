package tui

import (
	"fmt"
	"strings"

	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// Maximum rows of a detail collection shown before truncating
const maxDetailRows = 5

type titled interface {
	GetTitle() string
	Year() int
}

// RenderTitles renders a listing, one numbered row per entry
func RenderTitles[E titled](rows []E) string {
	if len(rows) == 0 {
		return styles.DimStyle.Render("No titles")
	}
	var b strings.Builder
	for i, row := range rows {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%3d ", i+1)))
		b.WriteString(row.GetTitle())
		if y := row.Year(); y > 0 {
			b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf(" (%d)", y)))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// RenderTvShow renders the detail view of a show
func RenderTvShow(show *domain.TvShow) string {
	if show == nil {
		return styles.DimStyle.Render("Not found")
	}
	var facts []string
	if y := show.Year(); y > 0 {
		facts = append(facts, fmt.Sprint(y))
	}
	if show.NumberOfSeasons > 0 {
		facts = append(facts, fmt.Sprintf("%d seasons", show.NumberOfSeasons))
	}
	if show.EpisodeRunTime > 0 {
		facts = append(facts, fmt.Sprintf("%dm episodes", show.EpisodeRunTime))
	}
	if show.Status != "" {
		facts = append(facts, show.Status)
	}
	return detailView{
		title:    show.Name,
		facts:    facts,
		vote:     show.VoteAverage,
		genres:   show.Genres,
		overview: show.Overview,
		reviews:  show.Reviews,
		videos:   show.Videos,
		casts:    show.Casts,
		crews:    show.Crews,
		similar:  similarTitles(show.Similar),
	}.render()
}

// RenderMovie renders the detail view of a movie
func RenderMovie(movie *domain.Movie) string {
	if movie == nil {
		return styles.DimStyle.Render("Not found")
	}
	var facts []string
	if y := movie.Year(); y > 0 {
		facts = append(facts, fmt.Sprint(y))
	}
	if rt := movie.FormattedRuntime(); rt != "" {
		facts = append(facts, rt)
	}
	if movie.Status != "" {
		facts = append(facts, movie.Status)
	}
	return detailView{
		title:    movie.Title,
		facts:    facts,
		vote:     movie.VoteAverage,
		genres:   movie.Genres,
		overview: movie.Overview,
		reviews:  movie.Reviews,
		videos:   movie.Videos,
		casts:    movie.Casts,
		crews:    movie.Crews,
		similar:  similarTitles(movie.Similar),
	}.render()
}

func similarTitles[E titled](rows []E) []string {
	titles := make([]string, 0, len(rows))
	for _, row := range rows {
		titles = append(titles, row.GetTitle())
	}
	return titles
}

// detailView is the kind-independent shape of a detail screen
type detailView struct {
	title    string
	facts    []string
	vote     float64
	genres   []domain.Genre
	overview string
	reviews  []domain.Review
	videos   []domain.Video
	casts    []domain.Cast
	crews    []domain.Crew
	similar  []string
}

func (d detailView) render() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(d.title))
	if d.vote > 0 {
		b.WriteString("  " + styles.BadgeStyle.Render(fmt.Sprintf("%.1f", d.vote)))
	}
	b.WriteString("\n")
	if len(d.facts) > 0 {
		b.WriteString(styles.SubtitleStyle.Render(strings.Join(d.facts, " · ")) + "\n")
	}
	if len(d.genres) > 0 {
		b.WriteString(styles.AccentStyle.Render(strings.Join(domain.GenreNames(d.genres), ", ")) + "\n")
	}
	if d.overview != "" {
		b.WriteString("\n" + wordWrap(d.overview, 72) + "\n")
	}

	cast := make([]string, 0, len(d.casts))
	for _, c := range d.casts {
		if c.Character != "" {
			cast = append(cast, fmt.Sprintf("%s as %s", c.Name, c.Character))
		} else {
			cast = append(cast, c.Name)
		}
	}
	writeSection(&b, "Cast", cast)

	crew := make([]string, 0, len(d.crews))
	for _, c := range d.crews {
		crew = append(crew, fmt.Sprintf("%s (%s)", c.Name, c.Job))
	}
	writeSection(&b, "Crew", crew)

	vids := make([]string, 0, len(d.videos))
	for _, v := range d.videos {
		vids = append(vids, fmt.Sprintf("%s [%s]", v.Name, v.Type))
	}
	writeSection(&b, "Videos", vids)

	revs := make([]string, 0, len(d.reviews))
	for _, r := range d.reviews {
		revs = append(revs, fmt.Sprintf("%s: %s", r.Author, truncate(r.Content, 60)))
	}
	writeSection(&b, "Reviews", revs)

	writeSection(&b, "Similar", d.similar)

	return strings.TrimRight(b.String(), "\n")
}

func writeSection(b *strings.Builder, name string, rows []string) {
	if len(rows) == 0 {
		return
	}
	b.WriteString("\n" + styles.SubtitleStyle.Render(name) + "\n")
	for i, row := range rows {
		if i == maxDetailRows {
			b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  … %d more", len(rows)-maxDetailRows)) + "\n")
			break
		}
		b.WriteString("  " + row + "\n")
	}
}

// RenderError renders a failure message wrapped to width
func RenderError(message string, width int) string {
	if width <= 0 {
		width = 72
	}
	return styles.ErrorStyle.Render(styles.ErrorChar + " " + wordWrap(message, width-2))
}

// wordWrap wraps text at word boundaries
func wordWrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wordLen := len([]rune(word))
		if i > 0 && lineLen+1+wordLen > width {
			result.WriteString("\n")
			lineLen = 0
		} else if i > 0 {
			result.WriteString(" ")
			lineLen++
		}
		result.WriteString(word)
		lineLen += wordLen
	}

	return result.String()
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
