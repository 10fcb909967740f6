package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/reel/internal/config"
	"github.com/mmcdole/reel/internal/domain"
	"github.com/mmcdole/reel/internal/repository"
	"github.com/mmcdole/reel/internal/resource"
	"github.com/mmcdole/reel/internal/store"
	"github.com/mmcdole/reel/internal/tmdb"
	"github.com/mmcdole/reel/internal/tui"
	"github.com/mmcdole/reel/internal/tui/styles"
)

// app carries the wiring shared by every command
type app struct {
	cfg         *config.Config
	logger      *slog.Logger
	store       *store.Store
	client      *tmdb.Client
	interactive bool
}

// catalogEntity is a persisted entity that can be listed on screen
type catalogEntity[E any] interface {
	domain.Entity[E]
	Year() int
}

// kindCommands runs the per-kind commands for one entity type
type kindCommands[E catalogEntity[E]] struct {
	app          *app
	kind         domain.Kind
	repo         *repository.Repository[E]
	queries      *repository.Queries[E]
	renderDetail func(E) string
}

func newKindCommands[E catalogEntity[E]](a *app, kind domain.Kind, table domain.EntityStore[E], api domain.CatalogService[E], renderDetail func(E) string) *kindCommands[E] {
	repo := repository.New(table, api, repository.Options{
		DedupeTags: a.cfg.Cache.DedupeTags,
		Policy:     repository.MaxAge(a.cfg.Cache.MaxAge),
		Logger:     a.logger.With("kind", string(kind)),
	})
	return &kindCommands[E]{
		app:          a,
		kind:         kind,
		repo:         repo,
		queries:      repository.NewQueries(table, a.logger),
		renderDetail: renderDetail,
	}
}

// commandFlags are the flags every per-kind command accepts
type commandFlags struct {
	kind  string
	page  int
	pages int
	limit int
}

func parseCommand(name string, args []string) (*commandFlags, []string, error) {
	f := &commandFlags{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.StringVar(&f.kind, "kind", string(domain.KindTV), "catalog: tv or movie")
	fs.IntVar(&f.page, "page", 1, "listing page")
	fs.IntVar(&f.pages, "pages", 5, "maximum pages to warm")
	fs.IntVar(&f.limit, "limit", 20, "maximum offline matches")
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	if f.page < 1 {
		return nil, nil, fmt.Errorf("page must be at least 1, got %d", f.page)
	}
	return f, fs.Args(), nil
}

func (a *app) dispatch(ctx context.Context, name string, args []string) error {
	if name == "clear" {
		if err := a.store.Clear(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		fmt.Println(styles.SuccessStyle.Render(styles.SuccessChar) + " Cache cleared")
		return nil
	}

	switch name {
	case "list", "search", "detail", "find", "warm":
	default:
		return fmt.Errorf("unknown command: %q", name)
	}

	flags, rest, err := parseCommand(name, args)
	if err != nil {
		return err
	}
	kind, err := domain.ParseKind(flags.kind)
	if err != nil {
		return err
	}

	switch kind {
	case domain.KindMovie:
		cmds := newKindCommands[*domain.Movie](a, kind, a.store.Movies(), tmdb.NewMovieCatalog(a.client), tui.RenderMovie)
		return cmds.run(ctx, name, flags, rest)
	default:
		cmds := newKindCommands[*domain.TvShow](a, kind, a.store.TV(), tmdb.NewTVCatalog(a.client), tui.RenderTvShow)
		return cmds.run(ctx, name, flags, rest)
	}
}

func (k *kindCommands[E]) run(ctx context.Context, name string, flags *commandFlags, args []string) error {
	arg := strings.TrimSpace(strings.Join(args, " "))
	if arg == "" {
		return fmt.Errorf("%s: missing argument", name)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	switch name {
	case "list":
		title := fmt.Sprintf("%s %s · page %d", k.kind, arg, flags.page)
		return showStream(k.app, title, k.repo.ListByType(ctx, flags.page, arg), tui.RenderTitles[E], cancel)

	case "search":
		title := fmt.Sprintf("%s search %q · page %d", k.kind, arg, flags.page)
		return showStream(k.app, title, k.repo.Search(ctx, arg, flags.page), tui.RenderTitles[E], cancel)

	case "detail":
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", arg, err)
		}
		title := fmt.Sprintf("%s #%d", k.kind, id)
		return showStream(k.app, title, k.repo.Details(ctx, id), k.renderDetail, cancel)

	case "find":
		rows, err := k.queries.FindCached(arg, flags.limit)
		if err != nil {
			return fmt.Errorf("failed to search cache: %w", err)
		}
		if len(rows) == 0 {
			return fmt.Errorf("%w for %q", domain.ErrNoCache, arg)
		}
		fmt.Println(tui.RenderTitles(rows))
		return nil

	case "warm":
		return k.warm(ctx, cancel, arg, flags.pages)

	default:
		return fmt.Errorf("unknown command: %q", name)
	}
}

func (k *kindCommands[E]) warm(ctx context.Context, cancel context.CancelFunc, listType string, pages int) error {
	warm := func(onProgress domain.ProgressFunc) (domain.WarmResult, error) {
		return k.repo.Warm(ctx, listType, pages, onProgress)
	}

	if !k.app.interactive {
		result, err := warm(func(loaded, total int) {
			fmt.Fprintf(os.Stderr, "page %d/%d\n", loaded, total)
		})
		fmt.Printf("%s: %d pages, %d titles cached\n", result.Category, result.Pages, result.Rows)
		return err
	}

	title := fmt.Sprintf("Warming %s %s", k.kind, listType)
	final, err := tea.NewProgram(tui.NewWarmModel(title, warm, cancel)).Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	m := final.(tui.WarmModel)
	if m.Aborted() {
		return nil
	}
	if _, err := m.Result(); err != nil {
		k.app.logger.Error("warm failed", "type", listType, "error", err)
		return errReported
	}
	return nil
}

// showStream renders a resource stream until it closes. A terminal error
// state becomes the command's error.
func showStream[T any](a *app, title string, stream <-chan resource.Resource[T], render func(T) string, cancel context.CancelFunc) error {
	if !a.interactive {
		return printStream(stream, render)
	}

	final, err := tea.NewProgram(tui.NewModel(title, stream, render, cancel)).Run()
	if err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	m := final.(tui.Model[T])
	if m.Aborted() {
		return nil
	}
	if state, ok := m.State(); ok && state.Status == resource.StatusError {
		a.logger.Error("fetch failed", "title", title, "error", state.Message)
		return errReported
	}
	return nil
}

// printStream writes progress to stderr and the final data to stdout
func printStream[T any](stream <-chan resource.Resource[T], render func(T) string) error {
	var last resource.Resource[T]
	received := false
	for state := range stream {
		last, received = state, true
		if state.Status == resource.StatusLoading {
			fmt.Fprintln(os.Stderr, "refreshing...")
		}
	}
	if !received {
		return errors.New("no result")
	}
	if last.HasData {
		fmt.Println(render(last.Data))
	}
	return last.Err()
}
