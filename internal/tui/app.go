package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/altinukshini/docsearch/internal/config"
	"github.com/altinukshini/docsearch/internal/document"
	"github.com/altinukshini/docsearch/internal/model"
	"github.com/altinukshini/docsearch/internal/report"
	"github.com/altinukshini/docsearch/internal/search"
	"github.com/altinukshini/docsearch/internal/tui/chooser"
	"github.com/altinukshini/docsearch/internal/tui/options"
	"github.com/altinukshini/docsearch/internal/tui/results"
	"github.com/altinukshini/docsearch/internal/tui/termsview"
	"github.com/altinukshini/docsearch/internal/ui"
)

// CacheStore is the converted-text cache the options overlay can clear.
type CacheStore interface {
	TotalSize() (int64, error)
	DeleteAll() error
}

type App struct {
	cfg       config.Config
	engine    *search.Engine
	formatter report.Formatter
	cache     CacheStore
	log       *zap.Logger

	// Views
	chooser   chooser.Model
	termsView termsview.Model
	options   options.Model
	results   results.Model
	help      help.Model

	// Chosen document and its watcher
	path      string
	watcher   *document.Watcher
	stopWatch context.CancelFunc
	// watchGen goes up on every start so late messages from a replaced
	// watcher can be told apart, even for the same path.
	watchGen int

	// lastQuery is re-run when the document changes while results are open.
	lastQuery *model.SearchQuery

	// State
	width     int
	height    int
	status    string
	searching bool
	showHelp  bool
}

// NewApp builds the root model. cache may be nil when caching is off.
func NewApp(cfg config.Config, engine *search.Engine, formatter report.Formatter, cache CacheStore, log *zap.Logger) App {
	if log == nil {
		log = zap.NewNop()
	}
	startDir := ""
	if cfg.File != "" {
		startDir = filepath.Dir(cfg.File)
	}

	return App{
		cfg:       cfg,
		engine:    engine,
		formatter: formatter,
		cache:     cache,
		log:       log,
		chooser:   chooser.New(startDir),
		termsView: termsview.New(cfg.Terms, cfg.CaseSensitive, cfg.DelimiterSet()),
		results:   results.New(),
		help:      help.New(),
		status:    "Choose a file to search",
	}
}

func (a App) Init() tea.Cmd {
	cmds := []tea.Cmd{a.termsView.Init()}
	if file := a.cfg.File; file != "" {
		cmds = append(cmds, func() tea.Msg { return ui.FileChosenMsg{Path: file} })
	}
	return tea.Batch(cmds...)
}

// --- Commands ---

func (a App) executeSearch(query model.SearchQuery) tea.Cmd {
	engine := a.engine
	return func() tea.Msg {
		summary, err := engine.Run(context.Background(), query)
		return ui.SearchDoneMsg{Query: query, Summary: summary, Err: err}
	}
}

// clearCache empties the text cache and reports how much it freed.
func (a App) clearCache() tea.Cmd {
	store := a.cache
	return func() tea.Msg {
		freed, err := store.TotalSize()
		if err != nil {
			return ui.CacheClearedMsg{Err: err}
		}
		if err := store.DeleteAll(); err != nil {
			return ui.CacheClearedMsg{Err: err}
		}
		return ui.CacheClearedMsg{Freed: freed}
	}
}

// waitForChange blocks until the document changes or the watcher stops.
func waitForChange(w *document.Watcher, gen int) tea.Cmd {
	return func() tea.Msg {
		path, ok := <-w.Changes()
		if !ok {
			return ui.WatchStoppedMsg{Path: w.Path(), Gen: gen}
		}
		return ui.DocumentChangedMsg{Path: path, Gen: gen}
	}
}

// liveWatch reports whether gen is the running watcher.
func (a App) liveWatch(gen int) bool {
	return a.watcher != nil && gen == a.watchGen
}

func (a *App) startWatch() tea.Cmd {
	a.stopWatching()
	if !a.cfg.Watch || a.path == "" {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	w, err := document.Watch(ctx, a.path, a.cfg.WatchDelay, a.log)
	if err != nil {
		cancel()
		a.log.Warn("watch failed", zap.String("path", a.path), zap.Error(err))
		return nil
	}
	a.watchGen++
	a.watcher = w
	a.stopWatch = cancel
	return waitForChange(w, a.watchGen)
}

func (a *App) stopWatching() {
	if a.stopWatch != nil {
		a.stopWatch()
	}
	a.watcher = nil
	a.stopWatch = nil
}

func (a App) query() model.SearchQuery {
	return model.SearchQuery{
		Path:          a.path,
		Terms:         a.termsView.Value(),
		CaseSensitive: a.termsView.CaseSensitive(),
		Delimiters:    a.termsView.Delimiters(),
	}
}

// canSearch is false until a file has been chosen.
func (a App) canSearch() bool {
	return a.path != "" && !a.searching
}

// --- Update ---

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// Background results and overlay results are handled whichever view is
	// on top.
	switch msg := msg.(type) {
	case ui.FileChosenMsg:
		if msg.Path != a.path {
			a.path = msg.Path
			a.lastQuery = nil
		}
		if a.path == "" {
			a.stopWatching()
			a.status = "No file chosen"
		} else {
			a.status = fmt.Sprintf("Chosen %s", filepath.Base(a.path))
			a.log.Info("document chosen", zap.String("path", a.path))
			cmds = append(cmds, a.startWatch())
		}
		cmds = append(cmds, a.termsView.Focus())
		return &a, tea.Batch(cmds...)

	case ui.SearchDoneMsg:
		a.searching = false
		a.termsView.Blur()
		if msg.Err != nil {
			a.results.ShowError(msg.Err)
			a.status = fmt.Sprintf("Error: %v", msg.Err)
			return &a, nil
		}
		a.results.Show(msg.Summary, a.formatter.Format(msg.Summary))
		a.status = fmt.Sprintf("%d of %d terms found", msg.Summary.UniqueTermsFound, msg.Summary.TotalTermsSearched)
		return &a, nil

	case ui.DocumentChangedMsg:
		if !a.liveWatch(msg.Gen) {
			// from a watcher that has since been replaced
			return &a, nil
		}
		cmds = append(cmds, waitForChange(a.watcher, a.watchGen))
		if a.results.IsActive() && a.lastQuery != nil && !a.searching {
			a.searching = true
			a.status = "Document changed, searching again..."
			cmds = append(cmds, a.executeSearch(*a.lastQuery))
		} else {
			a.status = "Document changed"
		}
		return &a, tea.Batch(cmds...)

	case ui.WatchStoppedMsg:
		if a.liveWatch(msg.Gen) {
			a.watcher = nil
			a.stopWatch = nil
		}
		return &a, nil

	case options.ResultMsg:
		if msg.Applied {
			cmds = append(cmds, a.applyOptions(msg.Options))
			if msg.Options.ClearCache && a.cache != nil {
				cmds = append(cmds, a.clearCache())
			}
		}
		cmds = append(cmds, a.termsView.Focus())
		return &a, tea.Batch(cmds...)

	case ui.CacheClearedMsg:
		if msg.Err != nil {
			a.log.Warn("clear cache failed", zap.Error(msg.Err))
			a.status = fmt.Sprintf("Error: %v", msg.Err)
			return &a, nil
		}
		a.log.Info("cache cleared", zap.Int64("freed", msg.Freed))
		a.status = fmt.Sprintf("Cleared cached text (%.1f MB)", float64(msg.Freed)/(1024*1024))
		return &a, nil

	case results.ClosedMsg:
		return &a, a.termsView.Focus()

	case ui.StatusMsg:
		a.status = msg.Text
		return &a, nil

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.propagateSize()
		return &a, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, ui.Keys.Quit) {
		a.stopWatching()
		return &a, tea.Quit
	}

	// Overlays take every other message while they are showing.
	if a.options.IsActive() {
		var cmd tea.Cmd
		a.options, cmd = a.options.Update(msg)
		return &a, cmd
	}
	if a.results.IsActive() {
		var cmd tea.Cmd
		a.results, cmd = a.results.Update(msg)
		return &a, cmd
	}
	if a.chooser.IsActive() {
		var cmd tea.Cmd
		a.chooser, cmd = a.chooser.Update(msg)
		return &a, cmd
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		// Help overlay dismisses on any key
		if a.showHelp {
			a.showHelp = false
			return &a, nil
		}

		// App keys win over the textarea's own bindings.
		switch {
		case key.Matches(keyMsg, ui.Keys.Help):
			a.showHelp = true
			return &a, nil

		case key.Matches(keyMsg, ui.Keys.ChooseFile):
			a.termsView.Blur()
			return &a, a.chooser.Activate()

		case key.Matches(keyMsg, ui.Keys.Search):
			if a.path == "" {
				a.status = "Choose a file before searching"
				return &a, nil
			}
			if !a.canSearch() {
				return &a, nil
			}
			q := a.query()
			a.lastQuery = &q
			a.searching = true
			a.status = "Searching..."
			return &a, a.executeSearch(q)

		case key.Matches(keyMsg, ui.Keys.ToggleCase):
			a.termsView.ToggleCase()
			if a.termsView.CaseSensitive() {
				a.status = "Case sensitive"
			} else {
				a.status = "Case insensitive"
			}
			return &a, nil

		case key.Matches(keyMsg, ui.Keys.Options):
			a.termsView.Blur()
			current := options.Options{
				Delimiters:  a.termsView.Delimiters(),
				Display:     a.cfg.Display,
				ShowMissing: a.cfg.ShowMissing,
				Watch:       a.cfg.Watch,
			}
			if a.cache != nil {
				current.CacheEnabled = true
				size, err := a.cache.TotalSize()
				if err != nil {
					a.log.Warn("cache size unavailable", zap.Error(err))
				}
				current.CacheSize = size
			}
			a.options = options.New(current)
			a.options.SetSize(a.width, max(a.height-2, 1))
			return &a, nil

		case key.Matches(keyMsg, ui.Keys.Focus):
			if !a.termsView.Focused() {
				return &a, a.termsView.Focus()
			}
			return &a, nil
		}
	}

	var cmd tea.Cmd
	a.termsView, cmd = a.termsView.Update(msg)
	return &a, cmd
}

func (a *App) applyOptions(o options.Options) tea.Cmd {
	a.termsView.SetDelimiters(o.Delimiters)
	a.cfg.Delimiters = string(o.Delimiters)

	if f, err := report.NewFormatter(o.Display, o.ShowMissing); err == nil {
		a.formatter = f
		a.cfg.Display = o.Display
		a.cfg.ShowMissing = o.ShowMissing
	} else {
		a.status = fmt.Sprintf("Error: %v", err)
	}

	if a.cfg.Watch == o.Watch {
		return nil
	}
	a.cfg.Watch = o.Watch
	if !o.Watch {
		a.stopWatching()
		return nil
	}
	return a.startWatch()
}

func (a *App) propagateSize() {
	// header(1) + status(1) = 2 lines of chrome
	contentH := max(a.height-2, 1)

	a.termsView.SetWidth(a.width - 4)
	a.chooser.SetSize(a.width-4, contentH)
	a.options.SetSize(a.width, contentH)
	a.results.SetSize(a.width, contentH)
	a.help.Width = a.width
}

// --- View ---

func (a App) View() string {
	header := RenderHeader(a.path, a.width)

	var content string
	switch {
	case a.showHelp:
		content = a.renderHelp()
	case a.options.IsActive():
		content = a.options.View()
	case a.results.IsActive():
		content = a.results.View()
	case a.chooser.IsActive():
		content = a.chooser.View()
	default:
		content = a.renderMain()
	}

	statusBar := RenderStatusBar(a.status, a.help.ShortHelpView(ui.Keys.ShortHelp()), a.width)

	// Hard clamp: content never overflows the terminal.
	maxContentLines := a.height - 2
	if maxContentLines > 0 {
		lines := strings.Split(content, "\n")
		if len(lines) > maxContentLines {
			lines = lines[:maxContentLines]
			content = strings.Join(lines, "\n")
		}
	}

	return header + "\n" + content + "\n" + statusBar
}

func (a App) renderMain() string {
	file := ui.StylePlaceholder.Render("No file chosen.")
	if a.path != "" {
		file = a.path
	}
	fileRow := ui.ButtonStyle(true).Render("Choose file (ctrl+f)") + "  " + file

	label := "Search (ctrl+s)"
	if a.searching {
		label = "Searching..."
	}
	searchRow := ui.ButtonStyle(a.canSearch()).Render(label)

	return lipgloss.JoinVertical(lipgloss.Left,
		"",
		fileRow,
		"",
		a.termsView.View(),
		"",
		searchRow,
	)
}

// helpGroups titles the groups of ui.Keys.FullHelp, in order.
var helpGroups = []string{"Search", "Terms box and overlays", "Scrolling", "General"}

func (a App) renderHelp() string {
	contentH := max(a.height-4, 1)

	bold := lipgloss.NewStyle().Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(ui.ColorPrimary).Bold(true).Width(14)
	desc := lipgloss.NewStyle().Foreground(lipgloss.Color("#D1D5DB"))

	row := func(k, d string) string {
		return "  " + keyStyle.Render(k) + desc.Render(d) + "\n"
	}

	var b strings.Builder
	for i, group := range ui.Keys.FullHelp() {
		title := "More"
		if i < len(helpGroups) {
			title = helpGroups[i]
		}
		b.WriteString("\n" + bold.Render("  "+title) + "\n\n")
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(row(h.Key, h.Desc))
		}
	}

	b.WriteString("\n" + bold.Render("  File chooser") + "\n\n")
	b.WriteString(row("backspace", "parent directory"))
	b.WriteString(row("esc", "cancel and clear the file"))

	b.WriteString("\n" + ui.StyleMuted.Render("  Press any key to close") + "\n")

	style := ui.StylePaneFocused.Width(max(a.width-2, 1)).Height(contentH)
	return style.Render(b.String())
}
