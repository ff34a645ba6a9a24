package explore

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/nana/lang"
	"github.com/ardnew/nana/lang/resolve"
	"github.com/ardnew/nana/log"
)

const filterPrompt = "filter ➜ "

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	kindStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	nameStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	exposedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	matchStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true)
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	minListHeight = 3
)

// entry is one context as shown in the list.
type entry struct {
	label string
	id    resolve.ContextID
}

// model is the Bubble Tea model for the explorer.
type model struct {
	ctxFunc  func() context.Context
	unit     *lang.Unit
	logger   log.Logger
	history  *History
	help     help.Model
	keys     keyMap
	input    textinput.Model
	entries  []entry
	matches  fuzzy.Matches
	sel      int
	recall   int
	width    int
	height   int
	quitting bool
}

// Run starts the explorer over the contexts of a compiled document.
func Run(
	ctx context.Context,
	unit *lang.Unit,
	cacheDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	if unit == nil || unit.Result == nil {
		return ErrNoUnit
	}

	logger.TraceContext(
		ctx,
		"explore start",
		slog.String("source", unit.Source),
		slog.Int("context_count", len(unit.Result.Contexts)),
		slog.String("cache_dir", cacheDir),
	)

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history",
			log.Err(err))
	}

	m := newModel(ctx, unit, history, logger)

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err = p.Run()

	return err
}

func newModel(
	ctx context.Context,
	unit *lang.Unit,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(filterPrompt)
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = defaultWidth

	m := model{
		ctxFunc: func() context.Context { return ctx },
		unit:    unit,
		logger:  logger,
		history: history,
		help:    help.New(),
		keys:    defaultKeyMap(),
		input:   ti,
		entries: makeEntries(unit.Result),
		recall:  history.Len(),
		width:   defaultWidth,
		height:  defaultHeight,
	}

	m.refresh()

	return m
}

// makeEntries labels every context with its path, kind, and bound names so
// the filter matches any of them.
func makeEntries(res *resolve.Result) []entry {
	entries := make([]entry, len(res.Contexts))

	for i, c := range res.Contexts {
		names := make([]string, len(c.Names))
		for j, n := range c.Names {
			names[j] = n.Binder.String()
		}

		label := fmt.Sprintf("%s %s", c.Path, c.Kind)
		if len(names) > 0 {
			label += " " + strings.Join(names, " ")
		}

		entries[i] = entry{label: label, id: c.ID}
	}

	return entries
}

// refresh recomputes the matches for the current filter. An empty filter
// matches every context in arena order.
func (m *model) refresh() {
	filter := strings.TrimSpace(m.input.Value())

	if filter == "" {
		m.matches = make(fuzzy.Matches, len(m.entries))
		for i, e := range m.entries {
			m.matches[i] = fuzzy.Match{Str: e.label, Index: i}
		}
	} else {
		labels := make([]string, len(m.entries))
		for i, e := range m.entries {
			labels[i] = e.label
		}

		m.matches = fuzzy.Find(filter, labels)
	}

	m.sel = min(max(m.sel, 0), max(len(m.matches)-1, 0))
}

// selected returns the selected context, or nil if nothing matches.
func (m model) selected() *resolve.Context {
	if len(m.matches) == 0 {
		return nil
	}

	return m.unit.Result.Context(m.entries[m.matches[m.sel].Index].id)
}

// focus clears the filter and selects the context with the given ID.
func (m *model) focus(id resolve.ContextID) {
	m.input.SetValue("")
	m.refresh()

	for i, match := range m.matches {
		if m.entries[match.Index].id == id {
			m.sel = i

			return
		}
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - len(filterPrompt) - 2
		m.help.Width = msg.Width

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"explore keypress",
		slog.String("key", msg.String()),
	)

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true

		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.sel > 0 {
			m.sel--
		}

		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.sel < len(m.matches)-1 {
			m.sel++
		}

		return m, nil

	case key.Matches(msg, m.keys.Parent):
		if c := m.selected(); c != nil && c.Parent != resolve.NoContext {
			m.focus(c.Parent)
		}

		return m, nil

	case key.Matches(msg, m.keys.Child):
		if c := m.selected(); c != nil && len(c.Children) > 0 {
			m.focus(c.Children[0])
		}

		return m, nil

	case key.Matches(msg, m.keys.Recall):
		return m.recallPrev(), nil

	case key.Matches(msg, m.keys.Confirm):
		if _, err := m.history.Write(m.input.Value()); err != nil {
			m.logger.WarnContext(m.ctxFunc(), "could not save history",
				log.Err(err))
		}

		m.recall = m.history.Len()

		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.recall = m.history.Len()
	m.refresh()

	return m, cmd
}

// recallPrev replaces the filter with the previous history entry, wrapping
// to the newest after the oldest.
func (m model) recallPrev() model {
	n := m.history.Len()
	if n == 0 {
		return m
	}

	m.recall--
	if m.recall < 0 {
		m.recall = n - 1
	}

	line, err := m.history.GetLine(m.recall)
	if err != nil {
		return m
	}

	m.input.SetValue(line)
	m.input.CursorEnd()
	m.refresh()

	return m
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("%s · %d contexts, %d diagnostics",
		m.unit.Source, len(m.unit.Result.Contexts), len(m.unit.Diagnostics()))))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	detail := m.detailView()
	helpView := m.help.View(m.keys)

	rows := m.height - 4 - lipgloss.Height(detail) - lipgloss.Height(helpView)
	b.WriteString(m.listView(max(rows, minListHeight)))
	b.WriteString("\n")
	b.WriteString(detail)
	b.WriteString("\n")
	b.WriteString(helpView)

	return b.String()
}

// listView renders at most rows matches, scrolled to keep the selection
// visible.
func (m model) listView(rows int) string {
	if len(m.matches) == 0 {
		return hintStyle.Render("no context matches the filter")
	}

	first := 0
	if m.sel >= rows {
		first = m.sel - rows + 1
	}

	last := min(first+rows, len(m.matches))

	lines := make([]string, 0, last-first)
	for i := first; i < last; i++ {
		lines = append(lines, renderMatch(m.matches[i], i == m.sel, m.width))
	}

	return strings.Join(lines, "\n")
}

// renderMatch renders one label with its matched characters highlighted,
// truncated to width.
func renderMatch(match fuzzy.Match, selected bool, width int) string {
	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if i >= width-2 {
			b.WriteString("…")

			break
		}

		if matchSet[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteRune(r)
		}
	}

	if selected {
		return selectedStyle.Render("▸ " + b.String())
	}

	return "  " + b.String()
}

// detailView describes the selected context: its bound names, exposed
// names, and diagnostics.
func (m model) detailView() string {
	c := m.selected()
	if c == nil {
		return ""
	}

	var b strings.Builder

	fmt.Fprintf(&b, "[%d] %s", c.ID, kindStyle.Render(c.Kind.String()))

	if c.Kind == resolve.BlockContext {
		fmt.Fprintf(&b, " %s", c.Composition)
	}

	fmt.Fprintf(&b, " %s %s\n", c.Path, hintStyle.Render(c.State.String()))

	for _, n := range c.Names {
		fmt.Fprintf(&b, "  %s %s\n",
			nameStyle.Render(n.Binder.String()),
			hintStyle.Render(fmt.Sprintf("(%s %s)", n.Origin, n.Site)))
	}

	if len(c.Exposed) > 0 {
		names := make([]string, len(c.Exposed))
		for i, e := range c.Exposed {
			names[i] = e.Name.String()
			if e.Member != e.Name.Key() {
				names[i] += "<-" + e.Member
			}
		}

		fmt.Fprintf(&b, "  exposes %s\n", exposedStyle.Render(strings.Join(names, ", ")))
	}

	for _, d := range m.unit.Result.DiagnosticsIn(c.ID) {
		fmt.Fprintf(&b, "  %s\n", errorStyle.Render(d.Error()))
	}

	return strings.TrimSuffix(b.String(), "\n")
}
