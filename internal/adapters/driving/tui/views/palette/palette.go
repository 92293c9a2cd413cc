// Package palette implements the search palette view: an input, the
// grouped result list and a status bar, toggled with ctrl+k.
package palette

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cabinet-lcv/cherche-cli/internal/adapters/driving/tui/components/input"
	"github.com/cabinet-lcv/cherche-cli/internal/adapters/driving/tui/components/list"
	"github.com/cabinet-lcv/cherche-cli/internal/adapters/driving/tui/components/status"
	"github.com/cabinet-lcv/cherche-cli/internal/adapters/driving/tui/keymap"
	"github.com/cabinet-lcv/cherche-cli/internal/adapters/driving/tui/messages"
	"github.com/cabinet-lcv/cherche-cli/internal/adapters/driving/tui/styles"
	"github.com/cabinet-lcv/cherche-cli/internal/core/domain"
	"github.com/cabinet-lcv/cherche-cli/internal/core/ports/driving"
)

// View is the search palette.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.GroupedList
	statusbar *status.Bar

	aggregator driving.Aggregator
	ctx        context.Context

	// open tracks whether the palette is showing. Closed, the view only
	// renders the ctrl+k hint.
	open bool

	// lastSeq is the newest publication sequence rendered so far. Async
	// publications older than this are discarded.
	lastSeq uint64

	state  domain.SearchState
	width  int
	height int
	ready  bool
}

// NewView creates a new palette view.
func NewView(s *styles.Styles, km *keymap.KeyMap, aggregator driving.Aggregator) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &View{
		styles:     s,
		keymap:     km,
		input:      input.NewSearchInput(s),
		list:       list.NewGroupedList(s),
		statusbar:  status.NewBar(s, km),
		aggregator: aggregator,
		ctx:        context.Background(),
		width:      80,
		height:     24,
	}
}

// WithContext sets the context used for aggregator calls.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return tea.Batch(v.input.Init(), v.statusbar.Init())
}

// Update handles messages for the palette.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.StateUpdated:
		// Out-of-order async publication: keep what we have.
		if msg.State.Seq <= v.lastSeq {
			return v, nil
		}
		return v, v.applyState(msg.State)

	case messages.SelectionDone:
		if msg.Err != nil {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage("ouverture impossible")
			return v, nil
		}
		return v, v.closePalette()

	case messages.RecentCleared:
		if msg.Err != nil {
			v.statusbar.SetState(status.StateError)
			v.statusbar.SetMessage("effacement impossible")
			return v, nil
		}
		return v, v.applyState(v.aggregator.State())
	}

	// Spinner ticks and everything else go to the status bar.
	var cmd tea.Cmd
	v.statusbar, cmd = v.statusbar.Update(msg)
	return v, cmd
}

// handleKeyMsg processes keyboard input.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	if keymap.Matches(keyStr, v.keymap.Quit) {
		return v, tea.Quit
	}

	if keymap.Matches(keyStr, v.keymap.Toggle) {
		if v.open {
			return v, v.closePalette()
		}
		return v, v.openPalette()
	}

	if !v.open {
		return v, nil
	}

	switch {
	case keymap.Matches(keyStr, v.keymap.Close):
		return v, v.closePalette()

	case keymap.Matches(keyStr, v.keymap.Up):
		v.list.MoveUp()
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Down):
		v.list.MoveDown()
		return v, nil

	case keymap.Matches(keyStr, v.keymap.ClearRecent):
		if _, ok := v.list.SelectedRecent(); ok || v.state.Idle() {
			return v, v.clearRecent()
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Select):
		if term, ok := v.list.SelectedRecent(); ok {
			return v, v.selectRecent(term)
		}
		if result := v.list.SelectedResult(); result != nil {
			return v, v.selectResult(*result)
		}
		return v, nil
	}

	// Everything else edits the query.
	before := v.input.Value()
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	if after := v.input.Value(); after != before {
		return v, tea.Batch(cmd, v.setQuery(after))
	}
	return v, cmd
}

// openPalette shows the palette over the current aggregator state.
func (v *View) openPalette() tea.Cmd {
	v.open = true
	focusCmd := v.input.Focus()
	return tea.Batch(focusCmd, v.applyState(v.aggregator.State()), v.statusbar.Init())
}

// closePalette hides the palette and resets the query, returning the
// aggregator to its idle state.
func (v *View) closePalette() tea.Cmd {
	v.open = false
	v.input.SetValue("")
	v.aggregator.SetQuery(v.ctx, "")
	return v.applyState(v.aggregator.State())
}

// setQuery forwards each edit to the aggregator and renders the local
// snapshot synchronously. Remote updates follow via StateUpdated.
func (v *View) setQuery(query string) tea.Cmd {
	v.aggregator.SetQuery(v.ctx, query)
	return v.applyState(v.aggregator.State())
}

// selectRecent re-runs a logged query.
func (v *View) selectRecent(term string) tea.Cmd {
	v.input.SetValue(term)
	v.aggregator.SelectRecent(v.ctx, term)
	return v.applyState(v.aggregator.State())
}

// selectResult opens the highlighted result in the browser.
func (v *View) selectResult(result domain.SearchResult) tea.Cmd {
	return func() tea.Msg {
		err := v.aggregator.Select(v.ctx, result)
		return messages.SelectionDone{Result: result, Err: err}
	}
}

// clearRecent empties the recent-searches log.
func (v *View) clearRecent() tea.Cmd {
	return func() tea.Msg {
		return messages.RecentCleared{Err: v.aggregator.ClearRecent(v.ctx)}
	}
}

// applyState renders a search state into the components, preserving the
// selection position where possible.
func (v *View) applyState(state domain.SearchState) tea.Cmd {
	v.lastSeq = state.Seq
	v.state = state

	selected := v.list.Selected()
	if state.Query == "" {
		v.list.SetRecent(state.Recent)
	} else {
		v.list.SetGroups(state.Groups)
	}
	for i := 0; i < selected && i < v.list.Count()-1; i++ {
		v.list.MoveDown()
	}

	switch {
	case state.Loading:
		v.statusbar.SetState(status.StateSearching)
		return v.statusbar.Init()
	case state.NoResults:
		v.statusbar.SetState(status.StateNoResults)
	case state.Query == "":
		v.statusbar.SetState(status.StateIdle)
	default:
		v.statusbar.SetState(status.StateResults)
		v.statusbar.SetResultCount(domain.CountResults(state.Groups))
	}
	return nil
}

// View renders the palette.
func (v *View) View() string {
	if !v.ready {
		return "Initialisation..."
	}

	if !v.open {
		title := v.styles.Title.Render("cherche")
		hint := v.styles.Muted.Render("ctrl+k pour rechercher · ctrl+c pour quitter")
		return lipgloss.JoinVertical(lipgloss.Left, title, "", hint)
	}

	sections := make([]string, 0, 8)
	sections = append(sections, v.styles.Title.Render("cherche"), "")
	sections = append(sections, v.input.View(), "")

	if v.state.NoResults {
		sections = append(sections,
			v.styles.Muted.Render("Aucun résultat pour « "+v.state.Query+" »"))
	} else {
		sections = append(sections, v.list.View())
	}

	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-8)
	v.statusbar.SetWidth(width)
}

// Open returns whether the palette is showing.
func (v *View) Open() bool {
	return v.open
}

// Query returns the current input value.
func (v *View) Query() string {
	return v.input.Value()
}

// State returns the last rendered search state.
func (v *View) State() domain.SearchState {
	return v.state
}

// SelectedResult returns the highlighted result, if any.
func (v *View) SelectedResult() *domain.SearchResult {
	return v.list.SelectedResult()
}

// Ready returns whether the view has received its dimensions.
func (v *View) Ready() bool {
	return v.ready
}
