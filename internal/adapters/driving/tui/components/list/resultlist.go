// Package list provides the grouped result list for the TUI.
package list

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cabinet-lcv/cherche-cli/internal/adapters/driving/tui/styles"
	"github.com/cabinet-lcv/cherche-cli/internal/core/domain"
)

// mode selects what the list is currently showing.
type mode int

const (
	modeResults mode = iota
	modeRecent
)

// GroupedList displays search results grouped by category, or the
// recent-searches log when the query is empty. Navigation moves through
// a flattened sequence; category headers are skipped.
type GroupedList struct {
	groups   []domain.ResultGroup
	flat     []domain.SearchResult
	recent   []string
	mode     mode
	selected int
	styles   *styles.Styles
	width    int
	height   int
}

// NewGroupedList creates a new grouped list component.
func NewGroupedList(s *styles.Styles) *GroupedList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &GroupedList{
		styles: s,
		width:  80,
		height: 14,
	}
}

// Init initialises the list.
func (l *GroupedList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *GroupedList) Update(msg tea.Msg) (*GroupedList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		//nolint:exhaustive // handling only relevant key types
		switch msg.Type {
		case tea.KeyUp:
			l.MoveUp()
		case tea.KeyDown:
			l.MoveDown()
		default:
			// Handle other keys
		}
	}
	return l, nil
}

// SetGroups switches to grouped results.
func (l *GroupedList) SetGroups(groups []domain.ResultGroup) {
	l.groups = groups
	l.flat = l.flat[:0]
	for _, g := range groups {
		l.flat = append(l.flat, g.Results...)
	}
	l.mode = modeResults
	l.selected = 0
}

// SetRecent switches to the recent-searches log.
func (l *GroupedList) SetRecent(entries []string) {
	l.recent = entries
	l.mode = modeRecent
	l.selected = 0
}

// View renders the list.
func (l *GroupedList) View() string {
	if l.mode == modeRecent {
		return l.viewRecent()
	}
	return l.viewResults()
}

// viewResults renders grouped results with category headers.
func (l *GroupedList) viewResults() string {
	if len(l.flat) == 0 {
		return ""
	}

	lines := make([]string, 0, len(l.flat)*2+len(l.groups))

	index := 0
	for _, g := range l.groups {
		lines = append(lines, l.styles.Category.Render(g.Category))
		for i := range g.Results {
			lines = append(lines, l.renderResult(index, &g.Results[i]))
			index++
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}

// viewRecent renders the recent-searches log.
func (l *GroupedList) viewRecent() string {
	if len(l.recent) == 0 {
		return l.styles.Muted.Render("Aucune recherche récente")
	}

	lines := make([]string, 0, len(l.recent)+2)
	lines = append(lines, l.styles.Category.Render("Recherches récentes"), "")

	for i, term := range l.recent {
		indicator := "  "
		if i == l.selected {
			indicator = "> "
			lines = append(lines, l.styles.Selected.Render(indicator+term))
			continue
		}
		lines = append(lines, l.styles.Normal.Render(indicator+term))
	}

	return strings.Join(lines, "\n")
}

// renderResult formats a single search result.
func (l *GroupedList) renderResult(index int, result *domain.SearchResult) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	title := result.Title
	if title == "" {
		title = "(Sans titre)"
	}

	maxTitleLen := l.width - 8
	if maxTitleLen < 10 {
		maxTitleLen = 10
	}
	if len(title) > maxTitleLen {
		title = title[:maxTitleLen-3] + "..."
	}

	var titleLine string
	if index == l.selected {
		titleLine = l.styles.Selected.Render(indicator + title)
	} else {
		titleLine = l.styles.Normal.Render(indicator + title)
	}

	desc := result.Description
	if desc == "" {
		return titleLine
	}

	maxDescLen := l.width - 6
	if maxDescLen < 20 {
		maxDescLen = 20
	}
	if len(desc) > maxDescLen {
		desc = desc[:maxDescLen-3] + "..."
	}

	return titleLine + "\n" + l.styles.Muted.Render("    "+desc)
}

// Selected returns the index of the selected entry.
func (l *GroupedList) Selected() int {
	return l.selected
}

// SelectedResult returns the selected result, or nil when the list shows
// the recent log or is empty.
func (l *GroupedList) SelectedResult() *domain.SearchResult {
	if l.mode != modeResults || l.selected < 0 || l.selected >= len(l.flat) {
		return nil
	}
	return &l.flat[l.selected]
}

// SelectedRecent returns the selected recent term, or false when the
// list shows results or is empty.
func (l *GroupedList) SelectedRecent() (string, bool) {
	if l.mode != modeRecent || l.selected < 0 || l.selected >= len(l.recent) {
		return "", false
	}
	return l.recent[l.selected], true
}

// MoveUp moves selection up.
func (l *GroupedList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *GroupedList) MoveDown() {
	if l.selected < l.Count()-1 {
		l.selected++
	}
}

// Count returns the number of navigable entries.
func (l *GroupedList) Count() int {
	if l.mode == modeRecent {
		return len(l.recent)
	}
	return len(l.flat)
}

// IsEmpty returns whether the list has no navigable entries.
func (l *GroupedList) IsEmpty() bool {
	return l.Count() == 0
}

// SetDimensions sets the component dimensions.
func (l *GroupedList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Width returns the current width.
func (l *GroupedList) Width() int {
	return l.width
}

// Height returns the current height.
func (l *GroupedList) Height() int {
	return l.height
}

// Categories returns the rendered category order (for tests).
func (l *GroupedList) Categories() []string {
	cats := make([]string, len(l.groups))
	for i, g := range l.groups {
		cats[i] = g.Category
	}
	return cats
}
