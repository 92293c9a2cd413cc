package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabinet-lcv/cherche-cli/internal/core/domain"
)

func testGroups() []domain.ResultGroup {
	return []domain.ResultGroup{
		{
			Category: "Psychologie",
			Results: []domain.SearchResult{
				{Title: "Hypnose Thérapeutique", Description: "Une approche douce", URL: "/psychologie/hypnose"},
				{Title: "RITMO®", URL: "/psychologie/ritmo"},
			},
		},
		{
			Category: domain.CategoryBlog,
			Results: []domain.SearchResult{
				{Title: "Gérer le stress", URL: "/blog/42"},
			},
		},
	}
}

func TestGroupedList_SetGroupsFlattens(t *testing.T) {
	l := NewGroupedList(nil)

	l.SetGroups(testGroups())

	assert.Equal(t, 3, l.Count())
	assert.False(t, l.IsEmpty())
	assert.Equal(t, []string{"Psychologie", domain.CategoryBlog}, l.Categories())
}

func TestGroupedList_NavigationCrossesGroups(t *testing.T) {
	l := NewGroupedList(nil)
	l.SetGroups(testGroups())

	require.Equal(t, 0, l.Selected())
	l.MoveDown()
	l.MoveDown()

	// Third entry is the blog result in the second group.
	result := l.SelectedResult()
	require.NotNil(t, result)
	assert.Equal(t, "/blog/42", result.URL)

	// Cannot move past the end.
	l.MoveDown()
	assert.Equal(t, 2, l.Selected())

	l.MoveUp()
	l.MoveUp()
	l.MoveUp()
	assert.Equal(t, 0, l.Selected())
}

func TestGroupedList_ViewShowsCategoryHeaders(t *testing.T) {
	l := NewGroupedList(nil)
	l.SetGroups(testGroups())

	view := l.View()

	assert.Contains(t, view, "Psychologie")
	assert.Contains(t, view, domain.CategoryBlog)
	assert.Contains(t, view, "Hypnose Thérapeutique")
	assert.Contains(t, view, "Gérer le stress")
}

func TestGroupedList_RecentMode(t *testing.T) {
	l := NewGroupedList(nil)
	l.SetRecent([]string{"trauma", "anxiété"})

	assert.Equal(t, 2, l.Count())
	assert.Nil(t, l.SelectedResult())

	term, ok := l.SelectedRecent()
	require.True(t, ok)
	assert.Equal(t, "trauma", term)

	l.MoveDown()
	term, ok = l.SelectedRecent()
	require.True(t, ok)
	assert.Equal(t, "anxiété", term)

	view := l.View()
	assert.Contains(t, view, "Recherches récentes")
	assert.Contains(t, view, "trauma")
}

func TestGroupedList_RecentModeEmpty(t *testing.T) {
	l := NewGroupedList(nil)
	l.SetRecent(nil)

	assert.True(t, l.IsEmpty())
	_, ok := l.SelectedRecent()
	assert.False(t, ok)
	assert.Contains(t, l.View(), "Aucune recherche récente")
}

func TestGroupedList_SwitchingModesResetsSelection(t *testing.T) {
	l := NewGroupedList(nil)
	l.SetGroups(testGroups())
	l.MoveDown()

	l.SetRecent([]string{"trauma"})
	assert.Equal(t, 0, l.Selected())

	l.SetGroups(testGroups())
	assert.Equal(t, 0, l.Selected())
}

func TestGroupedList_SelectedRecentOutOfResultsMode(t *testing.T) {
	l := NewGroupedList(nil)
	l.SetGroups(testGroups())

	_, ok := l.SelectedRecent()
	assert.False(t, ok)
}
