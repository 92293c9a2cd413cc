package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabinet-lcv/cherche-cli/internal/adapters/driving/tui/messages"
	"github.com/cabinet-lcv/cherche-cli/internal/core/domain"
	"github.com/cabinet-lcv/cherche-cli/internal/core/services"
)

func testPorts(t *testing.T) *Ports {
	t.Helper()
	index := services.NewStaticIndex([]domain.SearchableItem{
		{Title: "Hypnose Thérapeutique", URL: "/psychologie/hypnose", Category: "Psychologie"},
	})
	agg := services.NewAggregator(index, nil, nil, nil)
	t.Cleanup(agg.Close)
	return &Ports{Aggregator: agg}
}

func TestNewApp(t *testing.T) {
	app, err := NewApp(testPorts(t))

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.False(t, app.Ready())
}

func TestNewApp_NilPorts(t *testing.T) {
	app, err := NewApp(nil)

	assert.Error(t, err)
	assert.Nil(t, app)
}

func TestNewApp_MissingAggregator(t *testing.T) {
	app, err := NewApp(&Ports{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoAggregator)
	assert.Nil(t, app)
}

func TestApp_WithContext(t *testing.T) {
	app, err := NewApp(testPorts(t))
	require.NoError(t, err)

	result := app.WithContext(context.Background())

	assert.Equal(t, app, result)
}

func TestApp_Init(t *testing.T) {
	app, err := NewApp(testPorts(t))
	require.NoError(t, err)

	cmd := app.Init()

	assert.NotNil(t, cmd)
}

func TestApp_WindowSizeMakesReady(t *testing.T) {
	app, err := NewApp(testPorts(t))
	require.NoError(t, err)
	require.Contains(t, app.View(), "Initialisation")

	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	updated, ok := model.(*App)
	require.True(t, ok)
	assert.True(t, updated.Ready())
	assert.Contains(t, updated.View(), "ctrl+k")
}

func TestApp_QuitMessage(t *testing.T) {
	app, err := NewApp(testPorts(t))
	require.NoError(t, err)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestApp_ForwardsKeysToPalette(t *testing.T) {
	app, err := NewApp(testPorts(t))
	require.NoError(t, err)
	app.SetDimensions(100, 30)

	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyCtrlK})

	updated, ok := model.(*App)
	require.True(t, ok)
	assert.True(t, updated.Palette().Open())
}

func TestNotifier_SendsStateUpdates(t *testing.T) {
	// The notifier forwards asynchronously; the palette re-orders by Seq.
	notify := Notifier(nil)
	assert.NotNil(t, notify)
}
