package cli

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/cabinet-lcv/cherche-cli/internal/adapters/driving/tui"
	"github.com/cabinet-lcv/cherche-cli/internal/catalog"
	"github.com/cabinet-lcv/cherche-cli/internal/core/domain"
	"github.com/cabinet-lcv/cherche-cli/internal/core/services"
	"github.com/cabinet-lcv/cherche-cli/internal/logger"
)

var paletteCmd = &cobra.Command{
	Use:     "palette",
	Aliases: []string{"tui"},
	Short:   "Ouvre la palette de recherche interactive",
	Long: `Ouvre la palette de recherche dans le terminal.

Commandes:
  ctrl+k   - Ouvrir / fermer la palette
  ↑, ↓     - Naviguer dans les résultats
  Entrée   - Ouvrir le résultat sélectionné
  ctrl+x   - Effacer les recherches récentes
  Échap    - Fermer la palette
  ctrl+c   - Quitter`,
	RunE: runPalette,
}

func init() {
	rootCmd.AddCommand(paletteCmd)
}

func runPalette(cmd *cobra.Command, _ []string) error {
	// Panic recovery keeps the stack trace readable once the alternate
	// screen has been torn down.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if err := ensureServices(); err != nil {
		return err
	}

	app, err := tui.NewApp(&tui.Ports{Aggregator: aggregator})
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	app.WithContext(ctx)

	p := tea.NewProgram(app, tea.WithAltScreen())
	aggregator.Notify(tui.Notifier(p))
	defer aggregator.Notify(nil)

	watchCatalog(ctx)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// watchCatalog rebuilds the index when a configured catalog file changes
// while the palette is open.
func watchCatalog(ctx context.Context) {
	if configStore == nil {
		return
	}
	path := configStore.GetString("catalog.path")
	if path == "" {
		return
	}

	agg, ok := aggregator.(*services.Aggregator)
	if !ok {
		return
	}

	go func() {
		err := catalog.Watch(ctx, path, func(items []domain.SearchableItem) {
			catalogItems = items
			agg.ReplaceIndex(services.NewStaticIndex(items))
		})
		if err != nil && ctx.Err() == nil {
			logger.Warn("watching catalog %s: %v", path, err)
		}
	}()
}
