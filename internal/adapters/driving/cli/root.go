// Package cli implements the cherche command line interface.
package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/cabinet-lcv/cherche-cli/internal/adapters/driven/config/file"
	"github.com/cabinet-lcv/cherche-cli/internal/adapters/driven/content/rest"
	sqlitecontent "github.com/cabinet-lcv/cherche-cli/internal/adapters/driven/content/sqlite"
	historyfile "github.com/cabinet-lcv/cherche-cli/internal/adapters/driven/history/file"
	"github.com/cabinet-lcv/cherche-cli/internal/adapters/driven/nav"
	"github.com/cabinet-lcv/cherche-cli/internal/catalog"
	"github.com/cabinet-lcv/cherche-cli/internal/core/domain"
	"github.com/cabinet-lcv/cherche-cli/internal/core/ports/driven"
	"github.com/cabinet-lcv/cherche-cli/internal/core/ports/driving"
	"github.com/cabinet-lcv/cherche-cli/internal/core/services"
	"github.com/cabinet-lcv/cherche-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// DefaultSiteURL is the site the catalog URLs are relative to.
const DefaultSiteURL = "https://www.cabinet-lcv.fr"

var (
	verbose   bool
	configDir string

	// Services wired by ensureServices, or injected by tests.
	configStore  driven.ConfigStore
	catalogItems []domain.SearchableItem
	aggregator   driving.Aggregator
)

var rootCmd = &cobra.Command{
	Use:   "cherche",
	Short: "Recherche unifiée pour le site du cabinet",
	Long: `cherche interroge le catalogue des pages du site et les articles
du blog depuis le terminal.

La recherche locale est instantanée et tolère les fautes de frappe;
les articles du blog arrivent en différé et apparaissent dans le
groupe "Articles du Blog". Lancez la palette interactive avec
"cherche palette" ou une recherche ponctuelle avec "cherche search".`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.cherche)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion overrides the version printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// ensureConfig opens the config store on first use. Commands that only
// need configuration (config, seed) use this without building the full
// search wiring.
func ensureConfig() (driven.ConfigStore, error) {
	if configStore != nil {
		return configStore, nil
	}

	store, err := configfile.NewConfigStore(configDir)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	configStore = store
	return configStore, nil
}

// ensureServices builds the default wiring on first use. Tests inject
// their own aggregator before running commands, which skips all of this.
func ensureServices() error {
	if aggregator != nil {
		return nil
	}

	store, err := ensureConfig()
	if err != nil {
		return err
	}

	items, err := loadCatalog(store)
	if err != nil {
		return err
	}
	catalogItems = items

	dataDir := store.GetString("data.dir")

	history, err := historyfile.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening recent-searches store: %w", err)
	}

	baseURL := store.GetString("site.base_url")
	if baseURL == "" {
		baseURL = DefaultSiteURL
	}

	var opts []services.AggregatorOption
	if secs := store.GetInt("blog.timeout_seconds"); secs > 0 {
		opts = append(opts, services.WithRemoteTimeout(time.Duration(secs)*time.Second))
	}

	aggregator = services.NewAggregator(
		services.NewStaticIndex(items),
		newContentSearcher(store, dataDir),
		history,
		nav.NewBrowser(baseURL),
		opts...,
	)
	return nil
}

// loadCatalog reads the catalog file named in the configuration, falling
// back to the built-in site catalog.
func loadCatalog(store driven.ConfigStore) ([]domain.SearchableItem, error) {
	path := store.GetString("catalog.path")
	if path == "" {
		return catalog.Default(), nil
	}

	items, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return items, nil
}

// newContentSearcher picks the blog backend. Offline mode searches the
// locally seeded article store; otherwise the configured endpoint is
// queried. With neither, results are local-only.
func newContentSearcher(store driven.ConfigStore, dataDir string) driven.ContentSearcher {
	if store.GetBool("blog.offline") {
		s, err := sqlitecontent.NewStore(dataDir)
		if err != nil {
			logger.Warn("opening local article store: %v", err)
			return nil
		}
		return s
	}

	endpoint := store.GetString("blog.endpoint")
	if endpoint == "" {
		logger.Debug("no blog endpoint configured, local-only search")
		return nil
	}
	return rest.NewClient(endpoint, store.GetString("blog.api_key"))
}
