package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	sqlitecontent "github.com/cabinet-lcv/cherche-cli/internal/adapters/driven/content/sqlite"
)

var seedDataDir string

var seedCmd = &cobra.Command{
	Use:   "seed [fichier]",
	Short: "Importe des articles de blog dans l'index local",
	Long: `Charge un fichier TOML d'articles de blog dans la base locale
utilisée en mode hors-ligne (blog.offline = true).

Format du fichier:

  [[posts]]
  id = "a3f1..."            # optionnel, généré sinon
  title = "Gérer le stress"
  excerpt = "Quelques pistes concrètes."
  content = "..."
  created_at = 2026-05-12T09:00:00Z`,
	Args: cobra.ExactArgs(1),
	RunE: runSeed,
}

// seedFile mirrors the TOML layout above.
type seedFile struct {
	Posts []seedPost `toml:"posts"`
}

type seedPost struct {
	ID        string    `toml:"id"`
	Title     string    `toml:"title"`
	Excerpt   string    `toml:"excerpt"`
	Content   string    `toml:"content"`
	CreatedAt time.Time `toml:"created_at"`
}

func init() {
	seedCmd.Flags().StringVar(&seedDataDir, "data-dir", "", "data directory (default ~/.cherche/data)")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	var file seedFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing %s: %w", args[0], err)
	}
	if len(file.Posts) == 0 {
		return fmt.Errorf("%s contains no posts", args[0])
	}

	// Without the flag, resolve the directory the same way offline
	// search does, so seeded posts land where search reads them.
	dataDir := seedDataDir
	if dataDir == "" {
		cfg, err := ensureConfig()
		if err != nil {
			return err
		}
		dataDir = cfg.GetString("data.dir")
	}

	store, err := sqlitecontent.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening local article store: %w", err)
	}
	defer store.Close()

	for _, post := range file.Posts {
		id := post.ID
		if id == "" {
			id = uuid.NewString()
		}
		err := store.SavePost(cmd.Context(), sqlitecontent.BlogPost{
			ID:        id,
			Title:     post.Title,
			Excerpt:   post.Excerpt,
			Content:   post.Content,
			CreatedAt: post.CreatedAt,
		})
		if err != nil {
			return fmt.Errorf("saving %q: %w", post.Title, err)
		}
	}

	cmd.Printf("%d article(s) importé(s) dans %s\n", len(file.Posts), store.Path())
	return nil
}
