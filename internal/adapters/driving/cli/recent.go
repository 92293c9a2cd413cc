package cli

import (
	"github.com/spf13/cobra"
)

var recentClear bool

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Affiche les recherches récentes",
	Long: `Affiche les cinq dernières recherches ayant mené à l'ouverture
d'un résultat, de la plus récente à la plus ancienne.`,
	RunE: runRecent,
}

func init() {
	recentCmd.Flags().BoolVar(&recentClear, "clear", false, "efface l'historique")
	rootCmd.AddCommand(recentCmd)
}

func runRecent(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	if recentClear {
		if err := aggregator.ClearRecent(cmd.Context()); err != nil {
			return err
		}
		cmd.Println("Recherches récentes effacées.")
		return nil
	}

	entries := aggregator.Recent()
	if len(entries) == 0 {
		cmd.Println("Aucune recherche récente.")
		return nil
	}

	for i, entry := range entries {
		cmd.Printf("  %d. %s\n", i+1, entry)
	}
	return nil
}
