package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cabinet-lcv/cherche-cli/internal/core/domain"
)

var searchJSON bool

var searchCmd = &cobra.Command{
	Use:   "search [terme]",
	Short: "Recherche ponctuelle sur le catalogue et le blog",
	Long: `Interroge le catalogue des pages et les articles du blog en une
passe et affiche les résultats groupés par catégorie. Les articles du
blog apparaissent dans le groupe "Articles du Blog".`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "sortie JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	groups, err := aggregator.Search(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, groups)
	}
	return outputSearchTable(cmd, groups)
}

func outputSearchJSON(cmd *cobra.Command, groups []domain.ResultGroup) error {
	if groups == nil {
		groups = []domain.ResultGroup{}
	}
	data, err := json.MarshalIndent(groups, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, groups []domain.ResultGroup) error {
	if domain.CountResults(groups) == 0 {
		cmd.Println("Aucun résultat.")
		return nil
	}

	for _, group := range groups {
		cmd.Printf("%s\n", group.Category)
		for i := range group.Results {
			r := group.Results[i]
			cmd.Printf("  %s (%.2f)\n", r.Title, r.Score)
			if r.Description != "" {
				cmd.Printf("      %s\n", r.Description)
			}
			if len(r.Keywords) > 0 {
				cmd.Printf("      Mots-clés: %s\n", strings.Join(r.Keywords, ", "))
			}
			cmd.Printf("      %s\n", r.URL)
		}
		cmd.Println()
	}
	return nil
}
