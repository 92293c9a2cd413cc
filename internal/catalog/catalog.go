// Package catalog provides the static catalog of searchable site
// sections. The default catalog is compiled in; it can be overridden by
// a TOML file, optionally watched for changes.
package catalog

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/cabinet-lcv/cherche-cli/internal/core/domain"
)

// Default returns the compiled-in catalog of site sections.
func Default() []domain.SearchableItem {
	return []domain.SearchableItem{
		{
			Title:       "Graphothérapie",
			Description: "Retrouvez une écriture fluide et sereine à tout âge",
			URL:         "/graphotherapie",
			Category:    "Services",
			Keywords:    []string{"écriture", "rééducation", "graphomotricité", "dysgraphie"},
			Synonyms:    []string{"rééducation écriture", "problèmes écriture", "difficulté écriture"},
		},
		{
			Title:       "Exercices de Graphothérapie",
			Description: "Découvrez les exercices et techniques pour améliorer l'écriture",
			URL:         "/graphotherapie/exercices",
			Category:    "Services",
			Keywords:    []string{"exercices", "techniques", "pratique", "amélioration"},
		},
		{
			Title:       "Thérapies Cognitivo-Comportementales (TCC)",
			Description: "Une approche scientifiquement validée pour comprendre et modifier les schémas de pensée",
			URL:         "/psychologie/tcc",
			Category:    "Psychologie",
			Keywords:    []string{"TCC", "thérapie", "comportement", "cognition"},
			Synonyms:    []string{"thérapie comportementale", "thérapie cognitive"},
		},
		{
			Title:       "RITMO®",
			Description: "Une méthode innovante pour le traitement des traumatismes",
			URL:         "/psychologie/ritmo",
			Category:    "Psychologie",
			Keywords:    []string{"RITMO", "traumatisme", "EMDR", "thérapie"},
			Synonyms:    []string{"traitement trauma", "thérapie trauma"},
		},
		{
			Title:       "Hypnose Thérapeutique",
			Description: "Une approche douce pour accéder à vos ressources intérieures",
			URL:         "/psychologie/hypnose",
			Category:    "Psychologie",
			Keywords:    []string{"hypnose", "relaxation", "thérapie", "bien-être"},
			Synonyms:    []string{"hypnothérapie", "séance hypnose"},
		},
		{
			Title:       "Quelle approche thérapeutique ?",
			Description: "Découvrez quelle approche correspond le mieux à vos besoins",
			URL:         "/psychologie/quelle-approche",
			Category:    "Psychologie",
			Keywords:    []string{"thérapie", "approche", "méthode", "accompagnement"},
		},
		{
			Title:       "Domaines d'intervention",
			Description: "Anxiété, stress, dépression, traumatismes et autres domaines d'intervention",
			URL:         "/psychologie/domaines-intervention",
			Category:    "Psychologie",
			Keywords:    []string{"anxiété", "stress", "dépression", "trauma", "phobie"},
			Synonyms:    []string{"troubles", "problèmes", "difficultés"},
		},
		{
			Title:       "Collaboration DysMoi",
			Description: "Structure dédiée à la détection et l'accompagnement des neurodiversités",
			URL:         "/collaboration",
			Category:    "Collaborations",
			Keywords:    []string{"DysMoi", "neurodiversité", "troubles DYS", "apprentissage"},
			Synonyms:    []string{"neuroatypie", "troubles apprentissage"},
		},
		{
			Title:       "Réseau REALISM",
			Description: "Accompagnement psychologique précoce pour les jeunes de 0 à 23 ans",
			URL:         "/collaboration#realism",
			Category:    "Collaborations",
			Keywords:    []string{"REALISM", "jeunes", "accompagnement", "psychologie"},
			Synonyms:    []string{"aide psychologique", "soutien jeunes"},
		},
		{
			Title:       "Contact",
			Description: "Prenez rendez-vous ou contactez-moi pour plus d'informations",
			URL:         "/contact",
			Category:    "Contact",
			Keywords:    []string{"rendez-vous", "contact", "consultation", "information"},
			Synonyms:    []string{"prise de rendez-vous", "consultation"},
		},
	}
}

// catalogFile is the TOML shape of an external catalog file.
type catalogFile struct {
	Items []domain.SearchableItem `toml:"items"`
}

// LoadFile reads a catalog from a TOML file with [[items]] tables.
func LoadFile(path string) ([]domain.SearchableItem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}

	var f catalogFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}

	if err := Validate(f.Items); err != nil {
		return nil, err
	}

	return f.Items, nil
}

// Validate checks catalog integrity: non-empty, and every item carries a
// title, a unique URL and a category.
func Validate(items []domain.SearchableItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: catalog is empty", domain.ErrInvalidInput)
	}

	urls := make(map[string]struct{}, len(items))
	for i, item := range items {
		if item.Title == "" {
			return fmt.Errorf("%w: item %d has no title", domain.ErrInvalidInput, i)
		}
		if item.URL == "" {
			return fmt.Errorf("%w: item %q has no url", domain.ErrInvalidInput, item.Title)
		}
		if item.Category == "" {
			return fmt.Errorf("%w: item %q has no category", domain.ErrInvalidInput, item.Title)
		}
		if _, dup := urls[item.URL]; dup {
			return fmt.Errorf("%w: duplicate url %q", domain.ErrInvalidInput, item.URL)
		}
		urls[item.URL] = struct{}{}
	}

	return nil
}
