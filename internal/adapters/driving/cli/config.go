package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage cherche configuration",
	Long: `View and edit the configuration file (~/.cherche/config.toml).

Keys:
  site.base_url        site the catalog URLs are relative to
  blog.endpoint        PostgREST endpoint for blog search
  blog.api_key         anon key sent with blog requests
  blog.offline         search the locally seeded mirror instead
  blog.timeout_seconds remote search timeout
  catalog.path         TOML catalog overriding the built-in one
  data.dir             directory for the history log and the mirror`,
	RunE: runConfigList,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configured values",
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get [clé]",
	Short: "Print one configured value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [clé] [valeur]",
	Short: "Set a configuration value",
	Long: `Set a configuration value and persist it immediately.

"true"/"false" are stored as booleans and integer values as integers;
anything else is stored as a string.`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	store, err := ensureConfig()
	if err != nil {
		return err
	}

	keys := store.Keys()
	if len(keys) == 0 {
		cmd.Println("Aucune valeur configurée.")
		return nil
	}

	for _, key := range keys {
		val, _ := store.Get(key)
		cmd.Printf("%s = %v\n", key, val)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	store, err := ensureConfig()
	if err != nil {
		return err
	}

	val, ok := store.Get(args[0])
	if !ok {
		return fmt.Errorf("%s: non défini", args[0])
	}
	cmd.Printf("%v\n", val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	store, err := ensureConfig()
	if err != nil {
		return err
	}

	if err := store.Set(args[0], coerceValue(args[1])); err != nil {
		return fmt.Errorf("setting %s: %w", args[0], err)
	}
	cmd.Printf("%s = %v\n", args[0], coerceValue(args[1]))
	return nil
}

// coerceValue maps CLI input to the TOML types the typed getters expect.
func coerceValue(raw string) any {
	if b, err := strconv.ParseBool(raw); err == nil && (raw == "true" || raw == "false") {
		return b
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	return raw
}
