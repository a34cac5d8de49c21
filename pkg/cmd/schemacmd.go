package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/errfld/rsedi-sub001/pkg/schema"
	"github.com/errfld/rsedi-sub001/pkg/schemaio"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect and resolve layered schemas.",
}

var schemaResolveCmd = &cobra.Command{
	Use:   "resolve [flags] schema_dir schema_name",
	Short: "Fold a schema's inheritance chain into a single effective schema and print it as YAML.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(3)
		}

		registry := loadRegistryDir(args[0])

		resolved, err := registry.Resolve(args[1])
		if err != nil {
			fmt.Println(err)
			os.Exit(3)
		}

		out, err := schemaio.DumpSchema(resolved)
		if err != nil {
			fmt.Println(err)
			os.Exit(3)
		}

		fmt.Println(string(out))
	},
}

// loadRegistryDir loads every "*.yaml"/"*.yml" file in dir as a schema
// and registers it. Schemas are registered in filename order; since
// Register rejects a parent reference to a not-yet-registered schema,
// dir must list base/parent schemas before the children that reference
// them (e.g. "00-base.yaml", "10-orders.yaml").
func loadRegistryDir(dir string) *schema.Registry {
	registry := schema.NewRegistry()

	entries, err := os.ReadDir(dir)
	if err != nil {
		fmt.Println(err)
		os.Exit(3)
	}

	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		data := readFileOrExit(filepath.Join(dir, entry.Name()))

		s, err := schemaio.LoadSchema(data)
		if err != nil {
			fmt.Printf("%s: %s\n", entry.Name(), err)
			os.Exit(3)
		}

		if err := registry.Register(s); err != nil {
			fmt.Printf("%s: %s\n", entry.Name(), err)
			os.Exit(3)
		}
	}

	return registry
}

func init() {
	schemaCmd.AddCommand(schemaResolveCmd)
	rootCmd.AddCommand(schemaCmd)
}
