package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/errfld/rsedi-sub001/pkg/edifact"
	"github.com/errfld/rsedi-sub001/pkg/jsonenc"
	"github.com/errfld/rsedi-sub001/pkg/mapping"
	"github.com/errfld/rsedi-sub001/pkg/schemaio"
)

var mapCmd = &cobra.Command{
	Use:   "map [flags] input_file mapping_file",
	Short: "Map a UN/EDIFACT interchange into a target shape using a mapping program.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(3)
		}

		data := readFileOrExit(args[0])
		mappingData := readFileOrExit(args[1])

		program, err := schemaio.LoadMapping(mappingData)
		if err != nil {
			fmt.Println(err)
			os.Exit(3)
		}

		tables := loadTables(GetString(cmd, "tables"))

		docs, warnings, err := edifact.Parse(args[0], data)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}

		rt := mapping.NewRuntime(tables)

		for _, doc := range docs {
			out, err := rt.Run(program, doc)
			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}

			encoded, err := jsonenc.EncodeIndent(out)
			if err != nil {
				fmt.Println(err)
				os.Exit(3)
			}

			fmt.Println(string(encoded))
		}
	},
}

// loadTables reads an optional YAML file of lookup tables, shaped as a
// map of table name to a map of source code to target value. An empty
// path means the mapping program uses no Lookup rules/transforms.
func loadTables(path string) map[string]map[string]string {
	if path == "" {
		return nil
	}

	data := readFileOrExit(path)

	var tables map[string]map[string]string
	if err := yaml.Unmarshal(data, &tables); err != nil {
		fmt.Println(err)
		os.Exit(3)
	}

	return tables
}

func init() {
	mapCmd.Flags().String("tables", "", "path to a YAML file of lookup tables referenced by the mapping program")
	rootCmd.AddCommand(mapCmd)
}
