package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/errfld/rsedi-sub001/pkg/edifact"
	"github.com/errfld/rsedi-sub001/pkg/jsonenc"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] input_file",
	Short: "Parse a UN/EDIFACT interchange into its canonical JSON projection.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(3)
		}

		data := readFileOrExit(args[0])

		docs, warnings, err := edifact.Parse(args[0], data)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s: %s\n", w.Code, w.Message)
		}

		for _, doc := range docs {
			out, err := jsonenc.EncodeIndent(doc)
			if err != nil {
				fmt.Println(err)
				os.Exit(3)
			}

			fmt.Println(string(out))
		}
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
