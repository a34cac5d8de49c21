package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/errfld/rsedi-sub001/pkg/edifact"
	"github.com/errfld/rsedi-sub001/pkg/schemaio"
	"github.com/errfld/rsedi-sub001/pkg/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate [flags] input_file schema_file",
	Short: "Validate a UN/EDIFACT interchange against a schema.",
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			fmt.Println(cmd.UsageString())
			os.Exit(3)
		}

		data := readFileOrExit(args[0])
		schemaData := readFileOrExit(args[1])

		s, err := schemaio.LoadSchema(schemaData)
		if err != nil {
			fmt.Println(err)
			os.Exit(3)
		}

		docs, warnings, err := edifact.Parse(args[0], data)
		if err != nil {
			fmt.Println(err)
			os.Exit(2)
		}

		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}

		cfg := validate.Config{
			Strictness:      strictnessFromFlag(GetString(cmd, "strictness")),
			ContinueOnError: !GetFlag(cmd, "fail-fast"),
		}

		allValid := true

		for _, doc := range docs {
			result := validate.Validate(doc, s, cfg)
			printResult(result)

			if !result.IsValid {
				allValid = false
			}
		}

		if !allValid {
			os.Exit(1)
		}
	},
}

func strictnessFromFlag(s string) validate.Strictness {
	switch s {
	case "permissive":
		return validate.Permissive
	case "strict":
		return validate.Strict
	default:
		return validate.Standard
	}
}

func printResult(r *validate.Result) {
	for _, d := range r.Errors {
		fmt.Printf("ERROR   %s %s: %s\n", d.Code, d.Path, d.Message)
	}

	for _, d := range r.Warnings {
		fmt.Printf("WARNING %s %s: %s\n", d.Code, d.Path, d.Message)
	}

	for _, d := range r.Infos {
		fmt.Printf("INFO    %s %s: %s\n", d.Code, d.Path, d.Message)
	}

	fmt.Printf("valid: %v\n", r.IsValid)
}

func init() {
	validateCmd.Flags().String("strictness", "standard", "validation strictness: permissive, standard, or strict")
	validateCmd.Flags().Bool("fail-fast", false, "stop at the first error-severity diagnostic")
	rootCmd.AddCommand(validateCmd)
}
