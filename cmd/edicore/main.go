// Command edicore parses, validates, and maps UN/EDIFACT documents.
package main

import "github.com/errfld/rsedi-sub001/pkg/cmd"

func main() {
	cmd.Execute()
}
