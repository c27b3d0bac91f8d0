// Офлайн-конвертер контента статей между HTML, Markdown, документом блоков и содержимым статьи.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "blockconv",
		Short:         "Convert article content between html, markdown and blocks",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newCommands()...)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
