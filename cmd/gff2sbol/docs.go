package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// docsCmd generates Markdown or man page documentation for every command.
func docsCmd(root *cobra.Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:    "docs <directory>",
		Short:  "Generate command documentation",
		Args:   cobra.ExactArgs(1),
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			man, _ := cmd.Flags().GetBool("man")
			dir := args[0]

			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", dir, err)
			}

			root.DisableAutoGenTag = true
			if man {
				header := &doc.GenManHeader{Title: "GFF2SBOL", Section: "1"}
				if err := doc.GenManTree(root, header, dir); err != nil {
					return fmt.Errorf("generating man pages: %w", err)
				}
			} else if err := doc.GenMarkdownTree(root, dir); err != nil {
				return fmt.Errorf("generating markdown: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote documentation to %s\n", dir)
			return nil
		},
	}
	cmd.Flags().Bool("man", false, "Generate man pages instead of Markdown")
	return cmd
}
