package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var outlineCmd = &cobra.Command{
	Use:   "outline FILE",
	Short: "Print the section outline of a document",
	Long: `Print one line per section: its identifier in brackets and its title,
indented by nesting level.

Example:
  docindex outline report.md`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := loadIndex(args[0])
		if err != nil {
			return err
		}
		if out := ix.Outline(); out != "" {
			fmt.Println(out)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(outlineCmd)
}
