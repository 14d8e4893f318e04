package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var childrenCmd = &cobra.Command{
	Use:   "children FILE NODE_ID",
	Short: "List the direct children of a section",
	Long: `List the (identifier, title) pairs of a section's direct children, in
document order.

Example:
  docindex children report.md 2`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := loadIndex(args[0])
		if err != nil {
			return err
		}
		children, err := ix.GetChildren(args[1])
		if err != nil {
			return err
		}
		for _, c := range children {
			fmt.Printf("[%s] %s\n", c.ID, c.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(childrenCmd)
}
