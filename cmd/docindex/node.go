package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"docindex/internal/index"
)

var withChildren bool

var nodeCmd = &cobra.Command{
	Use:   "node FILE NODE_ID",
	Short: "Print one section of a document",
	Long: `Print a single section: its breadcrumb, title, and body text. With
--with-children the body text of the whole subtree is merged in document
order.

Example:
  docindex node report.md 2.1
  docindex node report.md 2 --with-children`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := loadIndex(args[0])
		if err != nil {
			return err
		}

		var node index.Node
		if withChildren {
			node, err = ix.GetNodeWithChildren(args[1])
		} else {
			node, err = ix.GetNode(args[1])
		}
		if err != nil {
			return err
		}

		fmt.Printf("[%s] %s\n", node.ID, strings.Join(node.Breadcrumb, " > "))
		if node.Text != "" {
			fmt.Println()
			fmt.Println(node.Text)
		}
		return nil
	},
}

func init() {
	nodeCmd.Flags().BoolVar(&withChildren, "with-children", false, "merge the body text of all descendants")
	rootCmd.AddCommand(nodeCmd)
}
