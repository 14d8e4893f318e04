package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree FILE",
	Short: "Dump the full index as JSON",
	Long: `Dump the full index as indented JSON. The output preserves every node
identifier, title, level, and body text, and can be stored and reloaded
without loss.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := loadIndex(args[0])
		if err != nil {
			return err
		}
		data, err := ix.ToJSON()
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
