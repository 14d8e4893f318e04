package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var idsCmd = &cobra.Command{
	Use:   "ids FILE",
	Short: "List every node identifier in document order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, err := loadIndex(args[0])
		if err != nil {
			return err
		}
		for _, id := range ix.NodeIDs() {
			fmt.Println(id)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(idsCmd)
}
