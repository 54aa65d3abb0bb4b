package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmanga/getmanga/internal/sites"
)

var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List the supported manga sites",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range sites.Names() {
			fmt.Println(name)
		}
	},
}

func init() {
	rootCmd.AddCommand(sitesCmd)
}
