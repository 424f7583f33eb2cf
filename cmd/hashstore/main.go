// Command hashstore is a small CLI over the content-addressed object store
// and hash-chained log.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

// rootCmd is the main command for the hashstore binary.
var rootCmd = &cobra.Command{
	Use:   "hashstore",
	Short: "hashstore stores and retrieves content-addressed objects",
	Long:  "hashstore stores and retrieves content-addressed objects in a hash-chained append-only log.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a hashstore config file")
	rootCmd.AddCommand(putCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(verifyCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
