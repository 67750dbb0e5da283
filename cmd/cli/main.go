package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host   string
	tag    string
	dryRun bool
)

var rootCmd = &cobra.Command{
	Use:   "swiss-cli",
	Short: "A CLI to interact with the swiss-forum server",
	Long: `A command-line interface for running a Swiss-system tournament and
its forum through the swiss-forum server.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&tag, "tournament", "", "Tournament tag (empty means the current tournament)")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Ask the server not to send notifications or delete anything")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
