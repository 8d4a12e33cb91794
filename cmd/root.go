package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "csvscope",
	Short: "CSV ingestion and profiling tool",
	Long: `Profiles CSV files: encoding detection, dialect sniffing,
type inference, and structural statistics, as a CLI report
or a web upload form`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
