package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"csvscope/internal/analyze"
	"csvscope/internal/connectors"
	"csvscope/internal/render"
	"csvscope/internal/table"
)

var (
	analyzeOutput    string
	analyzeFormat    string
	analyzeRecursive bool
	analyzeMinSize   int64
	analyzeMaxSize   int64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file or directory]",
	Short: "Profile CSV files and print a report",
	Long: `Profile one CSV file or every CSV file under a directory.
The report covers dimensions, inferred column types, missing values,
duplicate rows, numeric summaries, a preview, and a memory estimate.

Examples:
  csvscope analyze data.csv                     # Single file to stdout
  csvscope analyze /data/ --recursive           # Whole directory tree
  csvscope analyze data.csv --format html       # HTML instead of Markdown
  csvscope analyze data.csv --output report.md  # Save to a file`,

	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			log.Fatalf("Please specify a file or directory to analyze")
		}
		if analyzeFormat != "md" && analyzeFormat != "html" {
			log.Fatalf("Unknown format %q (want md or html)", analyzeFormat)
		}

		targetPath := args[0]
		fileInfo, err := os.Stat(targetPath)
		if err != nil {
			log.Fatalf("Error accessing %s: %v", targetPath, err)
		}

		var out strings.Builder
		if fileInfo.IsDir() {
			analyzeDirectory(&out, targetPath)
		} else {
			analyzeSingleFile(&out, targetPath)
		}

		if analyzeOutput != "" {
			if err := os.WriteFile(analyzeOutput, []byte(out.String()), 0644); err != nil {
				log.Fatalf("Failed to write to output file %s: %v", analyzeOutput, err)
			}
			fmt.Printf("Report saved to %s\n", analyzeOutput)
		} else {
			fmt.Print(out.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "",
		"Output file to save the report (default: stdout)")
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "md",
		"Report format: md or html")
	analyzeCmd.Flags().BoolVarP(&analyzeRecursive, "recursive", "r", false,
		"Process directories recursively")
	analyzeCmd.Flags().Int64Var(&analyzeMinSize, "min-size", 0,
		"Minimum file size in bytes")
	analyzeCmd.Flags().Int64Var(&analyzeMaxSize, "max-size", 0,
		"Maximum file size in bytes")
}

func analyzeSingleFile(out *strings.Builder, filePath string) {
	if !strings.EqualFold(filepath.Ext(filePath), ".csv") {
		log.Fatalf("File must be a CSV file: %s", filePath)
	}

	if err := analyzeFile(out, filePath); err != nil {
		log.Fatalf("%v", err)
	}
}

func analyzeDirectory(out *strings.Builder, dirPath string) {
	options := connectors.DiscoveryOptions{
		Recursive: analyzeRecursive,
		MinSize:   analyzeMinSize,
		MaxSize:   analyzeMaxSize,
	}

	files, err := connectors.DiscoverFiles(dirPath, "csv", options)
	if err != nil {
		log.Fatalf("Failed to discover files: %v", err)
	}
	if len(files) == 0 {
		fmt.Printf("No CSV files found in %s\n", dirPath)
		return
	}
	fmt.Printf("Found %d CSV files\n", len(files))

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetDescription("[cyan][reset] Profiling files..."),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)

	failed := 0
	for _, file := range files {
		if err := analyzeFile(out, file.Path); err != nil {
			log.Printf("%v", err)
			failed++
		}
		bar.Add(1)
	}
	bar.Finish()

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d files failed\n", failed, len(files))
	}
}

// analyzeFile profiles one file and appends the rendered report.
func analyzeFile(out *strings.Builder, filePath string) error {
	raw, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %v", filePath, err)
	}

	report, err := analyze.Analyze(raw)
	if err != nil {
		return analysisError(filePath, err)
	}

	if analyzeFormat == "html" {
		return render.HTML(out, report, filePath)
	}
	out.WriteString(render.Text(report, filePath))
	return nil
}

// analysisError turns the core error taxonomy into messages a CLI user
// can act on.
func analysisError(filePath string, err error) error {
	var emptyData *table.EmptyDataError
	var parseErr *table.ParseError

	switch {
	case errors.Is(err, analyze.ErrEmptyInput):
		return fmt.Errorf("%s is empty", filePath)
	case errors.As(err, &emptyData):
		return fmt.Errorf("%s has no data: %v", filePath, err)
	case errors.As(err, &parseErr):
		return fmt.Errorf("failed to parse %s: %v", filePath, err)
	default:
		return fmt.Errorf("failed to analyze %s: %v", filePath, err)
	}
}
