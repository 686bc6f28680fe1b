package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytbrief/internal"
)

// exportCmd paginates an existing text file into a document
var exportCmd = &cobra.Command{
	Use:   "export [input file or -] [output file]",
	Short: "Export text as a paginated PDF, Word or text document",
	Example: `  # Turn a saved summary into a PDF
  ytbrief export summary.md summary.pdf

  # Read from stdin and pick the format explicitly
  ytbrief transcribe tAP1eZYEuKA | ytbrief export - transcript.out --format txt`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		input, output := args[0], args[1]

		var data []byte
		var err error
		if input == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(input)
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		format, _ := cmd.Flags().GetString("format")
		title, _ := cmd.Flags().GetString("title")
		if title == "" && input != "-" {
			title = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		}

		app, err := internal.NewApp(config)
		if err != nil {
			return err
		}

		doc, err := app.Export(string(data), output, format, title)
		if err != nil {
			return err
		}

		status("Wrote %s (%d pages, %d lines)", output, doc.PageCount(), doc.LineCount())
		return nil
	},
}

func init() {
	exportCmd.Flags().String("format", "", "Export format, overrides the file extension (pdf, docx or txt)")
	exportCmd.Flags().String("title", "", "Document title (default: input file name)")
	rootCmd.AddCommand(exportCmd)
}
