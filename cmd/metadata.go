package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytbrief/internal"
)

var metadataCmd = &cobra.Command{
	Use:   "metadata [YouTube URL or ID]",
	Short: "Print the details of a YouTube video as JSON",
	Example: `  ytbrief metadata tAP1eZYEuKA
  ytbrief metadata "https://youtu.be/tAP1eZYEuKA" --pretty -o metadata.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := internal.NewApp(config)
		if err != nil {
			return err
		}

		metadata, err := app.Metadata(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		marshal := json.Marshal
		if pretty, _ := cmd.Flags().GetBool("pretty"); pretty {
			marshal = func(v any) ([]byte, error) { return json.MarshalIndent(v, "", "  ") }
		}
		data, err := marshal(metadata)
		if err != nil {
			return fmt.Errorf("encoding metadata: %w", err)
		}

		output, _ := cmd.Flags().GetString("output")
		return writeResult(cmd, output, data)
	},
}

func init() {
	metadataCmd.Flags().StringP("output", "o", "", "Write the JSON to a file instead of stdout")
	metadataCmd.Flags().Bool("pretty", false, "Indent the JSON")
	rootCmd.AddCommand(metadataCmd)
}
