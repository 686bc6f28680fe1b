package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytbrief/internal"
)

// idCmd prints the video ID of a link without touching the network
var idCmd = &cobra.Command{
	Use:   "id [URL]",
	Short: "Extract the video ID from a YouTube link",
	Example: `  # Print the video ID
  ytbrief id "https://youtu.be/tAP1eZYEuKA?t=42"

  # Also print the thumbnail URL
  ytbrief id "https://www.youtube.com/shorts/tAP1eZYEuKA" --thumbnail`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, id, err := internal.ParseArg(args[0])
		if err != nil {
			return err
		}

		fmt.Println(id)
		if thumbnail, _ := cmd.Flags().GetBool("thumbnail"); thumbnail {
			fmt.Println(internal.ThumbnailURL(id))
		}
		return nil
	},
}

func init() {
	idCmd.Flags().Bool("thumbnail", false, "Also print the thumbnail image URL")
	rootCmd.AddCommand(idCmd)
}
