package cmd

import (
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytbrief/internal"
)

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show the files and directories ytbrief uses",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configFile := config.ConfigFile
		if configFile == "" {
			configFile = "(defaults only)"
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		for _, row := range [][2]string{
			{"config file", configFile},
			{"config dir", config.ConfigDir},
			{"prompt template", filepath.Join(config.ConfigDir, "prompt.txt")},
			{"data dir", config.DataDir},
			{"cache dir", config.CacheDir},
			{"audio chunks", config.TempDir},
			{"mcp log", internal.MCPLogPath(config.CacheDir)},
		} {
			fmt.Fprintf(w, "%s:\t%s\n", row[0], row[1])
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(pathsCmd)
}
