package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// writeResult writes data plus a trailing newline to path, or to stdout when
// path is empty
func writeResult(cmd *cobra.Command, path string, data []byte) error {
	data = append(data, '\n')
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// status prints progress notes to stderr unless --quiet is set
func status(format string, args ...any) {
	if config != nil && config.Quiet {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
