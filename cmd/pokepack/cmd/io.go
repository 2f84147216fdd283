package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

const formatBytes = "bytes"

// readInput reads the file named by args[0], or stdin when there is no
// argument or it is "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) > 0 && args[0] != "-" {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read input: %w", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}
