package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/pokepack/pkg/pack"
	"github.com/ssargent/pokepack/pkg/transform"
)

// encodeCmd represents the encode command
var encodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Pack a team paste",
	Long: `Pack a team paste into one 21-byte record per creature and print the
records as hex or base64, one per line. Reads stdin when no file is given.

Examples:
  pokepack encode team.txt
  pokepack encode --format hex < team.txt
  pokepack encode --format bytes team.txt > team.bin`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := runtimeFrom(cmd)
		if err != nil {
			return err
		}

		input, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		if format == "" {
			format = rt.cfg.Format
		}

		packed, err := rt.packer.PasteToRecords(string(input))
		if err != nil {
			return err
		}

		if format == formatBytes {
			_, err = cmd.OutOrStdout().Write(transform.Join(packed))
			return err
		}

		f, err := transform.ParseFormat(format)
		if err != nil {
			return err
		}
		text := transform.Encode(packed, f)
		fmt.Fprint(cmd.OutOrStdout(), text)

		if showRatio, _ := cmd.Flags().GetBool("ratio"); showRatio {
			fmt.Fprintf(cmd.ErrOrStderr(), "Compression ratio: %.2f:1\n", pack.Ratio(string(input), text))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().StringP("format", "f", "", "Output format: hex, base64 or bytes (default from config)")
	encodeCmd.Flags().Bool("ratio", false, "Print the compression ratio to stderr")
}
