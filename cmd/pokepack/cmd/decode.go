package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/pokepack/pkg/codec"
	"github.com/ssargent/pokepack/pkg/transform"
)

// decodeCmd represents the decode command
var decodeCmd = &cobra.Command{
	Use:   "decode [file]",
	Short: "Unpack records back into a team paste",
	Long: `Decode hex or base64 records (one per line) and print the team paste.
Without --format the text is tried as hex, then as base64.

Examples:
  pokepack decode team.b64
  pokepack decode --format bytes team.bin`,
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

		var out string
		switch format {
		case formatBytes:
			var packed []codec.Packed
			if packed, err = transform.Split(input); err == nil {
				out, err = rt.packer.RecordsToPaste(packed)
			}
		case "":
			out, err = rt.packer.TextToPaste(string(input), "")
		default:
			var f transform.Format
			if f, err = transform.ParseFormat(format); err == nil {
				out, err = rt.packer.TextToPaste(string(input), f)
			}
		}
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().StringP("format", "f", "", "Input format: hex, base64 or bytes (default: detect)")
}
