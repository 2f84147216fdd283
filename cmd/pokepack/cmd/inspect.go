package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ssargent/pokepack/pkg/pack"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect [file]",
	Short: "Show how each set of a paste is packed",
	Long: `Parse a team paste and show, per creature, the resolved codes and the
packed record. Unknown names show code 0; values that do not fit their
packed field are flagged.

Example:
  pokepack inspect team.txt`,
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

		inspections, err := rt.packer.Inspect(string(input))
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderInspections(inspections))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func renderInspections(inspections []pack.Inspection) string {
	headers := []string{"#", "Species", "Item", "Ability", "Lvl", "Tera", "Nature", "Moves", "Packed", "Range"}
	aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight}

	rows := make([][]string, len(inspections))
	for i, in := range inspections {
		r := in.Record
		moves := make([]string, len(r.Moves))
		for j, m := range r.Moves {
			moves[j] = strconv.Itoa(int(m))
		}
		status := "ok"
		if in.Truncated != nil {
			status = "truncated"
		}
		rows[i] = []string{
			strconv.Itoa(i + 1),
			codeCell(in.Set.Species, int(r.Species)),
			codeCell(in.Set.Item, int(r.Item)),
			codeCell(in.Set.Ability, int(r.Ability)),
			strconv.Itoa(int(r.Level)),
			codeCell(in.Set.Tera, int(r.Tera)),
			codeCell(in.Set.Nature, int(r.Nature)),
			strings.Join(moves, " "),
			strings.ToUpper(hex.EncodeToString(in.Packed[:])),
			status,
		}
	}
	return renderTable(headers, rows, aligns)
}

func codeCell(name string, code int) string {
	if name == "" {
		return "-"
	}
	return fmt.Sprintf("%s (%d)", name, code)
}

