package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ssargent/pokepack/pkg/dex"
)

// dexCmd represents the dex command
var dexCmd = &cobra.Command{
	Use:   "dex",
	Short: "Query the vocabulary tables",
	Long: `Query the vocabulary tables that map names to packed codes.

Categories: species, items, abilities, moves, natures, teras.`,
}

// dexLookupCmd represents the dex lookup command
var dexLookupCmd = &cobra.Command{
	Use:   "lookup <category> <name|code>...",
	Short: "Look up names or codes",
	Long: `Look up the code for a name, or the name for a numeric code.

Examples:
  pokepack dex lookup species pikachu
  pokepack dex lookup moves 82 "Shadow Ball"`,
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := runtimeFrom(cmd)
		if err != nil {
			return err
		}
		cat, err := dex.ParseCategory(args[0])
		if err != nil {
			return err
		}

		d := rt.packer.Dex()
		rows := make([][]string, 0, len(args)-1)
		for _, key := range args[1:] {
			if code, convErr := strconv.Atoi(key); convErr == nil {
				name, err := d.Name(cat, code)
				if err != nil {
					return err
				}
				rows = append(rows, []string{strconv.Itoa(code), name})
				continue
			}
			code, ok := d.Code(cat, key)
			if !ok {
				return fmt.Errorf("%s %q not found", cat, key)
			}
			name, _ := d.Name(cat, code)
			rows = append(rows, []string{strconv.Itoa(code), name})
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Code", "Name"}, rows, []columnAlignment{alignRight}))
		return nil
	},
}

// dexListCmd represents the dex list command
var dexListCmd = &cobra.Command{
	Use:   "list <category>",
	Short: "List a vocabulary table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := runtimeFrom(cmd)
		if err != nil {
			return err
		}
		cat, err := dex.ParseCategory(args[0])
		if err != nil {
			return err
		}

		table := rt.packer.Dex().Table(cat)
		rows := make([][]string, 0, len(table))
		for code, name := range table {
			if name == "" {
				continue
			}
			rows = append(rows, []string{strconv.Itoa(code), name})
		}

		fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Code", "Name"}, rows, []columnAlignment{alignRight}))
		fmt.Fprintf(cmd.OutOrStdout(), "%d %s\n", len(rows), cat)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dexCmd)
	dexCmd.AddCommand(dexLookupCmd)
	dexCmd.AddCommand(dexListCmd)
}
