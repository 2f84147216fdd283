package cmd

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/ssargent/pokepack/pkg/dex"
	"github.com/ssargent/pokepack/pkg/storage"
	"github.com/ssargent/pokepack/pkg/transform"
)

// teamCmd represents the team command
var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Manage stored teams",
	Long: `Save packed teams in the local team store (under data_dir) and read
them back by id.`,
}

// teamSaveCmd represents the team save command
var teamSaveCmd = &cobra.Command{
	Use:   "save [file]",
	Short: "Pack a paste and store it",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := runtimeFrom(cmd)
		if err != nil {
			return err
		}
		input, err := readInput(cmd, args)
		if err != nil {
			return err
		}

		packed, err := rt.packer.PasteToRecords(string(input))
		if err != nil {
			return err
		}

		store, err := openTeamStore(rt)
		if err != nil {
			return err
		}
		defer store.Close()

		id, err := store.Create(packed)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id.String())
		return nil
	},
}

// teamGetCmd represents the team get command
var teamGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print a stored team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := runtimeFrom(cmd)
		if err != nil {
			return err
		}
		id, err := storage.ParseID(args[0])
		if err != nil {
			return err
		}

		store, err := openTeamStore(rt)
		if err != nil {
			return err
		}
		defer store.Close()

		e, err := store.Read(id)
		if err != nil {
			return err
		}

		format, _ := cmd.Flags().GetString("format")
		if format == "paste" {
			text, err := rt.packer.RecordsToPaste(e.Records)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		}

		f, err := transform.ParseFormat(format)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), transform.Encode(e.Records, f))
		return nil
	},
}

// teamDeleteCmd represents the team delete command
var teamDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored team",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := runtimeFrom(cmd)
		if err != nil {
			return err
		}
		id, err := storage.ParseID(args[0])
		if err != nil {
			return err
		}

		store, err := openTeamStore(rt)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted team %s\n", id)
		return nil
	},
}

// teamListCmd represents the team list command
var teamListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored teams",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := runtimeFrom(cmd)
		if err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")
		species, _ := cmd.Flags().GetString("species")

		var code int
		if species != "" {
			var ok bool
			if code, ok = rt.packer.Dex().Code(dex.Species, species); !ok || code == 0 {
				return fmt.Errorf("unknown species %q", species)
			}
		}

		store, err := openTeamStore(rt)
		if err != nil {
			return err
		}
		defer store.Close()

		var teams []storage.Team
		if code != 0 {
			teams, err = store.FindBySpecies(uint16(code))
			if limit > 0 && len(teams) > limit {
				teams = teams[:limit]
			}
		} else {
			teams, err = store.List(limit)
		}
		if err != nil {
			return err
		}

		rows := make([][]string, len(teams))
		for i, t := range teams {
			rows[i] = []string{t.ID.String(), t.Created.Format(time.RFC3339), strconv.Itoa(t.Records)}
		}
		fmt.Fprintln(cmd.OutOrStdout(),
			renderTable([]string{"ID", "Created", "Records"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(teamCmd)
	teamCmd.AddCommand(teamSaveCmd)
	teamCmd.AddCommand(teamGetCmd)
	teamCmd.AddCommand(teamDeleteCmd)
	teamCmd.AddCommand(teamListCmd)

	teamGetCmd.Flags().StringP("format", "f", "paste", "Output format: paste, hex or base64")
	teamListCmd.Flags().Int("limit", 0, "Maximum number of teams to list (0 for all)")
	teamListCmd.Flags().String("species", "", "Only list teams containing this species")
}

func openTeamStore(rt *runtime) (*storage.TeamStore, error) {
	if err := os.MkdirAll(rt.cfg.DataDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	return container.GetStoreFactory().OpenTeamStore(rt.cfg.DataDir, rt.logger)
}
